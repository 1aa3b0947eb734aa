package safe

import (
	"database/sql"
	"io"
	"log/slog"

	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
)

// Close safely closes the resource and logs error if any
func Close(closer io.Closer) {
	if closer != nil {
		if err := closer.Close(); err != nil {
			if err == io.EOF {
				return
			}
			logging.Default().Warn("Fail to close resource", slog.Any("error", err))
		}
	}
}

// Rollback safely rolls back the transaction and logs error if any
func Rollback(tx *sql.Tx) {
	if tx != nil {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			logging.Default().Warn("Fail to rollback transaction", slog.Any("error", err))
		}
	}
}
