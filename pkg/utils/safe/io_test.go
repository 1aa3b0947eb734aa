package safe_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ghpulse/pkg/utils/safe"
)

func TestClose(t *testing.T) {
	t.Run("close valid reader", func(t *testing.T) {
		reader := io.NopCloser(bytes.NewReader([]byte("test")))
		safe.Close(reader) // Should not panic
	})

	t.Run("close nil reader", func(t *testing.T) {
		safe.Close(nil) // Should not panic
	})
}

func TestRollback(t *testing.T) {
	t.Run("rollback with nil transaction", func(t *testing.T) {
		safe.Rollback(nil) // Should not panic
	})

	t.Run("rollback failure is only logged", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		gt.NoError(t, err)
		defer safe.Close(db)

		mock.ExpectBegin()
		mock.ExpectRollback().WillReturnError(errors.New("connection reset"))

		tx := gt.R1(db.Begin()).NoError(t)
		safe.Rollback(tx)
		gt.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCloseWithError(t *testing.T) {
	t.Run("close reader that returns error", func(t *testing.T) {
		reader := &errorCloser{}
		safe.Close(reader) // Should not panic, should log
	})

	t.Run("close reader that returns EOF", func(t *testing.T) {
		reader := &eofCloser{}
		safe.Close(reader) // Should not panic, should not log
	})
}

type errorCloser struct{}

func (e *errorCloser) Close() error {
	return io.ErrUnexpectedEOF
}

type eofCloser struct{}

func (e *eofCloser) Close() error {
	return io.EOF
}
