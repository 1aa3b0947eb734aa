package errutil

import (
	"context"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// values promoted to Sentry tags so that events can be searched by repository and job
var tagKeys = map[string]struct{}{
	"repo_id": {},
	"job_id":  {},
	"number":  {},
}

func HandleError(ctx context.Context, msg string, err error) {
	// Sending error to Sentry
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(Tags(err))
		if goErr := goerr.Unwrap(err); goErr != nil {
			for k, v := range goErr.Values() {
				scope.SetExtra(fmt.Sprintf("%v", k), v)
			}
		}
	})
	evID := hub.CaptureException(err)

	logging.From(ctx).Error(msg,
		"error", err,
		"sentry.EventID", evID,
	)
}

// Tags returns the repository and job identifiers attached to err with goerr.V.
func Tags(err error) map[string]string {
	tags := map[string]string{}
	goErr := goerr.Unwrap(err)
	if goErr == nil {
		return tags
	}
	for k, v := range goErr.Values() {
		key := fmt.Sprintf("%v", k)
		if _, ok := tagKeys[key]; ok {
			tags[key] = fmt.Sprintf("%v", v)
		}
	}
	return tags
}
