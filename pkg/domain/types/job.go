package types

import "github.com/google/uuid"

type JobID string

func NewJobID() JobID {
	return JobID(uuid.NewString())
}

type JobKind string

const (
	JobKindIssueFetch JobKind = "issue-fetch"
	JobKindPRFetch    JobKind = "pr-fetch"
	JobKindSentiment  JobKind = "sentiment"
)

type JobMode string

const (
	JobModeFull    JobMode = "full"
	JobModeRefresh JobMode = "refresh"
)

type JobStatus string

const (
	JobStatusNotStarted JobStatus = "not_started"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// IsTerminal reports whether no runner will update the job anymore.
func (x JobStatus) IsTerminal() bool {
	return x == JobStatusCompleted || x == JobStatusFailed
}
