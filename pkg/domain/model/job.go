package model

import (
	"time"

	"github.com/m-mizutani/ghpulse/pkg/domain/types"
)

// SyncJob is one in-flight or most recent synchronization attempt of a repository
type SyncJob struct {
	ID         types.JobID     `json:"id"`
	RepoID     types.RepoID    `json:"repo_id"`
	Kind       types.JobKind   `json:"kind"`
	Mode       types.JobMode   `json:"mode"`
	Status     types.JobStatus `json:"status"`
	Progress   Progress        `json:"progress"`
	Message    string          `json:"message,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
}

type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Advance adds n processed items. Total grows when more items arrive than announced.
func (x *Progress) Advance(n int) {
	x.Current += n
	if x.Current > x.Total {
		x.Total = x.Current
	}
}

func NewSyncJob(repoID types.RepoID, kind types.JobKind, mode types.JobMode, now time.Time) *SyncJob {
	return &SyncJob{
		ID:        types.NewJobID(),
		RepoID:    repoID,
		Kind:      kind,
		Mode:      mode,
		Status:    types.JobStatusInProgress,
		StartedAt: now,
		UpdatedAt: now,
	}
}

func (x *SyncJob) Complete(now time.Time) {
	x.Status = types.JobStatusCompleted
	x.UpdatedAt = now
	x.FinishedAt = &now
}

func (x *SyncJob) Fail(now time.Time, msg string) {
	x.Status = types.JobStatusFailed
	x.Message = msg
	x.UpdatedAt = now
	x.FinishedAt = &now
}

func (x *SyncJob) Clone() *SyncJob {
	if x == nil {
		return nil
	}
	cpy := *x
	if x.FinishedAt != nil {
		t := *x.FinishedAt
		cpy.FinishedAt = &t
	}
	return &cpy
}

// SyncStatus is the pollable view of a repository's synchronization state.
type SyncStatus struct {
	Status       types.JobStatus `json:"status"`
	CurrentJob   *SyncJob        `json:"current_job,omitempty"`
	Progress     *Progress       `json:"progress,omitempty"`
	Message      string          `json:"message,omitempty"`
	LastSyncedAt *time.Time      `json:"last_synced_at,omitempty"`
}
