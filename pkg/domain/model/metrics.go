package model

import (
	"time"

	"github.com/m-mizutani/ghpulse/pkg/domain/types"
)

// RepositoryMetrics is a scored summary taken when a sync job completes.
type RepositoryMetrics struct {
	RepoID     types.RepoID `json:"repo_id" bigquery:"repo_id"`
	JobID      types.JobID  `json:"job_id" bigquery:"job_id"`
	Timestamp  time.Time    `json:"timestamp" bigquery:"timestamp"`
	OpenIssues int          `json:"open_issues" bigquery:"open_issues"`
	OpenPRs    int          `json:"open_prs" bigquery:"open_prs"`
	Bugs       LevelCounts  `json:"bugs" bigquery:"bugs"`
	Stale      LevelCounts  `json:"stale" bigquery:"stale"`
	Community  LevelCounts  `json:"community" bigquery:"community"`
	PRStats    PRStats      `json:"pr_stats" bigquery:"pr_stats"`
}

type LevelCounts struct {
	Critical int `json:"critical" bigquery:"critical"`
	High     int `json:"high" bigquery:"high"`
	Medium   int `json:"medium" bigquery:"medium"`
	None     int `json:"none" bigquery:"none"`
}

func (x *LevelCounts) Add(level types.Level) {
	switch level {
	case types.LevelCritical:
		x.Critical++
	case types.LevelHigh:
		x.High++
	case types.LevelMedium:
		x.Medium++
	default:
		x.None++
	}
}

// MetricsRawRecord is the BigQuery row of RepositoryMetrics.
type MetricsRawRecord struct {
	RepositoryMetrics
	Timestamp int64 `json:"timestamp" bigquery:"timestamp"`
}
