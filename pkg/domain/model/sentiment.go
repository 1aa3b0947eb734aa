package model

import (
	"time"

	"github.com/m-mizutani/ghpulse/pkg/domain/types"
)

// SentimentRecord caches one analysis result keyed by item ID and content hash.
type SentimentRecord struct {
	RepoID      types.RepoID            `json:"repo_id"`
	ItemID      string                  `json:"item_id"`
	ContentHash string                  `json:"content_hash"`
	Score       int                     `json:"score"`
	Status      types.SentimentStatus   `json:"status"`
	Error       string                  `json:"error,omitempty"`
	Provider    types.SentimentProvider `json:"provider"`
	AnalyzedAt  time.Time               `json:"analyzed_at"`
}

// Fresh reports whether the record still describes the item's current text.
func (x *SentimentRecord) Fresh(item *Item) bool {
	return x != nil && item != nil && x.ItemID == item.ID && x.ContentHash == item.ContentHash()
}

type APIKeyTestResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}
