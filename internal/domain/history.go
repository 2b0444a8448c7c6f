package domain

import (
	"time"

	"github.com/google/uuid"
)

// DownloadOutcome is how one task invocation ended
type DownloadOutcome string

const (
	OutcomeCompleted DownloadOutcome = "completed"
	OutcomePartial   DownloadOutcome = "partial"
	OutcomePaused    DownloadOutcome = "paused"
	OutcomeFailed    DownloadOutcome = "failed"
)

// DownloadRecord is the history row written after every task invocation
type DownloadRecord struct {
	ID           string          `json:"id" gorm:"primaryKey"`
	TaskKey      string          `json:"task_key" gorm:"not null;index"`
	Kind         MediaKind       `json:"kind" gorm:"not null;index"`
	MediaID      string          `json:"media_id" gorm:"not null"`
	ChapterID    string          `json:"chapter_id" gorm:"not null"`
	Outcome      DownloadOutcome `json:"outcome" gorm:"not null;index"`
	Assets       int             `json:"assets"`
	TotalAssets  int             `json:"total_assets"`
	Bytes        uint64          `json:"bytes"`
	ErrorMessage string          `json:"error_message,omitempty"`
	StartedAt    time.Time       `json:"started_at"`
	FinishedAt   time.Time       `json:"finished_at"`
	CreatedAt    time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (DownloadRecord) TableName() string {
	return "download_history"
}

// NewDownloadRecord starts a history record for one invocation
func NewDownloadRecord(key TaskKey) *DownloadRecord {
	return &DownloadRecord{
		ID:        uuid.New().String(),
		TaskKey:   key.String(),
		Kind:      key.Kind,
		MediaID:   key.MediaID,
		ChapterID: key.ChapterID,
		StartedAt: time.Now(),
	}
}

// Finish stamps the outcome of the invocation
func (r *DownloadRecord) Finish(outcome DownloadOutcome, err error) {
	r.Outcome = outcome
	if err != nil {
		r.ErrorMessage = err.Error()
	}
	r.FinishedAt = time.Now()
}

// HistoryStats represents download history statistics
type HistoryStats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Partial   int64 `json:"partial"`
	Paused    int64 `json:"paused"`
	Failed    int64 `json:"failed"`
}
