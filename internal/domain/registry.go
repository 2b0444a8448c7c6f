package domain

import (
	"encoding/json"
	"time"
)

// TaskStatus represents the lifecycle state of a registered video task
type TaskStatus string

const (
	TaskDownloading TaskStatus = "downloading"
	TaskPaused      TaskStatus = "paused"
	TaskCompleted   TaskStatus = "completed"
	TaskError       TaskStatus = "error"
	TaskCancelled   TaskStatus = "cancelled"
)

// IsActive reports whether a UI should reattach to the task after restart
func (s TaskStatus) IsActive() bool {
	return s == TaskDownloading || s == TaskPaused
}

// ValidateTaskStatus checks if a task status is valid
func ValidateTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskDownloading, TaskPaused, TaskCompleted, TaskError, TaskCancelled:
		return true
	default:
		return false
	}
}

// RegisteredTask is one persisted entry of the task registry
type RegisteredTask struct {
	CartoonUUID   string          `json:"cartoon_uuid"`
	CartoonName   string          `json:"cartoon_name"`
	ChapterUUID   string          `json:"chapter_uuid"`
	ChapterName   string          `json:"chapter_name"`
	VideoURL      string          `json:"video_url"`
	Cover         string          `json:"cover"`
	CartoonDetail json.RawMessage `json:"cartoon_detail"`
	Status        TaskStatus      `json:"status"`
	Progress      float64         `json:"progress"`
	StartTime     string          `json:"start_time"`
	UpdatedAt     string          `json:"updated_at"`
}

// NewRegisteredTask snapshots an episode request into a registry entry
func NewRegisteredTask(d *EpisodeDownload, status TaskStatus, progress float64) *RegisteredTask {
	now := FormatTimestamp(time.Now())
	task := &RegisteredTask{
		CartoonUUID: d.CartoonID,
		CartoonName: d.CartoonName,
		ChapterUUID: d.ChapterID,
		ChapterName: d.ChapterName,
		VideoURL:    d.VideoURL,
		Cover:       d.Cover,
		Status:      status,
		Progress:    progress,
		StartTime:   now,
		UpdatedAt:   now,
	}
	if d.Detail != nil {
		if raw, err := json.Marshal(d.Detail); err == nil {
			task.CartoonDetail = raw
		}
	}
	return task
}

// Key returns the task key of the entry
func (t *RegisteredTask) Key() TaskKey {
	return NewCartoonKey(t.CartoonUUID, t.ChapterUUID)
}

// Touch overwrites the mutable fields of the entry
func (t *RegisteredTask) Touch(status TaskStatus, progress float64) {
	t.Status = status
	t.Progress = progress
	t.UpdatedAt = FormatTimestamp(time.Now())
}
