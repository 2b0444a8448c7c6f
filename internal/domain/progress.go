package domain

// ProgressStatus is the phase of a running task
type ProgressStatus string

const (
	ProgressStarting    ProgressStatus = "starting"
	ProgressDownloading ProgressStatus = "downloading"
	ProgressMerging     ProgressStatus = "merging"
	ProgressCompleted   ProgressStatus = "completed"
	ProgressError       ProgressStatus = "error"
)

// LiveProgress is the in-memory snapshot of a running task.
// Current/Total count segments for videos and images for chapters.
type LiveProgress struct {
	Current         int            `json:"current"`
	Total           int            `json:"total"`
	DownloadedBytes uint64         `json:"downloaded_bytes"`
	TotalBytes      uint64         `json:"total_bytes"`
	Percent         float64        `json:"percent"`
	Status          ProgressStatus `json:"status"`
	Message         string         `json:"message"`
}

// EpisodeProgress answers a video progress query
type EpisodeProgress struct {
	DownloadedSize uint64  `json:"downloaded_size"`
	TotalSize      uint64  `json:"total_size"`
	Percent        float64 `json:"percent"`
	Completed      bool    `json:"completed"`
	Status         string  `json:"status"`
}

// ChapterProgress answers a live chapter progress query
type ChapterProgress struct {
	Completed    int     `json:"completed"`
	Total        int     `json:"total"`
	Percent      float64 `json:"percent"`
	CurrentImage string  `json:"current_image"`
	Status       string  `json:"status"` // pending, downloading, completed
}

// IncompleteChapter reports a chapter directory holding images without a
// journal, left behind by an interrupted run
type IncompleteChapter struct {
	HasIncomplete bool `json:"has_incomplete"`
	Completed     int  `json:"completed"`
}

// DetailStatus summarises how much of a chapter is on disk
type DetailStatus string

const (
	DetailNotDownloaded DetailStatus = "not_downloaded"
	DetailPartial       DetailStatus = "partial"
	DetailDownloaded    DetailStatus = "downloaded"
)

// ChapterDownloadDetail answers a chapter detail query
type ChapterDownloadDetail struct {
	Status           DetailStatus `json:"status"`
	TotalImages      int          `json:"total_images"`
	DownloadedImages int          `json:"downloaded_images"`
	Progress         float64      `json:"progress"`
}
