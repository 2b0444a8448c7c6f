package domain

// JournalStore persists per-chapter journals under the download root
type JournalStore interface {
	// ReadManga returns the chapter journal; ok is false when none exists
	ReadManga(key TaskKey) (journal *MangaJournal, ok bool, err error)

	// WriteManga fully overwrites the chapter journal
	WriteManga(key TaskKey, journal *MangaJournal) error

	// ReadCartoon returns the episode journal; ok is false when none exists
	ReadCartoon(key TaskKey) (journal *CartoonJournal, ok bool, err error)

	// WriteCartoon fully overwrites the episode journal
	WriteCartoon(key TaskKey, journal *CartoonJournal) error
}

// TaskRegistry persists the list of video tasks for reattachment after restart
type TaskRegistry interface {
	// List returns every entry
	List() ([]*RegisteredTask, error)

	// ListActive returns entries that are downloading or paused
	ListActive() ([]*RegisteredTask, error)

	// Upsert appends a new entry or updates status/progress of an existing one
	Upsert(task *RegisteredTask) error

	// UpdateStatus changes the status of an existing entry
	UpdateStatus(key TaskKey, status TaskStatus) error

	// Remove deletes an existing entry
	Remove(key TaskKey) error
}

// HistoryRepository defines the interface for download history persistence
type HistoryRepository interface {
	// Create stores a finished invocation
	Create(record *DownloadRecord) error

	// FindRecent returns the newest records first
	FindRecent(limit int) ([]*DownloadRecord, error)

	// FindByTaskKey returns every invocation of one task, newest first
	FindByTaskKey(key string) ([]*DownloadRecord, error)

	// GetStats returns outcome counters
	GetStats() (*HistoryStats, error)
}
