package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/mediafetch-go/internal/domain"
	"github.com/yourusername/mediafetch-go/pkg/logger"
	"go.uber.org/zap"
)

// DownloadManager is the engine context: it owns the pause registry, the
// progress table and the set of running task keys, and runs chapter and
// episode downloads against the configured stores.
type DownloadManager struct {
	journals     domain.JournalStore
	registry     domain.TaskRegistry
	history      domain.HistoryRepository
	fetcher      domain.Fetcher
	videoFetcher domain.Fetcher
	notifier     domain.Notifier
	config       *domain.DownloadConfig
	logger       *zap.Logger
	events       *logger.LoggerAdapter

	pauses   *PauseRegistry
	progress *ProgressTable

	mu     sync.Mutex
	active map[domain.TaskKey]struct{}
}

// NewDownloadManager creates a new download manager. history and notifier may be nil.
func NewDownloadManager(
	journals domain.JournalStore,
	registry domain.TaskRegistry,
	history domain.HistoryRepository,
	fetcher domain.Fetcher,
	notifier domain.Notifier,
	config *domain.DownloadConfig,
	log *zap.Logger,
) *DownloadManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &DownloadManager{
		journals:     journals,
		registry:     registry,
		history:      history,
		fetcher:      fetcher,
		videoFetcher: fetcher,
		notifier:     notifier,
		config:       config,
		logger:       log,
		pauses:       NewPauseRegistry(),
		progress:     NewProgressTable(),
		active:       make(map[domain.TaskKey]struct{}),
	}
}

// WithVideoFetcher sets the fetcher used for playlists, segments and direct videos
func (dm *DownloadManager) WithVideoFetcher(f domain.Fetcher) *DownloadManager {
	dm.videoFetcher = f
	return dm
}

// WithEventLogger routes lifecycle events to the categorized log files
func (dm *DownloadManager) WithEventLogger(events *logger.LoggerAdapter) *DownloadManager {
	dm.events = events
	return dm
}

// Pauses returns the pause registry
func (dm *DownloadManager) Pauses() *PauseRegistry {
	return dm.pauses
}

// Progress returns the live progress table
func (dm *DownloadManager) Progress() *ProgressTable {
	return dm.progress
}

// Root returns the download root directory
func (dm *DownloadManager) Root() string {
	return dm.config.BaseDir
}

// PauseChapter requests a cooperative stop of a running chapter and
// returns whether the flag is now set
func (dm *DownloadManager) PauseChapter(key domain.TaskKey) bool {
	paused := dm.pauses.Pause(key)
	dm.logger.Info("Pause requested", zap.String("task_key", key.String()))
	return paused
}

// ResumeChapter clears the pause flag so the next invocation runs to the end
func (dm *DownloadManager) ResumeChapter(key domain.TaskKey) bool {
	ok := dm.pauses.Resume(key)
	dm.logger.Info("Resume requested", zap.String("task_key", key.String()))
	return ok
}

// IsActive reports whether an invocation of key is running
func (dm *DownloadManager) IsActive(key domain.TaskKey) bool {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	_, ok := dm.active[key]
	return ok
}

// ActiveKeys returns the keys of running invocations
func (dm *DownloadManager) ActiveKeys() []domain.TaskKey {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	keys := make([]domain.TaskKey, 0, len(dm.active))
	for key := range dm.active {
		keys = append(keys, key)
	}
	return keys
}

// acquire marks key as running. A second start of a running key is rejected.
func (dm *DownloadManager) acquire(key domain.TaskKey) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if _, ok := dm.active[key]; ok {
		return domain.NewError(domain.ErrInvalidState, fmt.Sprintf("download already running: %s", key), nil)
	}
	dm.active[key] = struct{}{}
	return nil
}

// release ends an invocation: the pause flag and live progress are dropped
// whatever the outcome.
func (dm *DownloadManager) release(key domain.TaskKey) {
	dm.pauses.Clear(key)
	dm.progress.Remove(key)

	dm.mu.Lock()
	delete(dm.active, key)
	dm.mu.Unlock()
}

// finish stores the history record of an invocation and logs its outcome
func (dm *DownloadManager) finish(record *domain.DownloadRecord, title string, outcome domain.DownloadOutcome, err error) {
	record.Finish(outcome, err)

	fields := []zap.Field{
		zap.String("task_key", record.TaskKey),
		zap.String("outcome", string(outcome)),
		zap.Int("assets", record.Assets),
		zap.Int("total_assets", record.TotalAssets),
		zap.Uint64("bytes", record.Bytes),
		zap.Duration("elapsed", record.FinishedAt.Sub(record.StartedAt)),
	}
	if err != nil {
		dm.events.LogAppError("Download failed", append(fields, zap.Error(err))...)
	}
	dm.events.LogDownloadEvent("download_"+string(outcome), fields...)

	if dm.history != nil {
		if herr := dm.history.Create(record); herr != nil {
			dm.logger.Warn("Failed to record download history",
				zap.String("task_key", record.TaskKey),
				zap.Error(herr))
		}
	}

	if dm.notifier == nil {
		return
	}
	switch outcome {
	case domain.OutcomeCompleted:
		dm.notifier.NotifyCompleted(title, record.ChapterID)
	case domain.OutcomeFailed:
		dm.notifier.NotifyFailed(title, record.ErrorMessage)
	}
}

// wait sleeps for d unless ctx ends first
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
