package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/mediafetch-go/internal/domain"
	"github.com/yourusername/mediafetch-go/pkg/logger"
)

func TestPauseResume_Flags(t *testing.T) {
	f := newEngine(t)
	key := domain.NewMangaKey("m1", "default", "c1")

	assert.True(t, f.dm.PauseChapter(key))
	assert.True(t, f.dm.Pauses().IsPaused(key))

	assert.True(t, f.dm.ResumeChapter(key))
	assert.False(t, f.dm.Pauses().IsPaused(key))

	// resuming an unknown key is acknowledged
	assert.True(t, f.dm.ResumeChapter(domain.NewMangaKey("m2", "default", "c9")))
}

func TestAcquireRelease(t *testing.T) {
	f := newEngine(t)
	key := domain.NewCartoonKey("k1", "e1")

	require.NoError(t, f.dm.acquire(key))
	assert.True(t, f.dm.IsActive(key))
	assert.Equal(t, []domain.TaskKey{key}, f.dm.ActiveKeys())

	err := f.dm.acquire(key)
	assert.True(t, domain.IsKind(err, domain.ErrInvalidState))

	f.dm.Pauses().Pause(key)
	f.dm.Progress().Set(key, domain.LiveProgress{Percent: 50})
	f.dm.release(key)

	assert.False(t, f.dm.IsActive(key))
	assert.False(t, f.dm.Pauses().IsPaused(key))
	_, ok := f.dm.Progress().Get(key)
	assert.False(t, ok)
}

func TestFinish_NotifiesByOutcome(t *testing.T) {
	f := newEngine(t)
	key := domain.NewMangaKey("m1", "default", "c1")

	f.dm.finish(domain.NewDownloadRecord(key), "Test", domain.OutcomeCompleted, nil)
	f.dm.finish(domain.NewDownloadRecord(key), "Test", domain.OutcomePartial, nil)
	f.dm.finish(domain.NewDownloadRecord(key), "Test", domain.OutcomePaused, nil)
	f.dm.finish(domain.NewDownloadRecord(key), "Test", domain.OutcomeFailed, errors.New("disk full"))

	assert.Equal(t, 1, f.notifier.completed)
	assert.Equal(t, 1, f.notifier.failed)

	records, err := f.history.FindByTaskKey(key.String())
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "disk full", records[3].ErrorMessage)
	assert.False(t, records[3].FinishedAt.IsZero())
}

func TestFinish_WithoutHistoryOrNotifier(t *testing.T) {
	root := t.TempDir()
	cfg := &domain.DownloadConfig{BaseDir: root}
	dm := NewDownloadManager(nil, nil, nil, newFakeFetcher(), nil, cfg, nil)

	assert.NotPanics(t, func() {
		dm.finish(domain.NewDownloadRecord(domain.NewCartoonKey("k1", "e1")), "Test", domain.OutcomeFailed, errors.New("x"))
	})
}

func TestWithEventLogger_WritesCategoryFiles(t *testing.T) {
	f := newEngine(t)
	logsDir := t.TempDir()
	ml, err := logger.NewMultiLogger(logger.MultiLoggerConfig{Level: "info", LogsDir: logsDir})
	require.NoError(t, err)
	defer ml.Close()

	f.dm.WithEventLogger(logger.NewLoggerAdapter(ml))
	req := threeImageChapter(f)
	_, err = f.dm.DownloadChapter(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, ml.Sync())

	entries, err := logger.NewLogReader(logsDir).ReadLogs(logger.CategoryDownload, time.Now(), 10)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "download_completed", entries[len(entries)-1].Message)
}

func TestWithVideoFetcher(t *testing.T) {
	f := newEngine(t)
	video := newFakeFetcher()
	video.serve(videoHost+"movie.mp4", []byte("v"))
	f.dm.WithVideoFetcher(video)

	_, err := f.dm.DownloadEpisode(context.Background(), newEpisodeRequest(videoHost+"movie.mp4"))
	require.NoError(t, err)
	assert.Equal(t, 1, video.total())
	assert.Zero(t, f.fetcher.total())
}

func TestWait(t *testing.T) {
	assert.NoError(t, wait(context.Background(), 0))
	assert.NoError(t, wait(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, wait(ctx, time.Hour))
	assert.Error(t, wait(ctx, 0))
}
