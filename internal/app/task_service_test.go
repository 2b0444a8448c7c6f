package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/mediafetch-go/internal/domain"
	"github.com/yourusername/mediafetch-go/internal/infrastructure"
	"github.com/yourusername/mediafetch-go/pkg/logger"
	"go.uber.org/zap"
)

func newTaskService(t *testing.T) (*TaskService, *infrastructure.JSONTaskRegistry) {
	t.Helper()
	registry := infrastructure.NewJSONTaskRegistry(t.TempDir(), domain.KindCartoon)
	return NewTaskService(registry, logger.NewSingleLoggerAdapter(zap.NewNop()), nil), registry
}

func registeredTask(chapter string, status domain.TaskStatus) *domain.RegisteredTask {
	return domain.NewRegisteredTask(&domain.EpisodeDownload{
		CartoonID:   "k1",
		CartoonName: "Test Cartoon",
		ChapterID:   chapter,
		ChapterName: "Episode " + chapter,
		VideoURL:    "https://video.example/" + chapter + ".m3u8",
	}, status, 10)
}

func TestTaskService_SaveAndList(t *testing.T) {
	svc, _ := newTaskService(t)

	require.NoError(t, svc.Save(registeredTask("e1", domain.TaskDownloading)))
	require.NoError(t, svc.Save(registeredTask("e2", domain.TaskCompleted)))
	require.NoError(t, svc.Save(registeredTask("e3", domain.TaskPaused)))

	all, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := svc.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "e1", active[0].ChapterUUID)
	assert.Equal(t, "e3", active[1].ChapterUUID)
}

func TestTaskService_SaveRejectsInvalid(t *testing.T) {
	svc, _ := newTaskService(t)

	task := registeredTask("e1", "bogus")
	assert.True(t, domain.IsKind(svc.Save(task), domain.ErrInvalidState))

	task = registeredTask("", domain.TaskDownloading)
	assert.True(t, domain.IsKind(svc.Save(task), domain.ErrInvalidState))
}

func TestTaskService_UpdateStatus(t *testing.T) {
	svc, registry := newTaskService(t)
	require.NoError(t, svc.Save(registeredTask("e1", domain.TaskDownloading)))
	key := domain.NewCartoonKey("k1", "e1")

	require.NoError(t, svc.UpdateStatus(key, domain.TaskPaused))
	tasks, err := registry.List()
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPaused, tasks[0].Status)

	assert.True(t, domain.IsKind(svc.UpdateStatus(key, "nope"), domain.ErrInvalidState))
	assert.True(t, domain.IsKind(svc.UpdateStatus(domain.NewCartoonKey("k1", "e9"), domain.TaskPaused), domain.ErrNotFound))
}

func TestTaskService_CancelRemovesEntry(t *testing.T) {
	svc, _ := newTaskService(t)
	require.NoError(t, svc.Save(registeredTask("e1", domain.TaskDownloading)))
	key := domain.NewCartoonKey("k1", "e1")

	require.NoError(t, svc.Cancel(key))

	tasks, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, tasks)

	assert.True(t, domain.IsKind(svc.Cancel(key), domain.ErrNotFound))
	assert.True(t, domain.IsKind(svc.Remove(key), domain.ErrNotFound))
}

func TestTaskService_RecoverInterrupted(t *testing.T) {
	svc, _ := newTaskService(t)
	require.NoError(t, svc.Save(registeredTask("e1", domain.TaskDownloading)))
	require.NoError(t, svc.Save(registeredTask("e2", domain.TaskCompleted)))
	require.NoError(t, svc.Save(registeredTask("e3", domain.TaskDownloading)))

	n, err := svc.RecoverInterrupted()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tasks, err := svc.List()
	require.NoError(t, err)
	for _, task := range tasks {
		assert.NotEqual(t, domain.TaskDownloading, task.Status)
	}

	n, err = svc.RecoverInterrupted()
	require.NoError(t, err)
	assert.Zero(t, n)
}
