package infrastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/mediafetch-go/internal/domain"
)

func newEpisode(cartoon, chapter string) *domain.EpisodeDownload {
	return &domain.EpisodeDownload{
		CartoonID:   cartoon,
		CartoonName: "Show " + cartoon,
		ChapterID:   chapter,
		ChapterName: "Ep " + chapter,
		VideoURL:    "https://cdn.example/" + chapter + "/index.m3u8",
		Cover:       "https://cdn.example/cover.jpg",
	}
}

func TestJSONTaskRegistry_PathLayout(t *testing.T) {
	dir := t.TempDir()
	reg := NewJSONTaskRegistry(filepath.Join(dir, "tasks"), domain.KindCartoon)
	assert.Equal(t, filepath.Join(dir, "tasks", "cartoon_tasks.json"), reg.Path())
}

func TestJSONTaskRegistry_EmptyWhenMissing(t *testing.T) {
	reg := NewJSONTaskRegistry(t.TempDir(), domain.KindCartoon)
	tasks, err := reg.List()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestJSONTaskRegistry_UpsertUpdatesWithoutDuplicate(t *testing.T) {
	reg := NewJSONTaskRegistry(t.TempDir(), domain.KindCartoon)

	first := domain.NewRegisteredTask(newEpisode("a1", "e1"), domain.TaskDownloading, 0)
	require.NoError(t, reg.Upsert(first))

	update := domain.NewRegisteredTask(newEpisode("a1", "e1"), domain.TaskPaused, 40)
	update.ChapterName = "renamed"
	require.NoError(t, reg.Upsert(update))

	tasks, err := reg.List()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.TaskPaused, tasks[0].Status)
	assert.Equal(t, 40.0, tasks[0].Progress)
	assert.Equal(t, "Ep e1", tasks[0].ChapterName, "identity fields are preserved")
	assert.Equal(t, first.StartTime, tasks[0].StartTime)
}

func TestJSONTaskRegistry_ListActive(t *testing.T) {
	reg := NewJSONTaskRegistry(t.TempDir(), domain.KindCartoon)
	statuses := map[string]domain.TaskStatus{
		"e1": domain.TaskDownloading,
		"e2": domain.TaskPaused,
		"e3": domain.TaskCompleted,
		"e4": domain.TaskError,
	}
	for chapter, status := range statuses {
		require.NoError(t, reg.Upsert(domain.NewRegisteredTask(newEpisode("a1", chapter), status, 0)))
	}

	active, err := reg.ListActive()
	require.NoError(t, err)
	ids := []string{}
	for _, task := range active {
		ids = append(ids, task.ChapterUUID)
	}
	assert.ElementsMatch(t, []string{"e1", "e2"}, ids)
}

func TestJSONTaskRegistry_RemoveAbsentFails(t *testing.T) {
	reg := NewJSONTaskRegistry(t.TempDir(), domain.KindCartoon)
	err := reg.Remove(domain.NewCartoonKey("a1", "missing"))
	assert.True(t, domain.IsKind(err, domain.ErrNotFound))

	err = reg.UpdateStatus(domain.NewCartoonKey("a1", "missing"), domain.TaskPaused)
	assert.True(t, domain.IsKind(err, domain.ErrNotFound))
}

func TestJSONTaskRegistry_RemoveAndUpdateStatus(t *testing.T) {
	reg := NewJSONTaskRegistry(t.TempDir(), domain.KindCartoon)
	require.NoError(t, reg.Upsert(domain.NewRegisteredTask(newEpisode("a1", "e1"), domain.TaskDownloading, 10)))
	require.NoError(t, reg.Upsert(domain.NewRegisteredTask(newEpisode("a1", "e2"), domain.TaskDownloading, 20)))

	require.NoError(t, reg.UpdateStatus(domain.NewCartoonKey("a1", "e1"), domain.TaskPaused))
	require.NoError(t, reg.Remove(domain.NewCartoonKey("a1", "e2")))

	tasks, err := reg.List()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "e1", tasks[0].ChapterUUID)
	assert.Equal(t, domain.TaskPaused, tasks[0].Status)
	assert.Equal(t, 10.0, tasks[0].Progress)
}

func TestJSONTaskRegistry_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	reg := NewJSONTaskRegistry(dir, domain.KindCartoon)
	require.NoError(t, os.WriteFile(reg.Path(), []byte("[{"), 0o644))

	_, err := reg.List()
	assert.True(t, domain.IsKind(err, domain.ErrParse))
}

func TestJSONTaskRegistry_NullDetailSerialized(t *testing.T) {
	reg := NewJSONTaskRegistry(t.TempDir(), domain.KindCartoon)
	require.NoError(t, reg.Upsert(domain.NewRegisteredTask(newEpisode("a1", "e1"), domain.TaskDownloading, 0)))

	data, err := os.ReadFile(reg.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cartoon_detail": null`)
}
