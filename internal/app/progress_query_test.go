package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/mediafetch-go/internal/domain"
)

func writeChapterFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestChapterDetail(t *testing.T) {
	f := newEngine(t)
	key := domain.NewMangaKey("m1", "default", "c1")

	t.Run("no journal", func(t *testing.T) {
		detail, err := f.dm.ChapterDetail(key, 12)
		require.NoError(t, err)
		assert.Equal(t, domain.DetailNotDownloaded, detail.Status)
		assert.Equal(t, 12, detail.TotalImages)
		assert.Zero(t, detail.DownloadedImages)
	})

	writeChapterFiles(t, key.ChapterDir(f.root), map[string]string{
		"001.jpg": "a",
		"002.jpg": "",
	})
	require.NoError(t, f.journals.WriteManga(key, &domain.MangaJournal{
		MangaUUID:     "m1",
		GroupPathWord: "default",
		ChapterUUID:   "c1",
		TotalImages:   3,
		Images:        []string{"001.jpg", "002.jpg", "003.jpg"},
	}))

	t.Run("partial counts only non-empty files", func(t *testing.T) {
		detail, err := f.dm.ChapterDetail(key, 0)
		require.NoError(t, err)
		assert.Equal(t, domain.DetailPartial, detail.Status)
		assert.Equal(t, 3, detail.TotalImages)
		assert.Equal(t, 1, detail.DownloadedImages)
		assert.InDelta(t, 33.33, detail.Progress, 0.01)
	})

	t.Run("expected larger than journal", func(t *testing.T) {
		detail, err := f.dm.ChapterDetail(key, 10)
		require.NoError(t, err)
		assert.Equal(t, 10, detail.TotalImages)
	})

	writeChapterFiles(t, key.ChapterDir(f.root), map[string]string{
		"002.jpg": "b",
		"003.jpg": "c",
	})

	t.Run("downloaded", func(t *testing.T) {
		detail, err := f.dm.ChapterDetail(key, 3)
		require.NoError(t, err)
		assert.Equal(t, domain.DetailDownloaded, detail.Status)
		assert.Equal(t, 3, detail.DownloadedImages)
		assert.Equal(t, 100.0, detail.Progress)
	})
}

func TestChapterDetail_CorruptJournal(t *testing.T) {
	f := newEngine(t)
	key := domain.NewMangaKey("m1", "default", "c1")
	writeChapterFiles(t, key.ChapterDir(f.root), map[string]string{domain.JournalFilename: "{not json"})

	_, err := f.dm.ChapterDetail(key, 3)
	assert.True(t, domain.IsKind(err, domain.ErrParse))
}

func TestChapterProgress_FromDisk(t *testing.T) {
	f := newEngine(t)
	key := domain.NewMangaKey("m1", "default", "c1")

	progress, err := f.dm.ChapterProgress(key, 4)
	require.NoError(t, err)
	assert.Equal(t, "pending", progress.Status)
	assert.Zero(t, progress.Completed)

	writeChapterFiles(t, key.ChapterDir(f.root), map[string]string{
		"001.jpg":              "a",
		"002.PNG":              "b",
		domain.JournalFilename: "{}",
		"notes.txt":            "x",
	})

	progress, err = f.dm.ChapterProgress(key, 4)
	require.NoError(t, err)
	assert.Equal(t, "downloading", progress.Status)
	assert.Equal(t, 2, progress.Completed)
	assert.Equal(t, 50.0, progress.Percent)
	assert.Equal(t, "2/4", progress.CurrentImage)

	writeChapterFiles(t, key.ChapterDir(f.root), map[string]string{"003.webp": "c", "004.jpeg": "d"})
	progress, err = f.dm.ChapterProgress(key, 4)
	require.NoError(t, err)
	assert.Equal(t, "completed", progress.Status)
}

func TestIncompleteChapter(t *testing.T) {
	f := newEngine(t)
	key := domain.NewMangaKey("m1", "default", "c1")

	result, err := f.dm.IncompleteChapter(key)
	require.NoError(t, err)
	assert.False(t, result.HasIncomplete, "missing directory")

	writeChapterFiles(t, key.ChapterDir(f.root), map[string]string{"notes.txt": "x"})
	result, err = f.dm.IncompleteChapter(key)
	require.NoError(t, err)
	assert.False(t, result.HasIncomplete, "no images")

	writeChapterFiles(t, key.ChapterDir(f.root), map[string]string{"001.jpg": "a", "002.webp": "b"})
	result, err = f.dm.IncompleteChapter(key)
	require.NoError(t, err)
	assert.True(t, result.HasIncomplete)
	assert.Equal(t, 2, result.Completed)

	writeChapterFiles(t, key.ChapterDir(f.root), map[string]string{domain.JournalFilename: "{}"})
	result, err = f.dm.IncompleteChapter(key)
	require.NoError(t, err)
	assert.False(t, result.HasIncomplete, "journal present")
	assert.Zero(t, result.Completed)

	_, err = f.dm.IncompleteChapter(domain.NewMangaKey("m1", "", "c1"))
	assert.Error(t, err)
}

func TestChapterProgress_Live(t *testing.T) {
	f := newEngine(t)
	key := domain.NewMangaKey("m1", "default", "c1")
	f.dm.Progress().Set(key, domain.LiveProgress{Current: 2, Total: 5, Percent: 40, Message: "002.jpg"})

	progress, err := f.dm.ChapterProgress(key, 5)
	require.NoError(t, err)
	assert.Equal(t, "downloading", progress.Status)
	assert.Equal(t, 2, progress.Completed)
	assert.Equal(t, "002.jpg", progress.CurrentImage)
}

func TestEpisodeProgress_Live(t *testing.T) {
	f := newEngine(t)
	key := domain.NewCartoonKey("k1", "e1")
	f.dm.Progress().Set(key, domain.LiveProgress{Percent: 85, DownloadedBytes: 10, Status: domain.ProgressMerging})

	progress, err := f.dm.EpisodeProgress(key)
	require.NoError(t, err)
	assert.Equal(t, "merging", progress.Status)
	assert.Equal(t, 85.0, progress.Percent)
	assert.False(t, progress.Completed)
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("a.JPG"))
	assert.True(t, IsImageFile("b.webp"))
	assert.False(t, IsImageFile("info.json"))
	assert.False(t, IsImageFile("cover"))
}
