package infrastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/mediafetch-go/internal/domain"
)

func TestFileJournalStore_MangaRoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewFileJournalStore(root)
	key := domain.NewMangaKey("m1", "default", "c1")

	_, ok, err := store.ReadManga(key)
	require.NoError(t, err)
	assert.False(t, ok)

	journal := &domain.MangaJournal{
		MangaUUID:     "m1",
		MangaName:     "Test",
		GroupPathWord: "default",
		ChapterUUID:   "c1",
		ChapterName:   "Ch 1",
		TotalImages:   3,
		Images:        []string{"001.jpg"},
		DownloadTime:  "2024-01-02 03:04:05",
	}
	require.NoError(t, store.WriteManga(key, journal))

	assert.FileExists(t, filepath.Join(root, "manga", "m1", "default", "c1", "info.json"))

	got, ok, err := store.ReadManga(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, journal, got)
}

func TestFileJournalStore_OnDiskFormat(t *testing.T) {
	root := t.TempDir()
	store := NewFileJournalStore(root)
	key := domain.NewCartoonKey("a1", "e1")

	require.NoError(t, store.WriteCartoon(key, &domain.CartoonJournal{
		CartoonUUID:  "a1",
		CartoonName:  "Show",
		ChapterUUID:  "e1",
		ChapterName:  "Ep 1",
		VideoFile:    "Ep 1.mp4",
		FileSize:     42,
		DownloadTime: "2024-01-02 03:04:05",
	}))

	data, err := os.ReadFile(filepath.Join(root, "cartoons", "a1", "e1", "info.json"))
	require.NoError(t, err)
	expected := `{
  "cartoon_uuid": "a1",
  "cartoon_name": "Show",
  "chapter_uuid": "e1",
  "chapter_name": "Ep 1",
  "video_file": "Ep 1.mp4",
  "file_size": 42,
  "download_time": "2024-01-02 03:04:05"
}`
	assert.Equal(t, expected, string(data))
}

func TestFileJournalStore_ParseFailureIsFatal(t *testing.T) {
	root := t.TempDir()
	store := NewFileJournalStore(root)
	key := domain.NewMangaKey("m1", "g", "c1")

	path := store.Path(key)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, ok, err := store.ReadManga(key)
	assert.True(t, ok)
	assert.True(t, domain.IsKind(err, domain.ErrParse))
}
