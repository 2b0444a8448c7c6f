package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/mediafetch-go/internal/domain"
	"github.com/yourusername/mediafetch-go/internal/infrastructure"
)

// imageExtensions are the file types counted as chapter images
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// IsImageFile reports whether name has a chapter image extension
func IsImageFile(name string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// ChapterDetail reports how much of a chapter is on disk according to its
// journal. Only journal entries whose file exists and is non-empty count.
// expected is used when it exceeds the journal's total.
func (dm *DownloadManager) ChapterDetail(key domain.TaskKey, expected int) (*domain.ChapterDownloadDetail, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	journal, ok, err := dm.journals.ReadManga(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &domain.ChapterDownloadDetail{
			Status:      domain.DetailNotDownloaded,
			TotalImages: max(expected, 0),
		}, nil
	}

	total := max(journal.TotalImages, expected)
	chapterDir := key.ChapterDir(dm.Root())
	downloaded := 0
	for _, name := range journal.Images {
		if infrastructure.NonEmptyFile(filepath.Join(chapterDir, filepath.Base(name))) {
			downloaded++
		}
	}

	detail := &domain.ChapterDownloadDetail{
		TotalImages:      total,
		DownloadedImages: downloaded,
	}
	if total > 0 {
		detail.Progress = float64(downloaded) * 100 / float64(total)
	}
	switch {
	case downloaded == 0:
		detail.Status = domain.DetailNotDownloaded
	case downloaded >= total:
		detail.Status = domain.DetailDownloaded
	default:
		detail.Status = domain.DetailPartial
	}
	return detail, nil
}

// ChapterProgress returns live progress while the chapter runs, otherwise
// counts the image files in the chapter directory against expected
func (dm *DownloadManager) ChapterProgress(key domain.TaskKey, expected int) (*domain.ChapterProgress, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	if live, ok := dm.progress.Get(key); ok {
		return &domain.ChapterProgress{
			Completed:    live.Current,
			Total:        live.Total,
			Percent:      live.Percent,
			CurrentImage: live.Message,
			Status:       "downloading",
		}, nil
	}

	completed, err := countChapterImages(key.ChapterDir(dm.Root()))
	if err != nil {
		return nil, err
	}

	progress := &domain.ChapterProgress{
		Completed:    completed,
		Total:        expected,
		CurrentImage: fmt.Sprintf("%d/%d", completed, expected),
	}
	if expected > 0 {
		progress.Percent = float64(completed) * 100 / float64(expected)
	}
	switch {
	case expected > 0 && completed >= expected:
		progress.Status = "completed"
	case completed > 0:
		progress.Status = "downloading"
	default:
		progress.Status = "pending"
	}
	return progress, nil
}

// IncompleteChapter detects a chapter interrupted before its journal was
// written: the directory holds images but no info.json
func (dm *DownloadManager) IncompleteChapter(key domain.TaskKey) (*domain.IncompleteChapter, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	chapterDir := key.ChapterDir(dm.Root())
	if infrastructure.FileExists(filepath.Join(chapterDir, domain.JournalFilename)) {
		return &domain.IncompleteChapter{}, nil
	}

	completed, err := countChapterImages(chapterDir)
	if err != nil {
		return nil, err
	}
	return &domain.IncompleteChapter{HasIncomplete: completed > 0, Completed: completed}, nil
}

// countChapterImages counts image files in dir; a missing dir counts as empty
func countChapterImages(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return 0, domain.NewError(domain.ErrIO, "failed to read chapter directory", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.Type().IsRegular() && IsImageFile(entry.Name()) {
			count++
		}
	}
	return count, nil
}

// EpisodeProgress returns live progress while the episode runs, then falls
// back to the journal: a completion record reads as 100%, anything else as
// not started
func (dm *DownloadManager) EpisodeProgress(key domain.TaskKey) (*domain.EpisodeProgress, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	if live, ok := dm.progress.Get(key); ok {
		return &domain.EpisodeProgress{
			DownloadedSize: live.DownloadedBytes,
			TotalSize:      live.TotalBytes,
			Percent:        live.Percent,
			Completed:      live.Status == domain.ProgressCompleted,
			Status:         string(live.Status),
		}, nil
	}

	journal, ok, err := dm.journals.ReadCartoon(key)
	if err != nil {
		return nil, err
	}
	if ok {
		return &domain.EpisodeProgress{
			DownloadedSize: journal.FileSize,
			TotalSize:      journal.FileSize,
			Percent:        100,
			Completed:      true,
			Status:         string(domain.ProgressCompleted),
		}, nil
	}

	return &domain.EpisodeProgress{Status: "not_started"}, nil
}
