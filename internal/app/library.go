package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

var coverExtensions = []string{"jpg", "jpeg", "png", "webp"}

// Library reads what has already been downloaded under the download root
type Library struct {
	root     string
	journals domain.JournalStore
	logger   *zap.Logger
}

// NewLibrary creates a library over root
func NewLibrary(root string, journals domain.JournalStore, log *zap.Logger) *Library {
	if log == nil {
		log = zap.NewNop()
	}
	return &Library{root: root, journals: journals, logger: log}
}

// ListMedia returns every media item of kind that has a detail file,
// newest download first
func (l *Library) ListMedia(kind domain.MediaKind) ([]*domain.LocalMedia, error) {
	if !domain.ValidateKind(kind) {
		return nil, domain.NewError(domain.ErrInvalidState, fmt.Sprintf("invalid media kind: %q", kind), nil)
	}
	kindDir := filepath.Join(l.root, kind.DirName())
	entries, err := os.ReadDir(kindDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*domain.LocalMedia{}, nil
		}
		return nil, domain.NewError(domain.ErrIO, "failed to read library directory", err)
	}

	media := make([]*domain.LocalMedia, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		item, err := l.MediaDetail(kind, entry.Name())
		if err != nil {
			l.logger.Debug("Skipping media without readable detail",
				zap.String("media", entry.Name()),
				zap.Error(err))
			continue
		}
		media = append(media, item)
	}

	sort.SliceStable(media, func(i, j int) bool {
		return media[i].LatestDownloadTime > media[j].LatestDownloadTime
	})
	return media, nil
}

// MediaDetail returns one media item with its stored detail, cover path and
// chapter statistics
func (l *Library) MediaDetail(kind domain.MediaKind, mediaID string) (*domain.LocalMedia, error) {
	if err := validateMedia(kind, mediaID); err != nil {
		return nil, err
	}
	mediaDir := filepath.Join(l.root, kind.DirName(), mediaID)

	data, err := os.ReadFile(filepath.Join(mediaDir, kind.DetailFilename()))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewError(domain.ErrNotFound, fmt.Sprintf("media not found: %s", mediaID), nil)
		}
		return nil, domain.NewError(domain.ErrIO, "failed to read media detail", err)
	}
	if !json.Valid(data) {
		return nil, domain.NewError(domain.ErrParse, fmt.Sprintf("invalid media detail: %s", mediaID), nil)
	}

	chapters, err := l.Chapters(kind, mediaID)
	if err != nil {
		return nil, err
	}

	item := &domain.LocalMedia{
		ID:           mediaID,
		Kind:         kind,
		Detail:       json.RawMessage(data),
		CoverPath:    findCover(mediaDir),
		ChapterCount: len(chapters),
	}
	for _, ch := range chapters {
		if ch.DownloadTime > item.LatestDownloadTime {
			item.LatestDownloadTime = ch.DownloadTime
		}
	}
	return item, nil
}

// Chapters returns the chapters of a media item that have a readable
// journal, sorted by chapter name
func (l *Library) Chapters(kind domain.MediaKind, mediaID string) ([]*domain.LocalChapter, error) {
	if err := validateMedia(kind, mediaID); err != nil {
		return nil, err
	}
	keys, err := l.chapterKeys(kind, mediaID)
	if err != nil {
		return nil, err
	}

	chapters := make([]*domain.LocalChapter, 0, len(keys))
	for _, key := range keys {
		ch, err := l.readChapter(key)
		if err != nil {
			l.logger.Debug("Skipping unreadable chapter journal",
				zap.String("task_key", key.String()),
				zap.Error(err))
			continue
		}
		if ch != nil {
			chapters = append(chapters, ch)
		}
	}

	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].ChapterName < chapters[j].ChapterName
	})
	return chapters, nil
}

// ChapterImages returns the paths of the image files of a chapter, sorted.
// A missing chapter yields an empty list.
func (l *Library) ChapterImages(key domain.TaskKey) ([]string, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	dir := key.ChapterDir(l.root)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, domain.NewError(domain.ErrIO, "failed to read chapter directory", err)
	}

	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() && IsImageFile(entry.Name()) {
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(images)
	return images, nil
}

// DeleteChapter removes a chapter directory with everything in it
func (l *Library) DeleteChapter(key domain.TaskKey) error {
	if err := key.Validate(); err != nil {
		return err
	}

	dir := key.ChapterDir(l.root)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return domain.NewError(domain.ErrNotFound, fmt.Sprintf("chapter not found: %s", key), nil)
	}
	if err := os.RemoveAll(dir); err != nil {
		return domain.NewError(domain.ErrIO, "failed to delete chapter", err)
	}

	l.logger.Info("Chapter deleted", zap.String("task_key", key.String()))
	return nil
}

// chapterKeys walks the media directory down to chapter depth and returns the
// key of every directory holding a journal file
func (l *Library) chapterKeys(kind domain.MediaKind, mediaID string) ([]domain.TaskKey, error) {
	mediaDir := filepath.Join(l.root, kind.DirName(), mediaID)
	depth := 1
	if kind == domain.KindManga {
		depth = 2
	}

	type node struct {
		path  string
		parts []string
	}
	var keys []domain.TaskKey
	work := []node{{path: mediaDir}}
	for len(work) > 0 {
		n := work[len(work)-1]
		work = work[:len(work)-1]

		if len(n.parts) == depth {
			if _, err := os.Stat(filepath.Join(n.path, domain.JournalFilename)); err == nil {
				keys = append(keys, keyFromParts(kind, mediaID, n.parts))
			}
			continue
		}

		entries, err := os.ReadDir(n.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && len(n.parts) == 0 {
				return []domain.TaskKey{}, nil
			}
			l.logger.Debug("Skipping unreadable directory", zap.String("path", n.path), zap.Error(err))
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			parts := append(append([]string{}, n.parts...), entry.Name())
			work = append(work, node{path: filepath.Join(n.path, entry.Name()), parts: parts})
		}
	}
	return keys, nil
}

func validateMedia(kind domain.MediaKind, mediaID string) error {
	if !domain.ValidateKind(kind) {
		return domain.NewError(domain.ErrInvalidState, fmt.Sprintf("invalid media kind: %q", kind), nil)
	}
	if mediaID == "" || mediaID == "." || mediaID == ".." || strings.ContainsAny(mediaID, `/\`) {
		return domain.NewError(domain.ErrInvalidState, fmt.Sprintf("invalid media id: %q", mediaID), nil)
	}
	return nil
}

func keyFromParts(kind domain.MediaKind, mediaID string, parts []string) domain.TaskKey {
	if kind == domain.KindManga {
		return domain.NewMangaKey(mediaID, parts[0], parts[1])
	}
	return domain.NewCartoonKey(mediaID, parts[0])
}

func (l *Library) readChapter(key domain.TaskKey) (*domain.LocalChapter, error) {
	if key.Kind == domain.KindManga {
		journal, ok, err := l.journals.ReadManga(key)
		if err != nil || !ok {
			return nil, err
		}
		return &domain.LocalChapter{
			Key:          key,
			GroupID:      key.GroupID,
			ChapterID:    key.ChapterID,
			ChapterName:  journal.ChapterName,
			DownloadTime: journal.DownloadTime,
			ImageCount:   len(journal.Images),
			TotalImages:  journal.TotalImages,
		}, nil
	}

	journal, ok, err := l.journals.ReadCartoon(key)
	if err != nil || !ok {
		return nil, err
	}
	return &domain.LocalChapter{
		Key:          key,
		ChapterID:    key.ChapterID,
		ChapterName:  journal.ChapterName,
		DownloadTime: journal.DownloadTime,
		VideoFile:    journal.VideoFile,
		FileSize:     journal.FileSize,
	}, nil
}

func findCover(mediaDir string) string {
	for _, ext := range coverExtensions {
		path := filepath.Join(mediaDir, "cover."+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
