package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MediaKind identifies the kind of parent media a chapter belongs to
type MediaKind string

const (
	KindManga   MediaKind = "manga"   // ordered image sets
	KindCartoon MediaKind = "cartoon" // single or segmented video
)

// DirName returns the directory name used under the download root
func (k MediaKind) DirName() string {
	if k == KindCartoon {
		return "cartoons"
	}
	return string(k)
}

// DetailFilename returns the sidecar descriptor filename for a parent media item
func (k MediaKind) DetailFilename() string {
	return string(k) + "_detail.json"
}

// TasksFilename returns the task registry filename for this kind
func (k MediaKind) TasksFilename() string {
	return string(k) + "_tasks.json"
}

// ValidateKind checks if a media kind is valid
func ValidateKind(kind MediaKind) bool {
	return kind == KindManga || kind == KindCartoon
}

const keySeparator = "|"

// TaskKey is the composite identity of a download job.
// GroupID is empty for kinds without chapter groups.
type TaskKey struct {
	Kind      MediaKind
	MediaID   string
	GroupID   string
	ChapterID string
}

// NewMangaKey creates the key of a manga chapter
func NewMangaKey(mangaID, groupID, chapterID string) TaskKey {
	return TaskKey{Kind: KindManga, MediaID: mangaID, GroupID: groupID, ChapterID: chapterID}
}

// NewCartoonKey creates the key of a cartoon episode
func NewCartoonKey(cartoonID, chapterID string) TaskKey {
	return TaskKey{Kind: KindCartoon, MediaID: cartoonID, ChapterID: chapterID}
}

// String returns the separator-joined form used as a lookup key
func (k TaskKey) String() string {
	return strings.Join([]string{string(k.Kind), k.MediaID, k.GroupID, k.ChapterID}, keySeparator)
}

// Validate rejects keys that cannot address a chapter on disk
func (k TaskKey) Validate() error {
	if !ValidateKind(k.Kind) {
		return NewError(ErrInvalidState, fmt.Sprintf("invalid media kind: %q", k.Kind), nil)
	}
	if k.MediaID == "" || k.ChapterID == "" {
		return NewError(ErrInvalidState, "media id and chapter id are required", nil)
	}
	if k.Kind == KindManga && k.GroupID == "" {
		return NewError(ErrInvalidState, "group id is required for manga chapters", nil)
	}
	for _, part := range []string{k.MediaID, k.GroupID, k.ChapterID} {
		if strings.ContainsAny(part, `/\`) || part == "." || part == ".." {
			return NewError(ErrInvalidState, fmt.Sprintf("invalid path segment: %q", part), nil)
		}
	}
	return nil
}

// MediaDir returns the parent media directory under root
func (k TaskKey) MediaDir(root string) string {
	return filepath.Join(root, k.Kind.DirName(), k.MediaID)
}

// ChapterDir returns the chapter directory under root
func (k TaskKey) ChapterDir(root string) string {
	if k.GroupID == "" {
		return filepath.Join(k.MediaDir(root), k.ChapterID)
	}
	return filepath.Join(k.MediaDir(root), k.GroupID, k.ChapterID)
}
