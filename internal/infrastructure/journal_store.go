package infrastructure

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

// FileJournalStore keeps one info.json per chapter directory under root
type FileJournalStore struct {
	root string
}

// NewFileJournalStore creates a journal store rooted at the download directory
func NewFileJournalStore(root string) *FileJournalStore {
	return &FileJournalStore{root: root}
}

// Path returns the journal file of key
func (s *FileJournalStore) Path(key domain.TaskKey) string {
	return filepath.Join(key.ChapterDir(s.root), domain.JournalFilename)
}

// ReadManga returns the chapter journal of key
func (s *FileJournalStore) ReadManga(key domain.TaskKey) (*domain.MangaJournal, bool, error) {
	var journal domain.MangaJournal
	ok, err := s.read(key, &journal)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &journal, true, nil
}

// WriteManga overwrites the chapter journal of key
func (s *FileJournalStore) WriteManga(key domain.TaskKey, journal *domain.MangaJournal) error {
	return s.write(key, journal)
}

// ReadCartoon returns the episode journal of key
func (s *FileJournalStore) ReadCartoon(key domain.TaskKey) (*domain.CartoonJournal, bool, error) {
	var journal domain.CartoonJournal
	ok, err := s.read(key, &journal)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &journal, true, nil
}

// WriteCartoon overwrites the episode journal of key
func (s *FileJournalStore) WriteCartoon(key domain.TaskKey, journal *domain.CartoonJournal) error {
	return s.write(key, journal)
}

func (s *FileJournalStore) read(key domain.TaskKey, v any) (bool, error) {
	path := s.Path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, domain.NewError(domain.ErrIO, fmt.Sprintf("failed to read journal %s", path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, domain.NewError(domain.ErrParse, fmt.Sprintf("failed to parse journal %s", path), err)
	}
	return true, nil
}

func (s *FileJournalStore) write(key domain.TaskKey, v any) error {
	path := s.Path(key)
	if err := WriteJSONAtomic(path, v); err != nil {
		return domain.NewError(domain.ErrIO, fmt.Sprintf("failed to write journal %s", path), err)
	}
	return nil
}
