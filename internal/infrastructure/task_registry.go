package infrastructure

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

// JSONTaskRegistry keeps the video task list in one JSON file.
// Every operation reads, modifies and rewrites the whole list.
type JSONTaskRegistry struct {
	mu   sync.Mutex
	path string
}

// NewJSONTaskRegistry creates a registry for kind under tasksDir
func NewJSONTaskRegistry(tasksDir string, kind domain.MediaKind) *JSONTaskRegistry {
	return &JSONTaskRegistry{path: filepath.Join(tasksDir, kind.TasksFilename())}
}

// Path returns the backing file
func (r *JSONTaskRegistry) Path() string {
	return r.path
}

// List returns every entry
func (r *JSONTaskRegistry) List() ([]*domain.RegisteredTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// ListActive returns entries that are downloading or paused
func (r *JSONTaskRegistry) ListActive() ([]*domain.RegisteredTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return nil, err
	}
	active := make([]*domain.RegisteredTask, 0, len(tasks))
	for _, t := range tasks {
		if t.Status.IsActive() {
			active = append(active, t)
		}
	}
	return active, nil
}

// Upsert appends task, or overwrites status/progress/updated_at of the entry with the same key
func (r *JSONTaskRegistry) Upsert(task *domain.RegisteredTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return err
	}
	if existing := find(tasks, task.Key()); existing != nil {
		existing.Status = task.Status
		existing.Progress = task.Progress
		existing.UpdatedAt = task.UpdatedAt
	} else {
		tasks = append(tasks, task)
	}
	return r.save(tasks)
}

// UpdateStatus changes the status of an existing entry
func (r *JSONTaskRegistry) UpdateStatus(key domain.TaskKey, status domain.TaskStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return err
	}
	existing := find(tasks, key)
	if existing == nil {
		return notFound(key)
	}
	existing.Touch(status, existing.Progress)
	return r.save(tasks)
}

// Remove deletes an existing entry
func (r *JSONTaskRegistry) Remove(key domain.TaskKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return err
	}
	for i, t := range tasks {
		if t.Key() == key {
			tasks = append(tasks[:i], tasks[i+1:]...)
			return r.save(tasks)
		}
	}
	return notFound(key)
}

func (r *JSONTaskRegistry) load() ([]*domain.RegisteredTask, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*domain.RegisteredTask{}, nil
		}
		return nil, domain.NewError(domain.ErrIO, "failed to read task registry", err)
	}
	var tasks []*domain.RegisteredTask
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, domain.NewError(domain.ErrParse, "failed to parse task registry", err)
	}
	if tasks == nil {
		tasks = []*domain.RegisteredTask{}
	}
	return tasks, nil
}

func (r *JSONTaskRegistry) save(tasks []*domain.RegisteredTask) error {
	if err := WriteJSONAtomic(r.path, tasks); err != nil {
		return domain.NewError(domain.ErrIO, "failed to write task registry", err)
	}
	return nil
}

func find(tasks []*domain.RegisteredTask, key domain.TaskKey) *domain.RegisteredTask {
	for _, t := range tasks {
		if t.Key() == key {
			return t
		}
	}
	return nil
}

func notFound(key domain.TaskKey) error {
	return domain.NewError(domain.ErrNotFound, fmt.Sprintf("task not found: %s", key), nil)
}
