package app

import (
	"sync"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

// ProgressObserver is called with a copy of every stored snapshot
type ProgressObserver func(key domain.TaskKey, progress domain.LiveProgress)

// ProgressTable holds the live progress of running tasks
type ProgressTable struct {
	mu        sync.RWMutex
	entries   map[domain.TaskKey]*domain.LiveProgress
	observers []ProgressObserver
}

// NewProgressTable creates an empty table
func NewProgressTable() *ProgressTable {
	return &ProgressTable{entries: make(map[domain.TaskKey]*domain.LiveProgress)}
}

// OnUpdate registers an observer. Observers run outside the table lock
// on the goroutine that made the change.
func (t *ProgressTable) OnUpdate(observer ProgressObserver) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, observer)
}

// Set replaces the entry of key
func (t *ProgressTable) Set(key domain.TaskKey, progress domain.LiveProgress) {
	t.mu.Lock()
	entry := progress
	t.entries[key] = &entry
	observers := t.observers
	t.mu.Unlock()

	notify(observers, key, progress)
}

// Update mutates the entry of key in place. Missing entries are left absent.
func (t *ProgressTable) Update(key domain.TaskKey, mutate func(p *domain.LiveProgress)) {
	t.mu.Lock()
	entry, ok := t.entries[key]
	if !ok {
		t.mu.Unlock()
		return
	}
	mutate(entry)
	snapshot := *entry
	observers := t.observers
	t.mu.Unlock()

	notify(observers, key, snapshot)
}

// Get returns a copy of the entry of key
func (t *ProgressTable) Get(key domain.TaskKey) (domain.LiveProgress, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entry, ok := t.entries[key]
	if !ok {
		return domain.LiveProgress{}, false
	}
	return *entry, true
}

// Remove drops the entry of key
func (t *ProgressTable) Remove(key domain.TaskKey) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key)
}

// Snapshot copies every entry, keyed by the string form of the task key
func (t *ProgressTable) Snapshot() map[string]domain.LiveProgress {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]domain.LiveProgress, len(t.entries))
	for key, entry := range t.entries {
		out[key.String()] = *entry
	}
	return out
}

func notify(observers []ProgressObserver, key domain.TaskKey, progress domain.LiveProgress) {
	for _, observer := range observers {
		observer(key, progress)
	}
}
