package app

import (
	"sync"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

// PauseRegistry holds the cooperative pause flag of each task.
// Flags are created lazily and dropped when an invocation ends.
type PauseRegistry struct {
	mu    sync.Mutex
	flags map[domain.TaskKey]bool
}

// NewPauseRegistry creates an empty registry
func NewPauseRegistry() *PauseRegistry {
	return &PauseRegistry{flags: make(map[domain.TaskKey]bool)}
}

// Pause sets the flag of key and returns its resulting value
func (r *PauseRegistry) Pause(key domain.TaskKey) bool {
	return r.set(key, true)
}

// Resume clears the flag of key for the next check
func (r *PauseRegistry) Resume(key domain.TaskKey) bool {
	return !r.set(key, false)
}

func (r *PauseRegistry) set(key domain.TaskKey, paused bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flags[key] = paused
	return r.flags[key]
}

// IsPaused reports the current flag of key; absent flags read as false
func (r *PauseRegistry) IsPaused(key domain.TaskKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flags[key]
}

// Clear drops the flag of key
func (r *PauseRegistry) Clear(key domain.TaskKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flags, key)
}

// Len returns the number of flags held
func (r *PauseRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.flags)
}
