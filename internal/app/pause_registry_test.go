package app

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/mediafetch-go/internal/domain"
)

func TestPauseRegistry_PauseResume(t *testing.T) {
	r := NewPauseRegistry()
	key := domain.NewMangaKey("m", "g", "c")

	assert.False(t, r.IsPaused(key))
	assert.Equal(t, 0, r.Len(), "reads do not create flags")

	assert.True(t, r.Pause(key))
	assert.True(t, r.IsPaused(key))

	assert.True(t, r.Resume(key))
	assert.False(t, r.IsPaused(key))
	assert.Equal(t, 1, r.Len(), "resume keeps the flag")

	r.Clear(key)
	assert.Equal(t, 0, r.Len())
}

func TestPauseRegistry_KeysAreIndependent(t *testing.T) {
	r := NewPauseRegistry()
	a := domain.NewMangaKey("m", "g", "c1")
	b := domain.NewMangaKey("m", "g", "c2")

	r.Pause(a)
	assert.True(t, r.IsPaused(a))
	assert.False(t, r.IsPaused(b))
}

func TestPauseRegistry_Concurrent(t *testing.T) {
	r := NewPauseRegistry()
	key := domain.NewCartoonKey("a", "e")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				r.Pause(key)
			} else {
				r.IsPaused(key)
			}
		}(i)
	}
	wg.Wait()
	assert.True(t, r.IsPaused(key))
}
