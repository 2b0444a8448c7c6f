package app

import (
	"context"
	"sync"
	"testing"

	"github.com/yourusername/mediafetch-go/internal/domain"
	"github.com/yourusername/mediafetch-go/internal/infrastructure"
	"go.uber.org/zap"
)

// fakeFetcher serves canned bodies and records every requested URL
type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string][]byte
	failures  map[string]error
	calls     []string
	onFetch   func(url string)
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		responses: make(map[string][]byte),
		failures:  make(map[string]error),
	}
}

func (f *fakeFetcher) serve(url string, body []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[url] = body
}

func (f *fakeFetcher) fail(url string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[url] = err
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	hook := f.onFetch
	f.mu.Unlock()

	if hook != nil {
		hook(url)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failures[url]; ok {
		return nil, err
	}
	if body, ok := f.responses[url]; ok {
		return body, nil
	}
	return nil, &domain.NetworkError{URL: url, StatusCode: 404}
}

func (f *fakeFetcher) count(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == url {
			n++
		}
	}
	return n
}

func (f *fakeFetcher) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeHistory implements domain.HistoryRepository in memory
type fakeHistory struct {
	mu      sync.Mutex
	records []*domain.DownloadRecord
}

func (h *fakeHistory) Create(record *domain.DownloadRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return nil
}

func (h *fakeHistory) FindRecent(limit int) ([]*domain.DownloadRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*domain.DownloadRecord, 0, len(h.records))
	for i := len(h.records) - 1; i >= 0; i-- {
		out = append(out, h.records[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (h *fakeHistory) FindByTaskKey(key string) ([]*domain.DownloadRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []*domain.DownloadRecord
	for _, r := range h.records {
		if r.TaskKey == key {
			out = append(out, r)
		}
	}
	return out, nil
}

func (h *fakeHistory) GetStats() (*domain.HistoryStats, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return &domain.HistoryStats{Total: int64(len(h.records))}, nil
}

func (h *fakeHistory) outcomes() []domain.DownloadOutcome {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]domain.DownloadOutcome, 0, len(h.records))
	for _, r := range h.records {
		out = append(out, r.Outcome)
	}
	return out
}

// fakeNotifier counts notifications
type fakeNotifier struct {
	mu        sync.Mutex
	completed int
	failed    int
}

func (n *fakeNotifier) NotifyCompleted(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.completed++
}

func (n *fakeNotifier) NotifyFailed(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failed++
}

type engineFixture struct {
	dm       *DownloadManager
	root     string
	fetcher  *fakeFetcher
	history  *fakeHistory
	notifier *fakeNotifier
	journals *infrastructure.FileJournalStore
	registry *infrastructure.JSONTaskRegistry
}

func newEngine(t *testing.T) *engineFixture {
	t.Helper()
	root := t.TempDir()
	cfg := &domain.DownloadConfig{BaseDir: root}

	f := &engineFixture{
		root:     root,
		fetcher:  newFakeFetcher(),
		history:  &fakeHistory{},
		notifier: &fakeNotifier{},
		journals: infrastructure.NewFileJournalStore(root),
		registry: infrastructure.NewJSONTaskRegistry(cfg.TasksDir(), domain.KindCartoon),
	}
	f.dm = NewDownloadManager(f.journals, f.registry, f.history, f.fetcher, f.notifier, cfg, zap.NewNop())
	return f
}
