//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/mediafetch-go/api"
	"github.com/yourusername/mediafetch-go/internal/app"
	"github.com/yourusername/mediafetch-go/internal/domain"
	"github.com/yourusername/mediafetch-go/internal/infrastructure"
)

const segmentCount = 3

// upstream serves images, a cover, an HLS playlist with its segments and a
// direct video. Paths containing "broken" return 404.
type upstream struct {
	*httptest.Server
	requests atomic.Int64
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.requests.Add(1)
		switch {
		case strings.Contains(r.URL.Path, "broken"):
			http.NotFound(w, r)
		case strings.HasSuffix(r.URL.Path, ".m3u8"):
			var b strings.Builder
			b.WriteString("#EXTM3U\n#EXT-X-TARGETDURATION:10\n")
			for i := 0; i < segmentCount; i++ {
				fmt.Fprintf(&b, "#EXTINF:10.0,\nseg%d.ts\n", i)
			}
			b.WriteString("#EXT-X-ENDLIST\n")
			w.Write([]byte(b.String()))
		default:
			w.Write([]byte("<" + r.URL.Path + ">"))
		}
	}))
	t.Cleanup(u.Close)
	return u
}

type stack struct {
	server   *httptest.Server
	root     string
	registry *infrastructure.JSONTaskRegistry
	journals *infrastructure.FileJournalStore
	history  *infrastructure.SQLiteHistoryRepository
}

// newStack wires the same components the server binary does, rooted at root
func newStack(t *testing.T, root string) *stack {
	t.Helper()

	cfg := &domain.DownloadConfig{
		BaseDir:        root,
		RequestTimeout: 5 * time.Second,
		VideoTimeout:   5 * time.Second,
		UserAgent:      "mediafetch-test",
	}
	journals := infrastructure.NewFileJournalStore(root)
	registry := infrastructure.NewJSONTaskRegistry(cfg.TasksDir(), domain.KindCartoon)
	history, err := infrastructure.NewSQLiteHistoryRepository(filepath.Join(root, "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { history.Close() })

	dm := app.NewDownloadManager(
		journals,
		registry,
		history,
		infrastructure.NewHTTPFetcher(cfg.UserAgent, cfg.RequestTimeout),
		nil,
		cfg,
		zap.NewNop(),
	).WithVideoFetcher(infrastructure.NewHTTPFetcher(cfg.UserAgent, cfg.VideoTimeout))

	tasks := app.NewTaskService(registry, nil, zap.NewNop())
	_, err = tasks.RecoverInterrupted()
	require.NoError(t, err)

	router := api.SetupRouter(context.Background(), api.Services{
		DownloadMgr: dm,
		Tasks:       tasks,
		Library:     app.NewLibrary(root, journals, zap.NewNop()),
		History:     history,
	}, zap.NewNop())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &stack{server: server, root: root, registry: registry, journals: journals, history: history}
}

func (s *stack) post(t *testing.T, path string, body any, out any) int {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(s.server.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *stack) get(t *testing.T, path string, out any) int {
	t.Helper()
	resp, err := http.Get(s.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}
