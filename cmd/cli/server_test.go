package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLauncher_BinaryResolution(t *testing.T) {
	t.Setenv(serverBinaryEnv, "")
	assert.Equal(t, defaultServerBinary, newLauncher("http://x", "", "").binary)

	t.Setenv(serverBinaryEnv, "from-env")
	assert.Equal(t, "from-env", newLauncher("http://x", "", "").binary)
	assert.Equal(t, "from-flag", newLauncher("http://x", "from-flag", "").binary)
}

func TestLauncher_LocateExplicitPath(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "custom-server")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))

	l := newLauncher("http://x", bin, "")
	assert.Equal(t, []string{bin}, l.candidates())

	path, err := l.locate()
	require.NoError(t, err)
	assert.Equal(t, bin, path)

	missing := newLauncher("http://x", filepath.Join(t.TempDir(), "nope"), "")
	_, err = missing.locate()
	assert.ErrorIs(t, err, errServerBinaryNotFound)

	// a directory is not a binary
	dir := newLauncher("http://x", t.TempDir()+string(filepath.Separator), "")
	_, err = dir.locate()
	assert.ErrorIs(t, err, errServerBinaryNotFound)
}

func TestLauncher_CommandPassesConfig(t *testing.T) {
	l := newLauncher("http://x", "srv", "/etc/mediafetch/config.yaml")
	cmd := l.command("/opt/srv")
	assert.Equal(t, []string{"/opt/srv", "-config", "/etc/mediafetch/config.yaml"}, cmd.Args)

	cmd = newLauncher("http://x", "srv", "").command("/opt/srv")
	assert.Equal(t, []string{"/opt/srv"}, cmd.Args)
}

func TestLauncher_EnsureWhenReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ready", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	// never reaches the binary lookup
	l := newLauncher(srv.URL+"/", filepath.Join(t.TempDir(), "nope"), "")
	require.NoError(t, l.ensure(context.Background()))
}

func TestLauncher_WaitReadyTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	l := newLauncher(srv.URL, "", "")
	l.poll = 10 * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.waitReady(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
