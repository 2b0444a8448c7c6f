package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultServerBinary = "mediafetch-server"
	serverBinaryEnv     = "MEDIAFETCH_SERVER_BIN"

	serverStartTimeout = 10 * time.Second
	serverPollInterval = 200 * time.Millisecond
	readyTimeout       = 1 * time.Second
)

var errServerBinaryNotFound = errors.New("server binary not found")

// launcher starts a local server on demand and waits for /ready
type launcher struct {
	baseURL    string
	binary     string // name looked up in the usual places, or a path
	configFile string // passed to the server as -config when set
	client     *http.Client
	poll       time.Duration
}

func newLauncher(baseURL, binary, configFile string) *launcher {
	if binary == "" {
		binary = os.Getenv(serverBinaryEnv)
	}
	if binary == "" {
		binary = defaultServerBinary
	}
	return &launcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		binary:     binary,
		configFile: configFile,
		client:     &http.Client{Timeout: readyTimeout},
		poll:       serverPollInterval,
	}
}

func (l *launcher) ready(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/ready", nil)
	if err != nil {
		return false
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// candidates lists where the binary may live, in lookup order. A binary
// given as a path is the only candidate.
func (l *launcher) candidates() []string {
	if strings.ContainsRune(l.binary, filepath.Separator) {
		return []string{l.binary}
	}

	var paths []string
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), l.binary))
	}
	if p, err := exec.LookPath(l.binary); err == nil {
		paths = append(paths, p)
	}
	paths = append(paths, filepath.Join("/usr/local/bin", l.binary))
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, "go", "bin", l.binary),
			filepath.Join(home, ".local", "bin", l.binary))
	}
	return paths
}

func (l *launcher) locate() (string, error) {
	for _, p := range l.candidates() {
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s (set --server-bin or %s)", errServerBinaryNotFound, l.binary, serverBinaryEnv)
}

func (l *launcher) command(path string) *exec.Cmd {
	var args []string
	if l.configFile != "" {
		args = append(args, "-config", l.configFile)
	}
	cmd := exec.Command(path, args...)
	// own process group so closing the terminal leaves the server running
	setSysProcAttr(cmd)
	return cmd
}

func (l *launcher) start() error {
	path, err := l.locate()
	if err != nil {
		return err
	}
	cmd := l.command(path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", path, err)
	}
	return cmd.Process.Release()
}

func (l *launcher) waitReady(ctx context.Context) error {
	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()

	for {
		if l.ready(ctx) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("server at %s not ready: %w", l.baseURL, ctx.Err())
		case <-ticker.C:
		}
	}
}

// ensure starts the server when it does not answer and waits until it does
func (l *launcher) ensure(ctx context.Context) error {
	if l.ready(ctx) {
		return nil
	}

	fmt.Println("Server not running, starting...")
	if err := l.start(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, serverStartTimeout)
	defer cancel()
	if err := l.waitReady(ctx); err != nil {
		return err
	}

	fmt.Println("Server started successfully")
	return nil
}
