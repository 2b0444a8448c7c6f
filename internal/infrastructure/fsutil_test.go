package infrastructure

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalPretty(t *testing.T) {
	data, err := MarshalPretty(map[string]string{"url": "https://x/?a=1&b=<2>"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"url\": \"https://x/?a=1&b=<2>\"\n}", string(data))
}

func TestWriteJSONAtomic_CreatesDirsAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "info.json")

	require.NoError(t, WriteJSONAtomic(target, []string{"001.jpg"}))
	require.NoError(t, WriteJSONAtomic(target, []string{"001.jpg", "002.jpg"}))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "002.jpg")

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".tmp-"), "temp file left behind: %s", e.Name())
	}
}

func TestWriteFileAtomic_EmptyName(t *testing.T) {
	assert.Error(t, WriteFileAtomic("", []byte("x")))
}

func TestFileChecks(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	full := filepath.Join(dir, "full")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))

	assert.True(t, FileExists(empty))
	assert.False(t, NonEmptyFile(empty))
	assert.True(t, NonEmptyFile(full))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
}
