package domain

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.NotNil(t, config)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 5001, config.Server.Port)
	assert.Equal(t, 200*time.Millisecond, config.Download.ImageDelay)
	assert.Equal(t, 30*time.Second, config.Download.RequestTimeout)
	assert.Equal(t, 300*time.Second, config.Download.VideoTimeout)
	assert.NotEmpty(t, config.Download.UserAgent)
	assert.NotNil(t, config.Upstream.Headers)
	assert.False(t, config.Notification.Enabled)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestDownloadConfig_Dirs(t *testing.T) {
	cfg := DownloadConfig{BaseDir: "/data/downloads"}

	assert.Equal(t, filepath.Join("/data/downloads", "tasks"), cfg.TasksDir())
	assert.Equal(t, filepath.Join("/data/downloads", "manga"), cfg.KindDir(KindManga))
	assert.Equal(t, filepath.Join("/data/downloads", "cartoons"), cfg.KindDir(KindCartoon))
}
