package domain

import (
	"path/filepath"
	"time"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Upstream     UpstreamConfig     `mapstructure:"upstream"`
	Download     DownloadConfig     `mapstructure:"download"`
	History      HistoryConfig      `mapstructure:"history"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// UpstreamConfig describes the remote API the proxy layer forwards to.
// The downloaders never read it.
type UpstreamConfig struct {
	Domain  string            `mapstructure:"domain"`
	Headers map[string]string `mapstructure:"headers"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	BaseDir        string        `mapstructure:"base_dir"`
	ImageDelay     time.Duration `mapstructure:"image_delay"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	VideoTimeout   time.Duration `mapstructure:"video_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// TasksDir returns the directory holding the task registry files
func (c DownloadConfig) TasksDir() string {
	return filepath.Join(c.BaseDir, "tasks")
}

// KindDir returns the root directory for one media kind
func (c DownloadConfig) KindDir(kind MediaKind) string {
	return filepath.Join(c.BaseDir, kind.DirName())
}

// HistoryConfig contains download history database configuration
type HistoryConfig struct {
	DatabasePath string `mapstructure:"database_path"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Sound   bool   `mapstructure:"sound"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
	LogsDir    string `mapstructure:"logs_dir"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 5001,
		},
		Upstream: UpstreamConfig{
			Domain:  "",
			Headers: map[string]string{},
		},
		Download: DownloadConfig{
			BaseDir:        "$HOME/.mediafetch/downloads",
			ImageDelay:     200 * time.Millisecond,
			RequestTimeout: 30 * time.Second,
			VideoTimeout:   300 * time.Second,
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		},
		History: HistoryConfig{
			DatabasePath: "$HOME/.mediafetch/history.db",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Sound:   false,
			Method:  "notify-send",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
			LogsDir:    "$HOME/.mediafetch/logs",
		},
	}
}
