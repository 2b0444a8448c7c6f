package infrastructure

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/yourusername/mediafetch-go/internal/domain"
	"go.uber.org/zap"
)

// commandRunner runs an external notifier binary
type commandRunner func(name string, args ...string) error

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// NotificationService handles sending desktop notifications
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
	run    commandRunner
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		config: config,
		logger: logger,
		run:    runCommand,
	}
}

// Send sends a notification
func (n *NotificationService) Send(title, message string) error {
	if !n.config.Enabled {
		n.logger.Debug("Notifications disabled, skipping",
			zap.String("title", title),
			zap.String("message", message))
		return nil
	}

	var err error
	switch n.config.Method {
	case "osascript":
		err = n.run("osascript", "-e", osaScript(title, message, n.config.Sound))
	case "notify-send":
		err = n.run("notify-send", title, message)
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.config.Method))
		return nil
	}

	if err != nil {
		n.logger.Error("Failed to send notification",
			zap.String("method", n.config.Method),
			zap.Error(err))
		return err
	}

	n.logger.Debug("Notification sent",
		zap.String("title", title),
		zap.String("message", message))
	return nil
}

func osaScript(title, message string, sound bool) string {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeQuotes(message), escapeQuotes(title))
	if sound {
		script += ` sound name "Glass"`
	}
	return script
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// NotifyCompleted sends notification when a chapter or episode finishes
func (n *NotificationService) NotifyCompleted(title, message string) {
	n.Send("Download Completed", fmt.Sprintf("%s: %s", truncateString(title, 30), message))
}

// NotifyFailed sends notification when a chapter or episode fails
func (n *NotificationService) NotifyFailed(title, message string) {
	n.Send("Download Failed", fmt.Sprintf("%s: %s", truncateString(title, 30), truncateString(message, 60)))
}

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
