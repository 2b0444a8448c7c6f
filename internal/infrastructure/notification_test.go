package infrastructure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/mediafetch-go/internal/domain"
	"go.uber.org/zap"
)

type recordedCommand struct {
	name string
	args []string
}

func newTestNotifier(cfg domain.NotificationConfig, err error) (*NotificationService, *[]recordedCommand) {
	var calls []recordedCommand
	n := NewNotificationService(&cfg, zap.NewNop())
	n.run = func(name string, args ...string) error {
		calls = append(calls, recordedCommand{name: name, args: args})
		return err
	}
	return n, &calls
}

func TestNotificationService_Disabled(t *testing.T) {
	n, calls := newTestNotifier(domain.NotificationConfig{Enabled: false, Method: "notify-send"}, nil)
	assert.NoError(t, n.Send("title", "message"))
	assert.Empty(t, *calls)
}

func TestNotificationService_NotifySend(t *testing.T) {
	n, calls := newTestNotifier(domain.NotificationConfig{Enabled: true, Method: "notify-send"}, nil)
	n.NotifyCompleted("One Piece", "chapter 1")

	if assert.Len(t, *calls, 1) {
		assert.Equal(t, "notify-send", (*calls)[0].name)
		assert.Equal(t, []string{"Download Completed", "One Piece: chapter 1"}, (*calls)[0].args)
	}
}

func TestNotificationService_OSAScriptEscapesQuotes(t *testing.T) {
	n, calls := newTestNotifier(domain.NotificationConfig{Enabled: true, Method: "osascript", Sound: true}, nil)
	assert.NoError(t, n.Send(`say "hi"`, "body"))

	if assert.Len(t, *calls, 1) {
		script := (*calls)[0].args[1]
		assert.Contains(t, script, `say \"hi\"`)
		assert.Contains(t, script, `sound name`)
	}
}

func TestNotificationService_UnknownMethod(t *testing.T) {
	n, calls := newTestNotifier(domain.NotificationConfig{Enabled: true, Method: "pigeon"}, nil)
	assert.NoError(t, n.Send("t", "m"))
	assert.Empty(t, *calls)
}

func TestNotificationService_CommandError(t *testing.T) {
	n, _ := newTestNotifier(domain.NotificationConfig{Enabled: true, Method: "notify-send"}, errors.New("missing binary"))
	assert.Error(t, n.Send("t", "m"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", truncateString("abc", 5))
	assert.Equal(t, "ab...", truncateString("abcdef", 2))
}
