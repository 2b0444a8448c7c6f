package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/yourusername/mediafetch-go/internal/app"
	"github.com/yourusername/mediafetch-go/internal/domain"
)

const (
	pingInterval     = 30 * time.Second
	clientBufferSize = 64
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ProgressFrame is one message on the progress stream. The first frame of a
// connection is a snapshot of every running task; later frames carry a
// single task update.
type ProgressFrame struct {
	Type     string                         `json:"type"`
	TaskKey  string                         `json:"task_key,omitempty"`
	Progress *domain.LiveProgress           `json:"progress,omitempty"`
	Tasks    map[string]domain.LiveProgress `json:"tasks,omitempty"`
}

const (
	FrameSnapshot = "snapshot"
	FrameProgress = "progress"
)

// ProgressWebSocketHandler streams live progress to websocket clients
type ProgressWebSocketHandler struct {
	ctx      context.Context
	progress *app.ProgressTable
	logger   *zap.Logger
	clients  map[*websocket.Conn]chan ProgressFrame
	mu       sync.RWMutex
}

// NewProgressWebSocketHandler subscribes to the table once; every update is
// fanned out to the connected clients. The stream ends when ctx is done.
func NewProgressWebSocketHandler(ctx context.Context, progress *app.ProgressTable, log *zap.Logger) *ProgressWebSocketHandler {
	h := &ProgressWebSocketHandler{
		ctx:      ctx,
		progress: progress,
		logger:   log,
		clients:  make(map[*websocket.Conn]chan ProgressFrame),
	}
	progress.OnUpdate(h.broadcast)
	return h
}

// broadcast runs on the downloader goroutine, so it never blocks: a client
// whose buffer is full misses the update.
func (h *ProgressWebSocketHandler) broadcast(key domain.TaskKey, progress domain.LiveProgress) {
	frame := ProgressFrame{Type: FrameProgress, TaskKey: key.String(), Progress: &progress}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn, ch := range h.clients {
		select {
		case ch <- frame:
		default:
			h.logger.Debug("Dropping progress frame for slow client",
				zap.String("task_key", frame.TaskKey),
				zap.String("remote_addr", conn.RemoteAddr().String()))
		}
	}
}

// Clients returns the number of connected clients
func (h *ProgressWebSocketHandler) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket streams progress frames until the client goes away
func (h *ProgressWebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade WebSocket", zap.Error(err))
		return
	}
	defer conn.Close()

	// registered before the snapshot so no update falls between the two
	frames := make(chan ProgressFrame, clientBufferSize)
	h.mu.Lock()
	h.clients[conn] = frames
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	h.logger.Info("Progress client connected", zap.String("remote_addr", c.Request.RemoteAddr))

	snapshot := ProgressFrame{Type: FrameSnapshot, Tasks: h.progress.Snapshot()}
	if err := conn.WriteJSON(snapshot); err != nil {
		h.logger.Error("Failed to send progress snapshot", zap.Error(err))
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case frame := <-frames:
			if err := conn.WriteJSON(frame); err != nil {
				h.logger.Error("Failed to send progress frame", zap.Error(err))
				return
			}

		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			return

		case <-h.ctx.Done():
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		}
	}
}
