package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/mediafetch-go/internal/app"
	"github.com/yourusername/mediafetch-go/internal/domain"
)

// TaskHandler handles task registry requests
type TaskHandler struct {
	tasks  *app.TaskService
	logger *zap.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(tasks *app.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		tasks:  tasks,
		logger: logger,
	}
}

// UpdateStatusRequest represents a request to change a task status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListTasks handles GET /api/v1/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var (
		tasks []*domain.RegisteredTask
		err   error
	)
	if c.Query("active") == "true" {
		tasks, err = h.tasks.ListActive()
	} else {
		tasks, err = h.tasks.List()
	}
	if err != nil {
		h.logger.Error("Failed to list tasks", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// SaveTask handles POST /api/v1/tasks
func (h *TaskHandler) SaveTask(c *gin.Context) {
	var task domain.RegisteredTask
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	now := domain.FormatTimestamp(time.Now())
	if task.StartTime == "" {
		task.StartTime = now
	}
	task.UpdatedAt = now

	if err := h.tasks.Save(&task); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateStatus handles PUT /api/v1/tasks/:cartoon/:chapter/status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tasks.UpdateStatus(taskKey(c), domain.TaskStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task status updated"})
}

// RemoveTask handles DELETE /api/v1/tasks/:cartoon/:chapter
func (h *TaskHandler) RemoveTask(c *gin.Context) {
	if err := h.tasks.Remove(taskKey(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task removed"})
}

// CancelTask handles POST /api/v1/tasks/:cartoon/:chapter/cancel
func (h *TaskHandler) CancelTask(c *gin.Context) {
	if err := h.tasks.Cancel(taskKey(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task cancelled"})
}

func taskKey(c *gin.Context) domain.TaskKey {
	return domain.NewCartoonKey(c.Param("cartoon"), c.Param("chapter"))
}
