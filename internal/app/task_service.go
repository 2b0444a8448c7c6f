package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yourusername/mediafetch-go/internal/domain"
	"github.com/yourusername/mediafetch-go/pkg/logger"
)

// TaskService manages the persisted registry of video tasks
type TaskService struct {
	registry domain.TaskRegistry
	events   *logger.LoggerAdapter
	logger   *zap.Logger
}

// NewTaskService creates a new task service. events may be nil.
func NewTaskService(registry domain.TaskRegistry, events *logger.LoggerAdapter, log *zap.Logger) *TaskService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskService{
		registry: registry,
		events:   events,
		logger:   log,
	}
}

// List returns every registered task
func (s *TaskService) List() ([]*domain.RegisteredTask, error) {
	return s.registry.List()
}

// ListActive returns tasks a client should reattach to
func (s *TaskService) ListActive() ([]*domain.RegisteredTask, error) {
	return s.registry.ListActive()
}

// Save registers a task or refreshes the status and progress of an existing one
func (s *TaskService) Save(task *domain.RegisteredTask) error {
	if err := task.Key().Validate(); err != nil {
		return err
	}
	if !domain.ValidateTaskStatus(task.Status) {
		return domain.NewError(domain.ErrInvalidState, fmt.Sprintf("invalid task status: %s", task.Status), nil)
	}

	if err := s.registry.Upsert(task); err != nil {
		return err
	}

	s.events.LogTaskEvent("task_saved",
		zap.String("task_key", task.Key().String()),
		zap.String("status", string(task.Status)),
		zap.Float64("progress", task.Progress))
	return nil
}

// UpdateStatus changes the status of a registered task
func (s *TaskService) UpdateStatus(key domain.TaskKey, status domain.TaskStatus) error {
	if !domain.ValidateTaskStatus(status) {
		return domain.NewError(domain.ErrInvalidState, fmt.Sprintf("invalid task status: %s", status), nil)
	}

	if err := s.registry.UpdateStatus(key, status); err != nil {
		return err
	}

	s.events.LogTaskEvent("task_status_changed",
		zap.String("task_key", key.String()),
		zap.String("status", string(status)))
	return nil
}

// Remove deletes a registered task
func (s *TaskService) Remove(key domain.TaskKey) error {
	if err := s.registry.Remove(key); err != nil {
		return err
	}

	s.events.LogTaskEvent("task_removed", zap.String("task_key", key.String()))
	return nil
}

// Cancel marks a task cancelled and then removes it
func (s *TaskService) Cancel(key domain.TaskKey) error {
	if err := s.UpdateStatus(key, domain.TaskCancelled); err != nil {
		return err
	}
	if err := s.Remove(key); err != nil {
		return fmt.Errorf("failed to remove cancelled task: %w", err)
	}

	s.events.LogTaskEvent("task_cancelled", zap.String("task_key", key.String()))
	return nil
}

// RecoverInterrupted marks tasks left downloading by a previous process as
// paused and returns how many were changed
func (s *TaskService) RecoverInterrupted() (int, error) {
	tasks, err := s.registry.List()
	if err != nil {
		return 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	recovered := 0
	for _, task := range tasks {
		if task.Status != domain.TaskDownloading {
			continue
		}
		if err := s.registry.UpdateStatus(task.Key(), domain.TaskPaused); err != nil {
			s.events.LogAppError("Failed to recover interrupted task",
				zap.String("task_key", task.Key().String()),
				zap.Error(err))
			continue
		}
		recovered++
		s.events.LogTaskEvent("task_recovered",
			zap.String("task_key", task.Key().String()),
			zap.Float64("progress", task.Progress))
	}

	if recovered > 0 {
		s.logger.Info("Recovered interrupted tasks", zap.Int("count", recovered))
	}
	return recovered, nil
}
