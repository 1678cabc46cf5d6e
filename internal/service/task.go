package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bexshelf/bexshelf-server/internal/domain"
	domainerrors "github.com/bexshelf/bexshelf-server/internal/errors"
	"github.com/bexshelf/bexshelf-server/internal/id"
	"github.com/bexshelf/bexshelf-server/internal/store"
)

// TaskService manages planner tasks.
type TaskService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(store *store.Store, logger *slog.Logger) *TaskService {
	return &TaskService{store: store, logger: logger}
}

// CreateTaskRequest contains data for a new task.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=500"`
	Description string `json:"description" validate:"max=5000"`
	Status      string `json:"status" validate:"required,oneof=todo doing done"`
	DueDate     string `json:"dueDate" validate:"required,datetime=2006-01-02"`
}

// UpdateTaskRequest contains a partial task update.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=500"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Status      *string `json:"status" validate:"omitempty,oneof=todo doing done"`
	DueDate     *string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

// ListTasks returns the user's tasks, optionally filtered to one due date.
func (s *TaskService) ListTasks(ctx context.Context, userID, dueDate string) ([]domain.Task, error) {
	tasks, err := s.store.Tasks.Filter(ctx, func(t *domain.Task) bool {
		if !t.OwnedBy(userID) {
			return false
		}
		return dueDate == "" || t.DueDate == dueDate
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// ListTasksByStatus returns the user's tasks in one kanban column.
func (s *TaskService) ListTasksByStatus(ctx context.Context, userID, status string) ([]domain.Task, error) {
	if !domain.TaskStatus(status).IsValid() {
		return nil, domainerrors.Validationf("invalid task status %q", status)
	}

	tasks, err := s.store.Tasks.Filter(ctx, func(t *domain.Task) bool {
		return t.OwnedBy(userID) && t.Status == domain.TaskStatus(status)
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks by status: %w", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// GetTask retrieves a task the user owns.
func (s *TaskService) GetTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.store.Tasks.Find(ctx, func(t *domain.Task) bool {
		return t.ID == taskID && t.OwnedBy(userID)
	})
	if err != nil {
		return nil, orNotFound(err, "task not found")
	}
	return task, nil
}

// CreateTask adds a task to the planner.
func (s *TaskService) CreateTask(ctx context.Context, userID string, req CreateTaskRequest) (*domain.Task, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	taskID, err := id.Generate(id.Task)
	if err != nil {
		return nil, fmt.Errorf("generate task ID: %w", err)
	}

	task := domain.Task{
		Record:      domain.Record{ID: taskID},
		Owned:       domain.Owned{UserID: userID},
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		DueDate:     req.DueDate,
	}
	task.InitTimestamps()

	if err := s.store.Tasks.Insert(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	s.logger.Info("Task created", "task_id", taskID, "user_id", userID)
	return &task, nil
}

// UpdateTask applies a partial update to a task the user owns.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, req UpdateTaskRequest) (*domain.Task, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	task, err := s.store.Tasks.Update(ctx,
		func(t *domain.Task) bool { return t.ID == taskID && t.OwnedBy(userID) },
		func(t *domain.Task) error {
			if req.Title != nil {
				t.Title = strings.TrimSpace(*req.Title)
			}
			if req.Description != nil {
				t.Description = *req.Description
			}
			if req.Status != nil {
				t.Status = domain.TaskStatus(*req.Status)
			}
			if req.DueDate != nil {
				t.DueDate = *req.DueDate
			}
			t.Touch()
			return nil
		},
	)
	if err != nil {
		return nil, orNotFound(err, "task not found")
	}
	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	_, err := s.store.Tasks.Remove(ctx, func(t *domain.Task) bool {
		return t.ID == taskID && t.OwnedBy(userID)
	})
	if err != nil {
		return orNotFound(err, "task not found")
	}

	s.logger.Info("Task deleted", "task_id", taskID, "user_id", userID)
	return nil
}

// Stats summarizes the user's planner: counts per column and per due date.
func (s *TaskService) Stats(ctx context.Context, userID string) (*domain.TaskStats, error) {
	tasks, err := s.ListTasks(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	stats := &domain.TaskStats{
		Total:       len(tasks),
		TasksByDate: make(map[string]int),
	}
	for i := range tasks {
		switch tasks[i].Status {
		case domain.TaskStatusTodo:
			stats.Todo++
		case domain.TaskStatusDoing:
			stats.Doing++
		case domain.TaskStatusDone:
			stats.Done++
		}
		stats.TasksByDate[tasks[i].DueDate]++
	}
	return stats, nil
}
