package service

import (
	"context"
	"errors"

	"github.com/martijn/taskdeck/internal/core/domain"
	"github.com/martijn/taskdeck/internal/core/repository"
)

type TaskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// List returns the user's tasks, incomplete first, then newest first.
func (s *TaskService) List(ctx context.Context, user *domain.User) ([]*domain.Task, error) {
	return s.taskRepo.ListByOwner(ctx, user.ID)
}

// Add creates an incomplete task for the user. Empty content is allowed.
func (s *TaskService) Add(ctx context.Context, user *domain.User, content string) (*domain.Task, error) {
	task := domain.NewTask(content, user.ID)
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Toggle flips the completion flag of the user's task. A task id that does
// not exist or belongs to another user is silently ignored, so task ids
// are never confirmed or denied to a caller who does not own them.
func (s *TaskService) Toggle(ctx context.Context, user *domain.User, taskID int64) error {
	task, err := s.taskRepo.FindByIDAndOwner(ctx, taskID, user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.taskRepo.SetCompleted(ctx, task.ID, user.ID, !task.Completed)
}

// Delete removes the user's task. Missing or foreign-owned ids are
// silently ignored, same as Toggle.
func (s *TaskService) Delete(ctx context.Context, user *domain.User, taskID int64) error {
	return s.taskRepo.Delete(ctx, taskID, user.ID)
}
