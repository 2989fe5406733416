package repository

import (
	"context"

	"github.com/martijn/taskdeck/internal/core/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	// ListByOwner returns the owner's tasks, incomplete first, newest first
	// within each group.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Task, error)
	SetCompleted(ctx context.Context, id, ownerID int64, completed bool) error
	Delete(ctx context.Context, id, ownerID int64) error
}
