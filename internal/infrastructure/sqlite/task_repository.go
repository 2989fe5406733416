package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martijn/taskdeck/internal/core/domain"
	"github.com/martijn/taskdeck/internal/core/repository"
)

type taskRepository struct {
	db *DB
}

func NewTaskRepository(db *DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (content, completed, owner_id, created_at)
		VALUES (?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		task.Content,
		task.Completed,
		task.OwnerID,
		task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get task id: %w", err)
	}
	task.ID = id

	return nil
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	query := `
		SELECT id, content, completed, owner_id, created_at
		FROM tasks
		WHERE owner_id = ?
		ORDER BY completed ASC, id DESC
	`
	var tasks []*domain.Task
	err := r.db.SelectContext(ctx, &tasks, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Task, error) {
	query := `
		SELECT id, content, completed, owner_id, created_at
		FROM tasks
		WHERE id = ? AND owner_id = ?
	`
	var task domain.Task
	err := r.db.GetContext(ctx, &task, query, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

func (r *taskRepository) SetCompleted(ctx context.Context, id, ownerID int64, completed bool) error {
	query := `UPDATE tasks SET completed = ? WHERE id = ? AND owner_id = ?`
	if _, err := r.db.ExecContext(ctx, query, completed, id, ownerID); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM tasks WHERE id = ? AND owner_id = ?`
	if _, err := r.db.ExecContext(ctx, query, id, ownerID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
