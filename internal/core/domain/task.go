package domain

import "time"

type Task struct {
	ID        int64     `db:"id"`
	Content   string    `db:"content"`
	Completed bool      `db:"completed"`
	OwnerID   int64     `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
}

func NewTask(content string, ownerID int64) *Task {
	return &Task{
		Content:   content,
		Completed: false,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}
}
