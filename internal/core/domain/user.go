package domain

import "time"

type User struct {
	ID             int64     `db:"id"`
	Username       string    `db:"username"`
	HashedPassword string    `db:"hashed_password"` // bcrypt hashed
	CreatedAt      time.Time `db:"created_at"`
}

func NewUser(username, hashedPassword string) *User {
	return &User{
		Username:       username,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now(),
	}
}
