package domain

import "context"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	AdminUsername = "admin"
)

type User struct {
	ID           int64  `json:"id"       db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-"        db:"password_hash"`
	Role         string `json:"role"     db:"role"`
}

// Identity is what a session token carries.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserRepository does not enforce unique usernames. GetUserByUsername returns
// the oldest matching row and UpdatePassword touches all of them.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) (int64, error)
}
