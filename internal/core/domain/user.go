package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin        = "admin"
	RoleCollaborator = "collaborator"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// User models an operator account in the back office.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the known operator roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCollaborator
}
