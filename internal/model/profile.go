package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of portal roles.
type Role string

const (
	RoleStudent Role = "student"
	RoleAgent   Role = "agent"
	RoleAdmin   Role = "admin"
)

// ErrUnknownRole is returned when a role string is outside the closed set.
// There is deliberately no fallback role.
var ErrUnknownRole = errors.New("unknown role")

// ParseRole validates a raw role string against the closed set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleStudent, RoleAgent, RoleAdmin:
		return Role(raw), nil
	}
	return "", ErrUnknownRole
}

// Profile represents a portal account (student, agent, or admin).
type Profile struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest is the payload for the public sign-up endpoint.
// Sign-up always creates a student profile; agents and admins are
// provisioned with the create-admin CLI.
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=120"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest is the payload for the sign-in endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// AuthResponse is returned after a successful sign-up or sign-in.
type AuthResponse struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}
