package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RoleName is the full name of a role assigned to a user (ROLE_ prefixed,
// uppercase, underscore-delimited).
type RoleName string

const (
	RoleAdmin RoleName = "ROLE_ADMIN"
	RoleStaff RoleName = "ROLE_STAFF"
	RoleGuest RoleName = "ROLE_GUEST"
)

// Bare strips the ROLE_ prefix, yielding the form carried in token claims.
func (r RoleName) Bare() string {
	return strings.TrimPrefix(string(r), "ROLE_")
}

// User represents an account that can authenticate against the system.
// Users are never physically deleted; deactivation flips IsActive.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"` // unique, immutable after creation
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	Role         RoleName  `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active User instance. The password hash is set by
// the service layer, never here.
func NewUser(username, fullName, email string, role RoleName) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New(),
		Username:  username,
		FullName:  fullName,
		Email:     email,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
