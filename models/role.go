package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the stored form of a named permission bundle. The runtime
// authority lookup uses the static registry; these rows are the
// administrative source the registry can be rebuilt from.
type Role struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"` // unique, uppercase, underscore-delimited
	Description string    `json:"description" db:"description"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	IsDeleted   bool      `json:"-" db:"is_deleted"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Permissions []*Permission `json:"permissions,omitempty" db:"-"`
}

// TableName returns the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// NewRole creates a new active Role instance
func NewRole(name, description string) *Role {
	now := time.Now()
	return &Role{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Permission is an atomic named capability, e.g. "PRODUCT_VIEW".
type Permission struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Module      string    `json:"module" db:"module"`
	Action      string    `json:"action" db:"action"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	IsDeleted   bool      `json:"-" db:"is_deleted"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Permission model
func (Permission) TableName() string {
	return "permissions"
}

// NewPermission creates a new active Permission instance
func NewPermission(name, description, module, action string) *Permission {
	now := time.Now()
	return &Permission{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Module:      module,
		Action:      action,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
