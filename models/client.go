package models

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a customer of a shop. Clients belong to exactly one
// shop; email uniqueness is enforced per shop. Deletion is soft.
type Client struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Phone     string    `json:"phone" db:"phone"`
	Email     string    `json:"email" db:"email"`
	IsVIP     bool      `json:"is_vip" db:"is_vip"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	IsDeleted bool      `json:"-" db:"is_deleted"`
	Notes     string    `json:"notes" db:"notes"`
	ShopID    uuid.UUID `json:"shop_id" db:"shop_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new active non-VIP client for the given shop
func NewClient(fullName, phone, email string, shopID uuid.UUID) *Client {
	now := time.Now()
	return &Client{
		ID:        uuid.New(),
		FullName:  fullName,
		Phone:     phone,
		Email:     email,
		IsActive:  true,
		ShopID:    shopID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ClientFilter narrows client listings. Nil pointer fields are ignored,
// including Deleted: listings constrain the soft-delete flag only when it
// is set explicitly.
type ClientFilter struct {
	ShopID        *uuid.UUID
	IsActive      *bool
	IsVIP         *bool
	Deleted       *bool
	CreatedAfter  *time.Time // inclusive lower bound on created_at
	CreatedBefore *time.Time // inclusive upper bound on created_at
	Search        string     // matches full_name or email
	Page          PageRequest
}
