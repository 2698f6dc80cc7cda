package models

import (
	"time"

	"github.com/google/uuid"
)

// ShopStatus represents the lifecycle state of a shop
type ShopStatus string

const (
	ShopStatusActive    ShopStatus = "ACTIVE"
	ShopStatusSuspended ShopStatus = "SUSPENDED"
	ShopStatusClosed    ShopStatus = "CLOSED"
)

// Shop represents a tenant: a registered shop with its own users and
// clients. Deletion is soft (IsDeleted); deleted shops are filtered out of
// every query.
type Shop struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	CommercialName string     `json:"commercial_name" db:"commercial_name"`
	TaxID          string     `json:"tax_id" db:"tax_id"`
	Address        string     `json:"address" db:"address"`
	Phone          string     `json:"phone" db:"phone"`
	Email          string     `json:"email" db:"email"`
	OpeningTime    string     `json:"opening_time" db:"opening_time"` // HH:MM
	ClosingTime    string     `json:"closing_time" db:"closing_time"` // HH:MM
	Status         ShopStatus `json:"status" db:"status"`
	IsDeleted      bool       `json:"-" db:"is_deleted"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Shop model
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates a new active Shop instance
func NewShop(name, commercialName, taxID string) *Shop {
	now := time.Now()
	return &Shop{
		ID:             uuid.New(),
		Name:           name,
		CommercialName: commercialName,
		TaxID:          taxID,
		Status:         ShopStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// UserShop links a user to a shop with the role the user holds there.
type UserShop struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ShopID    uuid.UUID `json:"shop_id" db:"shop_id"`
	Role      RoleName  `json:"role" db:"role"`
	IsDefault bool      `json:"is_default" db:"is_default"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	IsDeleted bool      `json:"-" db:"is_deleted"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the UserShop model
func (UserShop) TableName() string {
	return "user_shops"
}

// NewUserShop creates a new active assignment of a user to a shop
func NewUserShop(userID, shopID uuid.UUID, role RoleName, isDefault bool) *UserShop {
	now := time.Now()
	return &UserShop{
		ID:        uuid.New(),
		UserID:    userID,
		ShopID:    shopID,
		Role:      role,
		IsDefault: isDefault,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
