package repositories

import (
	"context"

	"github.com/barberops/backend/models"
	"github.com/google/uuid"
)

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction.
	// Automatically commits if the function succeeds, rolls back on error.
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// UserRepository handles user data operations. Users are soft-deactivated,
// never physically deleted.
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByUsername retrieves a user by username regardless of active flag
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// FindActiveByUsername retrieves an active user by username. Used by
	// the login flow as the credential store lookup.
	FindActiveByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByShopID retrieves all users assigned to a shop
	GetByShopID(ctx context.Context, shopID uuid.UUID) ([]*models.User, error)

	// Update updates a user's mutable fields (full name, email, role)
	Update(ctx context.Context, user *models.User) error

	// Deactivate flips the active flag off. The row is kept.
	Deactivate(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance bound to the transaction
	WithTx(tx Transaction) UserRepository
}

// ShopRepository handles shop data operations
type ShopRepository interface {
	// Create creates a new shop
	Create(ctx context.Context, shop *models.Shop) error

	// GetByID retrieves a non-deleted shop by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)

	// List retrieves all non-deleted shops
	List(ctx context.Context) ([]*models.Shop, error)

	// Update updates a shop
	Update(ctx context.Context, shop *models.Shop) error

	// SoftDelete marks a shop deleted
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance bound to the transaction
	WithTx(tx Transaction) ShopRepository
}

// UserShopRepository handles user-to-shop assignments
type UserShopRepository interface {
	// Create creates a new assignment
	Create(ctx context.Context, assignment *models.UserShop) error

	// GetByUserID retrieves all active assignments of a user
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.UserShop, error)

	// GetByShopID retrieves all active assignments of a shop
	GetByShopID(ctx context.Context, shopID uuid.UUID) ([]*models.UserShop, error)

	// SoftDelete marks an assignment deleted
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance bound to the transaction
	WithTx(tx Transaction) UserShopRepository
}

// ClientRepository handles client data operations
type ClientRepository interface {
	// Create creates a new client
	Create(ctx context.Context, client *models.Client) error

	// GetByID retrieves a non-deleted client by ID scoped to a shop
	GetByID(ctx context.Context, id, shopID uuid.UUID) (*models.Client, error)

	// ExistsByEmail reports whether a non-deleted client with the email
	// already exists in the shop, excluding the given client ID when
	// non-nil (used for update duplicate checks).
	ExistsByEmail(ctx context.Context, email string, shopID uuid.UUID, excludeID *uuid.UUID) (bool, error)

	// List retrieves a filtered, sorted page of clients plus the total
	// number of matching rows.
	List(ctx context.Context, filter models.ClientFilter) ([]*models.Client, int64, error)

	// Update updates a client
	Update(ctx context.Context, client *models.Client) error

	// SoftDelete marks a client deleted and inactive
	SoftDelete(ctx context.Context, id, shopID uuid.UUID) error

	// WithTx returns a new repository instance bound to the transaction
	WithTx(tx Transaction) ClientRepository
}

// RoleRepository handles stored role data operations
type RoleRepository interface {
	// Create creates a new role
	Create(ctx context.Context, role *models.Role) error

	// GetByID retrieves a non-deleted role with its permissions
	GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error)

	// GetByName retrieves a non-deleted role with its permissions
	GetByName(ctx context.Context, name string) (*models.Role, error)

	// List retrieves all non-deleted roles with their permissions
	List(ctx context.Context) ([]*models.Role, error)

	// Update updates a role
	Update(ctx context.Context, role *models.Role) error

	// SetPermissions replaces the role's permission set
	SetPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error

	// SoftDelete marks a role deleted
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance bound to the transaction
	WithTx(tx Transaction) RoleRepository
}

// PermissionRepository handles stored permission data operations
type PermissionRepository interface {
	// Create creates a new permission
	Create(ctx context.Context, permission *models.Permission) error

	// GetByID retrieves a non-deleted permission by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Permission, error)

	// List retrieves all non-deleted permissions
	List(ctx context.Context) ([]*models.Permission, error)

	// Update updates a permission
	Update(ctx context.Context, permission *models.Permission) error

	// SoftDelete marks a permission deleted
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance bound to the transaction
	WithTx(tx Transaction) PermissionRepository
}

// Repositories groups all repository instances
type Repositories struct {
	Users       UserRepository
	Shops       ShopRepository
	UserShops   UserShopRepository
	Clients     ClientRepository
	Roles       RoleRepository
	Permissions PermissionRepository
}
