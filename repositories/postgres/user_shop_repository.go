package postgres

import (
	"context"
	"fmt"

	"github.com/barberops/backend/models"
	"github.com/barberops/backend/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const userShopColumns = "id, user_id, shop_id, role, is_default, is_active, is_deleted, created_at, updated_at"

// UserShopRepository implements the repositories.UserShopRepository interface
type UserShopRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewUserShopRepository creates a new user-shop assignment repository
func NewUserShopRepository(db *DB, logger *zap.Logger) repositories.UserShopRepository {
	return &UserShopRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new assignment
func (r *UserShopRepository) Create(ctx context.Context, assignment *models.UserShop) error {
	query := `
		INSERT INTO user_shops (id, user_id, shop_id, role, is_default, is_active, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		assignment.ID,
		assignment.UserID,
		assignment.ShopID,
		assignment.Role,
		assignment.IsDefault,
		assignment.IsActive,
		assignment.IsDeleted,
		assignment.CreatedAt,
		assignment.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create user-shop assignment: %w", err)
	}

	r.logger.Debug("user-shop assignment created",
		zap.String("user_id", assignment.UserID.String()),
		zap.String("shop_id", assignment.ShopID.String()))
	return nil
}

// GetByUserID retrieves all active assignments of a user
func (r *UserShopRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.UserShop, error) {
	query := `SELECT ` + userShopColumns + ` FROM user_shops WHERE user_id = $1 AND is_deleted = false AND is_active = true`
	return r.query(ctx, query, userID)
}

// GetByShopID retrieves all active assignments of a shop
func (r *UserShopRepository) GetByShopID(ctx context.Context, shopID uuid.UUID) ([]*models.UserShop, error) {
	query := `SELECT ` + userShopColumns + ` FROM user_shops WHERE shop_id = $1 AND is_deleted = false AND is_active = true`
	return r.query(ctx, query, shopID)
}

// SoftDelete marks an assignment deleted
func (r *UserShopRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE user_shops
		SET is_deleted = true, is_active = false, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND is_deleted = false
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user-shop assignment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user-shop assignment not found: %s", id)
	}

	r.logger.Debug("user-shop assignment soft-deleted", zap.String("id", id.String()))
	return nil
}

// WithTx returns a new repository instance bound to the transaction
func (r *UserShopRepository) WithTx(tx repositories.Transaction) repositories.UserShopRepository {
	return &UserShopRepository{
		db:     r.db,
		logger: r.logger,
	}
}

func (r *UserShopRepository) query(ctx context.Context, query string, arg interface{}) ([]*models.UserShop, error) {
	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query user-shop assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.UserShop
	for rows.Next() {
		a := &models.UserShop{}
		err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.ShopID,
			&a.Role,
			&a.IsDefault,
			&a.IsActive,
			&a.IsDeleted,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user-shop assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user-shop rows: %w", err)
	}

	return assignments, nil
}
