package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/barberops/backend/models"
	"github.com/barberops/backend/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const shopColumns = "id, name, commercial_name, tax_id, address, phone, email, opening_time, closing_time, status, is_deleted, created_at, updated_at"

// ShopRepository implements the repositories.ShopRepository interface
type ShopRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewShopRepository creates a new shop repository
func NewShopRepository(db *DB, logger *zap.Logger) repositories.ShopRepository {
	return &ShopRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new shop
func (r *ShopRepository) Create(ctx context.Context, shop *models.Shop) error {
	query := `
		INSERT INTO shops (id, name, commercial_name, tax_id, address, phone, email, opening_time, closing_time, status, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		shop.ID,
		shop.Name,
		shop.CommercialName,
		shop.TaxID,
		shop.Address,
		shop.Phone,
		shop.Email,
		shop.OpeningTime,
		shop.ClosingTime,
		shop.Status,
		shop.IsDeleted,
		shop.CreatedAt,
		shop.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create shop: %w", err)
	}

	r.logger.Debug("shop created", zap.String("id", shop.ID.String()), zap.String("name", shop.Name))
	return nil
}

// GetByID retrieves a non-deleted shop by ID
func (r *ShopRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE id = $1 AND is_deleted = false`

	executor := GetExecutor(ctx, r.db)
	shop := &models.Shop{}

	if err := scanShop(executor.QueryRowContext(ctx, query, id), shop); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("shop not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}

	return shop, nil
}

// List retrieves all non-deleted shops
func (r *ShopRepository) List(ctx context.Context) ([]*models.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE is_deleted = false ORDER BY created_at DESC`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query shops: %w", err)
	}
	defer rows.Close()

	var shops []*models.Shop
	for rows.Next() {
		shop := &models.Shop{}
		if err := scanShop(rows, shop); err != nil {
			return nil, fmt.Errorf("failed to scan shop: %w", err)
		}
		shops = append(shops, shop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shop rows: %w", err)
	}

	return shops, nil
}

// Update updates a shop
func (r *ShopRepository) Update(ctx context.Context, shop *models.Shop) error {
	query := `
		UPDATE shops
		SET name = $2,
		    commercial_name = $3,
		    tax_id = $4,
		    address = $5,
		    phone = $6,
		    email = $7,
		    opening_time = $8,
		    closing_time = $9,
		    status = $10,
		    updated_at = $11
		WHERE id = $1 AND is_deleted = false
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		shop.ID,
		shop.Name,
		shop.CommercialName,
		shop.TaxID,
		shop.Address,
		shop.Phone,
		shop.Email,
		shop.OpeningTime,
		shop.ClosingTime,
		shop.Status,
		shop.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update shop: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("shop not found: %s", shop.ID)
	}

	r.logger.Debug("shop updated", zap.String("id", shop.ID.String()))
	return nil
}

// SoftDelete marks a shop deleted
func (r *ShopRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE shops SET is_deleted = true, updated_at = CURRENT_TIMESTAMP WHERE id = $1 AND is_deleted = false`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete shop: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("shop not found: %s", id)
	}

	r.logger.Debug("shop soft-deleted", zap.String("id", id.String()))
	return nil
}

// WithTx returns a new repository instance bound to the transaction
func (r *ShopRepository) WithTx(tx repositories.Transaction) repositories.ShopRepository {
	return &ShopRepository{
		db:     r.db,
		logger: r.logger,
	}
}

func scanShop(row rowScanner, shop *models.Shop) error {
	return row.Scan(
		&shop.ID,
		&shop.Name,
		&shop.CommercialName,
		&shop.TaxID,
		&shop.Address,
		&shop.Phone,
		&shop.Email,
		&shop.OpeningTime,
		&shop.ClosingTime,
		&shop.Status,
		&shop.IsDeleted,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	)
}
