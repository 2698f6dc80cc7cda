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

const permissionColumns = "id, name, description, module, action, is_active, is_deleted, created_at, updated_at"

// PermissionRepository implements the repositories.PermissionRepository interface
type PermissionRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(db *DB, logger *zap.Logger) repositories.PermissionRepository {
	return &PermissionRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new permission
func (r *PermissionRepository) Create(ctx context.Context, permission *models.Permission) error {
	query := `
		INSERT INTO permissions (id, name, description, module, action, is_active, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		permission.ID,
		permission.Name,
		permission.Description,
		permission.Module,
		permission.Action,
		permission.IsActive,
		permission.IsDeleted,
		permission.CreatedAt,
		permission.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create permission: %w", err)
	}

	r.logger.Debug("permission created",
		zap.String("id", permission.ID.String()),
		zap.String("name", permission.Name))
	return nil
}

// GetByID retrieves a non-deleted permission by ID
func (r *PermissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE id = $1 AND is_deleted = false`

	executor := GetExecutor(ctx, r.db)
	perm := &models.Permission{}

	if err := scanPermission(executor.QueryRowContext(ctx, query, id), perm); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("permission not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}

	return perm, nil
}

// List retrieves all non-deleted permissions
func (r *PermissionRepository) List(ctx context.Context) ([]*models.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE is_deleted = false ORDER BY name`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query permissions: %w", err)
	}
	defer rows.Close()

	var perms []*models.Permission
	for rows.Next() {
		perm := &models.Permission{}
		if err := scanPermission(rows, perm); err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		perms = append(perms, perm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating permission rows: %w", err)
	}

	return perms, nil
}

// Update updates a permission
func (r *PermissionRepository) Update(ctx context.Context, permission *models.Permission) error {
	query := `
		UPDATE permissions
		SET name = $2,
		    description = $3,
		    module = $4,
		    action = $5,
		    is_active = $6,
		    updated_at = $7
		WHERE id = $1 AND is_deleted = false
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		permission.ID,
		permission.Name,
		permission.Description,
		permission.Module,
		permission.Action,
		permission.IsActive,
		permission.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update permission: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("permission not found: %s", permission.ID)
	}

	r.logger.Debug("permission updated", zap.String("id", permission.ID.String()))
	return nil
}

// SoftDelete marks a permission deleted
func (r *PermissionRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE permissions SET is_deleted = true, updated_at = CURRENT_TIMESTAMP WHERE id = $1 AND is_deleted = false`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete permission: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("permission not found: %s", id)
	}

	r.logger.Debug("permission soft-deleted", zap.String("id", id.String()))
	return nil
}

// WithTx returns a new repository instance bound to the transaction
func (r *PermissionRepository) WithTx(tx repositories.Transaction) repositories.PermissionRepository {
	return &PermissionRepository{
		db:     r.db,
		logger: r.logger,
	}
}

func scanPermission(row rowScanner, perm *models.Permission) error {
	return row.Scan(
		&perm.ID,
		&perm.Name,
		&perm.Description,
		&perm.Module,
		&perm.Action,
		&perm.IsActive,
		&perm.IsDeleted,
		&perm.CreatedAt,
		&perm.UpdatedAt,
	)
}
