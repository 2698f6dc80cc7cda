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

const roleColumns = "id, name, description, is_active, is_deleted, created_at, updated_at"

// RoleRepository implements the repositories.RoleRepository interface
type RoleRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *DB, logger *zap.Logger) repositories.RoleRepository {
	return &RoleRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new role
func (r *RoleRepository) Create(ctx context.Context, role *models.Role) error {
	query := `
		INSERT INTO roles (id, name, description, is_active, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		role.ID,
		role.Name,
		role.Description,
		role.IsActive,
		role.IsDeleted,
		role.CreatedAt,
		role.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}

	r.logger.Debug("role created", zap.String("id", role.ID.String()), zap.String("name", role.Name))
	return nil
}

// GetByID retrieves a non-deleted role with its permissions
func (r *RoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE id = $1 AND is_deleted = false`

	executor := GetExecutor(ctx, r.db)
	role := &models.Role{}

	if err := scanRole(executor.QueryRowContext(ctx, query, id), role); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("role not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	if err := r.loadPermissions(ctx, role); err != nil {
		return nil, err
	}

	return role, nil
}

// GetByName retrieves a non-deleted role with its permissions
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE name = $1 AND is_deleted = false`

	executor := GetExecutor(ctx, r.db)
	role := &models.Role{}

	if err := scanRole(executor.QueryRowContext(ctx, query, name), role); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("role not found: %s", name)
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	if err := r.loadPermissions(ctx, role); err != nil {
		return nil, err
	}

	return role, nil
}

// List retrieves all non-deleted roles with their permissions
func (r *RoleRepository) List(ctx context.Context) ([]*models.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE is_deleted = false ORDER BY name`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		role := &models.Role{}
		if err := scanRole(rows, role); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role rows: %w", err)
	}

	for _, role := range roles {
		if err := r.loadPermissions(ctx, role); err != nil {
			return nil, err
		}
	}

	return roles, nil
}

// Update updates a role
func (r *RoleRepository) Update(ctx context.Context, role *models.Role) error {
	query := `
		UPDATE roles
		SET name = $2,
		    description = $3,
		    is_active = $4,
		    updated_at = $5
		WHERE id = $1 AND is_deleted = false
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		role.ID,
		role.Name,
		role.Description,
		role.IsActive,
		role.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("role not found: %s", role.ID)
	}

	r.logger.Debug("role updated", zap.String("id", role.ID.String()))
	return nil
}

// SetPermissions replaces the role's permission set. Meant to run inside a
// transaction via InTransaction so the delete and inserts stay atomic.
func (r *RoleRepository) SetPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	executor := GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("failed to clear role permissions: %w", err)
	}

	for _, permID := range permissionIDs {
		_, err := executor.ExecContext(ctx,
			`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`,
			roleID, permID)
		if err != nil {
			return fmt.Errorf("failed to assign permission %s: %w", permID, err)
		}
	}

	r.logger.Debug("role permissions replaced",
		zap.String("role_id", roleID.String()),
		zap.Int("count", len(permissionIDs)))
	return nil
}

// SoftDelete marks a role deleted
func (r *RoleRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE roles SET is_deleted = true, updated_at = CURRENT_TIMESTAMP WHERE id = $1 AND is_deleted = false`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("role not found: %s", id)
	}

	r.logger.Debug("role soft-deleted", zap.String("id", id.String()))
	return nil
}

// WithTx returns a new repository instance bound to the transaction
func (r *RoleRepository) WithTx(tx repositories.Transaction) repositories.RoleRepository {
	return &RoleRepository{
		db:     r.db,
		logger: r.logger,
	}
}

// loadPermissions populates the role's permission slice.
func (r *RoleRepository) loadPermissions(ctx context.Context, role *models.Role) error {
	query := `
		SELECT p.id, p.name, p.description, p.module, p.action, p.is_active, p.is_deleted, p.created_at, p.updated_at
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1 AND p.is_deleted = false
		ORDER BY p.name
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, role.ID)
	if err != nil {
		return fmt.Errorf("failed to query role permissions: %w", err)
	}
	defer rows.Close()

	var perms []*models.Permission
	for rows.Next() {
		perm := &models.Permission{}
		if err := scanPermission(rows, perm); err != nil {
			return fmt.Errorf("failed to scan permission: %w", err)
		}
		perms = append(perms, perm)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating permission rows: %w", err)
	}

	role.Permissions = perms
	return nil
}

func scanRole(row rowScanner, role *models.Role) error {
	return row.Scan(
		&role.ID,
		&role.Name,
		&role.Description,
		&role.IsActive,
		&role.IsDeleted,
		&role.CreatedAt,
		&role.UpdatedAt,
	)
}
