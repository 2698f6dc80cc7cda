package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/barberops/backend/models"
	"github.com/barberops/backend/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const clientColumns = "id, full_name, phone, email, is_vip, is_active, is_deleted, notes, shop_id, created_at, updated_at"

// clientSortColumns whitelists the columns a listing may sort by. Sort input
// reaches SQL as an identifier, so it is never interpolated unchecked.
var clientSortColumns = map[string]bool{
	"full_name":  true,
	"email":      true,
	"phone":      true,
	"created_at": true,
	"updated_at": true,
}

// ClientRepository implements the repositories.ClientRepository interface
type ClientRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *DB, logger *zap.Logger) repositories.ClientRepository {
	return &ClientRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new client
func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (id, full_name, phone, email, is_vip, is_active, is_deleted, notes, shop_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		client.ID,
		client.FullName,
		client.Phone,
		client.Email,
		client.IsVIP,
		client.IsActive,
		client.IsDeleted,
		client.Notes,
		client.ShopID,
		client.CreatedAt,
		client.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	r.logger.Debug("client created",
		zap.String("id", client.ID.String()),
		zap.String("shop_id", client.ShopID.String()))
	return nil
}

// GetByID retrieves a non-deleted client by ID scoped to a shop
func (r *ClientRepository) GetByID(ctx context.Context, id, shopID uuid.UUID) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND shop_id = $2 AND is_deleted = false`

	executor := GetExecutor(ctx, r.db)
	client := &models.Client{}

	if err := scanClient(executor.QueryRowContext(ctx, query, id, shopID), client); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("client not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return client, nil
}

// ExistsByEmail reports whether a non-deleted client with the email already
// exists in the shop, excluding the given client ID when non-nil.
func (r *ClientRepository) ExistsByEmail(ctx context.Context, email string, shopID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	executor := GetExecutor(ctx, r.db)

	var exists bool
	var err error
	if excludeID != nil {
		query := `SELECT EXISTS(SELECT 1 FROM clients WHERE email = $1 AND shop_id = $2 AND id <> $3 AND is_deleted = false)`
		err = executor.QueryRowContext(ctx, query, email, shopID, *excludeID).Scan(&exists)
	} else {
		query := `SELECT EXISTS(SELECT 1 FROM clients WHERE email = $1 AND shop_id = $2 AND is_deleted = false)`
		err = executor.QueryRowContext(ctx, query, email, shopID).Scan(&exists)
	}

	if err != nil {
		return false, fmt.Errorf("failed to check client email: %w", err)
	}
	return exists, nil
}

// List retrieves a filtered, sorted page of clients plus the total count of
// matching rows.
func (r *ClientRepository) List(ctx context.Context, filter models.ClientFilter) ([]*models.Client, int64, error) {
	where, args := buildClientWhere(filter)
	page := filter.Page.Normalize("created_at")

	sortBy := page.SortBy
	if !clientSortColumns[sortBy] {
		sortBy = "created_at"
	}
	sortDir := "ASC"
	if page.SortDir == models.SortDesc {
		sortDir = "DESC"
	}

	executor := GetExecutor(ctx, r.db)

	countQuery := `SELECT COUNT(*) FROM clients ` + where
	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	listQuery := fmt.Sprintf(`SELECT %s FROM clients %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		clientColumns, where, sortBy, sortDir, len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	rows, err := executor.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client := &models.Client{}
		if err := scanClient(rows, client); err != nil {
			return nil, 0, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating client rows: %w", err)
	}

	return clients, total, nil
}

// Update updates a client
func (r *ClientRepository) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients
		SET full_name = $3,
		    phone = $4,
		    email = $5,
		    is_vip = $6,
		    notes = $7,
		    updated_at = $8
		WHERE id = $1 AND shop_id = $2 AND is_deleted = false
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		client.ID,
		client.ShopID,
		client.FullName,
		client.Phone,
		client.Email,
		client.IsVIP,
		client.Notes,
		client.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("client not found: %s", client.ID)
	}

	r.logger.Debug("client updated", zap.String("id", client.ID.String()))
	return nil
}

// SoftDelete marks a client deleted and inactive
func (r *ClientRepository) SoftDelete(ctx context.Context, id, shopID uuid.UUID) error {
	query := `
		UPDATE clients
		SET is_deleted = true, is_active = false, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND shop_id = $2 AND is_deleted = false
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id, shopID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("client not found: %s", id)
	}

	r.logger.Debug("client soft-deleted", zap.String("id", id.String()))
	return nil
}

// WithTx returns a new repository instance bound to the transaction
func (r *ClientRepository) WithTx(tx repositories.Transaction) repositories.ClientRepository {
	return &ClientRepository{
		db:     r.db,
		logger: r.logger,
	}
}

// buildClientWhere assembles the WHERE clause and its positional arguments
// for a client filter. Every field is optional; an unset Deleted leaves
// soft-deleted rows unconstrained.
func buildClientWhere(filter models.ClientFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.ShopID != nil {
		args = append(args, *filter.ShopID)
		conditions = append(conditions, fmt.Sprintf("shop_id = $%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if filter.IsVIP != nil {
		args = append(args, *filter.IsVIP)
		conditions = append(conditions, fmt.Sprintf("is_vip = $%d", len(args)))
	}
	if filter.Deleted != nil {
		args = append(args, *filter.Deleted)
		conditions = append(conditions, fmt.Sprintf("is_deleted = $%d", len(args)))
	}
	if filter.CreatedAfter != nil {
		args = append(args, *filter.CreatedAfter)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func scanClient(row rowScanner, client *models.Client) error {
	return row.Scan(
		&client.ID,
		&client.FullName,
		&client.Phone,
		&client.Email,
		&client.IsVIP,
		&client.IsActive,
		&client.IsDeleted,
		&client.Notes,
		&client.ShopID,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
}
