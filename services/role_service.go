package services

import (
	"context"
	"time"

	"github.com/barberops/backend/models"
	"github.com/barberops/backend/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateRoleRequest carries the data for a new stored role.
type CreateRoleRequest struct {
	Name          string      `json:"name" validate:"required,min=3,max=60,uppercase"`
	Description   string      `json:"description" validate:"max=200"`
	PermissionIDs []uuid.UUID `json:"permission_ids"`
}

// UpdateRoleRequest carries the mutable fields of a stored role.
type UpdateRoleRequest struct {
	Description   string      `json:"description" validate:"max=200"`
	IsActive      bool        `json:"is_active"`
	PermissionIDs []uuid.UUID `json:"permission_ids"`
}

// RoleService manages the stored role catalog. The runtime authority
// registry is static; these rows are the administrative source it can be
// rebuilt from on the next deploy.
type RoleService struct {
	roleRepo repositories.RoleRepository
	permRepo repositories.PermissionRepository
	txMgr    repositories.TransactionManager
	logger   *zap.Logger
}

// NewRoleService creates a new RoleService instance
func NewRoleService(repos *repositories.Repositories, txMgr repositories.TransactionManager, logger *zap.Logger) *RoleService {
	return &RoleService{
		roleRepo: repos.Roles,
		permRepo: repos.Permissions,
		txMgr:    txMgr,
		logger:   logger,
	}
}

// Create registers a new role with its permission set
func (s *RoleService) Create(ctx context.Context, req CreateRoleRequest) (*models.Role, error) {
	if existing, err := s.roleRepo.GetByName(ctx, req.Name); err == nil && existing != nil {
		return nil, ErrDuplicateRole
	}

	if err := s.checkPermissionsExist(ctx, req.PermissionIDs); err != nil {
		return nil, err
	}

	role := models.NewRole(req.Name, req.Description)

	err := s.txMgr.InTransaction(ctx, func(txCtx context.Context, tx repositories.Transaction) error {
		if err := s.roleRepo.Create(txCtx, role); err != nil {
			return WrapInternal("failed to create role", err)
		}
		if len(req.PermissionIDs) > 0 {
			if err := s.roleRepo.SetPermissions(txCtx, role.ID, req.PermissionIDs); err != nil {
				return WrapInternal("failed to set role permissions", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("role created",
		zap.String("role_id", role.ID.String()),
		zap.String("name", role.Name))

	return s.Get(ctx, role.ID)
}

// Get retrieves a role with its permissions
func (s *RoleService) Get(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrRoleNotFound
	}
	return role, nil
}

// List retrieves all roles with their permissions
func (s *RoleService) List(ctx context.Context) ([]*models.Role, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, WrapInternal("failed to list roles", err)
	}
	return roles, nil
}

// Update applies the mutable fields and replaces the permission set
func (s *RoleService) Update(ctx context.Context, id uuid.UUID, req UpdateRoleRequest) (*models.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrRoleNotFound
	}

	if err := s.checkPermissionsExist(ctx, req.PermissionIDs); err != nil {
		return nil, err
	}

	role.Description = req.Description
	role.IsActive = req.IsActive
	role.UpdatedAt = time.Now()

	err = s.txMgr.InTransaction(ctx, func(txCtx context.Context, tx repositories.Transaction) error {
		if err := s.roleRepo.Update(txCtx, role); err != nil {
			return WrapInternal("failed to update role", err)
		}
		if err := s.roleRepo.SetPermissions(txCtx, role.ID, req.PermissionIDs); err != nil {
			return WrapInternal("failed to set role permissions", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete soft-deletes a role
func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.roleRepo.SoftDelete(ctx, id); err != nil {
		return ErrRoleNotFound
	}
	return nil
}

func (s *RoleService) checkPermissionsExist(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		if _, err := s.permRepo.GetByID(ctx, id); err != nil {
			return NewDomainError(ErrorTypeValidation, "unknown permission", err).
				WithDetail("permission_id", id.String())
		}
	}
	return nil
}
