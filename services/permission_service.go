package services

import (
	"context"
	"time"

	"github.com/barberops/backend/models"
	"github.com/barberops/backend/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreatePermissionRequest carries the data for a new permission.
type CreatePermissionRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=60,uppercase"`
	Description string `json:"description" validate:"max=200"`
	Module      string `json:"module" validate:"required,max=60"`
	Action      string `json:"action" validate:"required,max=60"`
}

// UpdatePermissionRequest carries the mutable fields of a permission.
type UpdatePermissionRequest struct {
	Description string `json:"description" validate:"max=200"`
	Module      string `json:"module" validate:"required,max=60"`
	Action      string `json:"action" validate:"required,max=60"`
	IsActive    bool   `json:"is_active"`
}

// PermissionService manages the permission catalog
type PermissionService struct {
	permRepo repositories.PermissionRepository
	logger   *zap.Logger
}

// NewPermissionService creates a new PermissionService instance
func NewPermissionService(repos *repositories.Repositories, logger *zap.Logger) *PermissionService {
	return &PermissionService{
		permRepo: repos.Permissions,
		logger:   logger,
	}
}

// Create registers a new permission
func (s *PermissionService) Create(ctx context.Context, req CreatePermissionRequest) (*models.Permission, error) {
	perm := models.NewPermission(req.Name, req.Description, req.Module, req.Action)

	if err := s.permRepo.Create(ctx, perm); err != nil {
		return nil, WrapInternal("failed to create permission", err)
	}

	s.logger.Info("permission created",
		zap.String("permission_id", perm.ID.String()),
		zap.String("name", perm.Name))
	return perm, nil
}

// Get retrieves a permission by ID
func (s *PermissionService) Get(ctx context.Context, id uuid.UUID) (*models.Permission, error) {
	perm, err := s.permRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrPermissionNotFound
	}
	return perm, nil
}

// List retrieves all permissions
func (s *PermissionService) List(ctx context.Context) ([]*models.Permission, error) {
	perms, err := s.permRepo.List(ctx)
	if err != nil {
		return nil, WrapInternal("failed to list permissions", err)
	}
	return perms, nil
}

// Update applies the mutable fields to an existing permission
func (s *PermissionService) Update(ctx context.Context, id uuid.UUID, req UpdatePermissionRequest) (*models.Permission, error) {
	perm, err := s.permRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrPermissionNotFound
	}

	perm.Description = req.Description
	perm.Module = req.Module
	perm.Action = req.Action
	perm.IsActive = req.IsActive
	perm.UpdatedAt = time.Now()

	if err := s.permRepo.Update(ctx, perm); err != nil {
		return nil, WrapInternal("failed to update permission", err)
	}
	return perm, nil
}

// Delete soft-deletes a permission
func (s *PermissionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.permRepo.SoftDelete(ctx, id); err != nil {
		return ErrPermissionNotFound
	}
	return nil
}
