package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/barberops/backend/models"
	"github.com/barberops/backend/repositories"
)

type roleServiceMocks struct {
	roles *MockRoleRepository
	perms *MockPermissionRepository
	txMgr *passthroughTxManager
}

func newTestRoleService(t *testing.T) (*RoleService, *roleServiceMocks) {
	t.Helper()

	m := &roleServiceMocks{
		roles: &MockRoleRepository{},
		perms: &MockPermissionRepository{},
		txMgr: &passthroughTxManager{},
	}
	repos := &repositories.Repositories{
		Roles:       m.roles,
		Permissions: m.perms,
	}
	return NewRoleService(repos, m.txMgr, zaptest.NewLogger(t)), m
}

func TestRoleService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates role with permissions transactionally", func(t *testing.T) {
		svc, m := newTestRoleService(t)
		permID := uuid.New()
		perm := models.NewPermission("PRODUCT_ADD", "", "products", "add")
		perm.ID = permID

		m.roles.On("GetByName", ctx, "ROLE_MANAGER").Return(nil, errors.New("role not found"))
		m.perms.On("GetByID", ctx, permID).Return(perm, nil)
		m.roles.On("Create", mock.Anything, mock.AnythingOfType("*models.Role")).Return(nil)
		m.roles.On("SetPermissions", mock.Anything, mock.AnythingOfType("uuid.UUID"), []uuid.UUID{permID}).Return(nil)
		m.roles.On("GetByID", ctx, mock.AnythingOfType("uuid.UUID")).
			Return(models.NewRole("ROLE_MANAGER", "shop manager"), nil)

		role, err := svc.Create(ctx, CreateRoleRequest{
			Name:          "ROLE_MANAGER",
			Description:   "shop manager",
			PermissionIDs: []uuid.UUID{permID},
		})
		require.NoError(t, err)
		assert.Equal(t, "ROLE_MANAGER", role.Name)
		assert.Equal(t, 1, m.txMgr.calls)
		m.roles.AssertExpectations(t)
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		svc, m := newTestRoleService(t)
		existing := models.NewRole("ROLE_MANAGER", "")
		m.roles.On("GetByName", ctx, "ROLE_MANAGER").Return(existing, nil)

		role, err := svc.Create(ctx, CreateRoleRequest{Name: "ROLE_MANAGER"})
		assert.ErrorIs(t, err, ErrDuplicateRole)
		assert.Nil(t, role)
	})

	t.Run("unknown permission id is a validation error", func(t *testing.T) {
		svc, m := newTestRoleService(t)
		permID := uuid.New()

		m.roles.On("GetByName", ctx, "ROLE_MANAGER").Return(nil, errors.New("role not found"))
		m.perms.On("GetByID", ctx, permID).Return(nil, errors.New("permission not found"))

		role, err := svc.Create(ctx, CreateRoleRequest{
			Name:          "ROLE_MANAGER",
			PermissionIDs: []uuid.UUID{permID},
		})
		assert.Error(t, err)
		assert.Nil(t, role)
		assert.True(t, IsValidationError(err))

		details := GetErrorDetails(err)
		assert.Equal(t, permID.String(), details["permission_id"])
		m.roles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRoleService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the permission set", func(t *testing.T) {
		svc, m := newTestRoleService(t)
		role := models.NewRole("ROLE_MANAGER", "old description")
		permID := uuid.New()
		perm := models.NewPermission("PRODUCT_VIEW", "", "products", "view")
		perm.ID = permID

		m.roles.On("GetByID", ctx, role.ID).Return(role, nil)
		m.perms.On("GetByID", ctx, permID).Return(perm, nil)
		m.roles.On("Update", mock.Anything, role).Return(nil)
		m.roles.On("SetPermissions", mock.Anything, role.ID, []uuid.UUID{permID}).Return(nil)

		updated, err := svc.Update(ctx, role.ID, UpdateRoleRequest{
			Description:   "new description",
			IsActive:      true,
			PermissionIDs: []uuid.UUID{permID},
		})
		require.NoError(t, err)
		assert.Equal(t, "new description", updated.Description)
		m.roles.AssertExpectations(t)
	})

	t.Run("missing role", func(t *testing.T) {
		svc, m := newTestRoleService(t)
		id := uuid.New()
		m.roles.On("GetByID", ctx, id).Return(nil, errors.New("role not found"))

		_, err := svc.Update(ctx, id, UpdateRoleRequest{})
		assert.ErrorIs(t, err, ErrRoleNotFound)
	})
}

func TestRoleService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, m := newTestRoleService(t)
		id := uuid.New()
		m.roles.On("SoftDelete", ctx, id).Return(nil)

		assert.NoError(t, svc.Delete(ctx, id))
	})

	t.Run("missing role", func(t *testing.T) {
		svc, m := newTestRoleService(t)
		id := uuid.New()
		m.roles.On("SoftDelete", ctx, id).Return(errors.New("role not found"))

		assert.ErrorIs(t, svc.Delete(ctx, id), ErrRoleNotFound)
	})
}
