package services

import (
	"context"
	"time"

	"github.com/barberops/backend/auth"
	"github.com/barberops/backend/models"
	"github.com/barberops/backend/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateUserRequest carries the data for a new user account.
type CreateUserRequest struct {
	Username string          `json:"username" validate:"required,min=3,max=60"`
	Password string          `json:"password" validate:"required,min=8,max=128"`
	FullName string          `json:"full_name" validate:"required,min=2,max=120"`
	Email    string          `json:"email" validate:"required,email"`
	Role     models.RoleName `json:"role" validate:"required,oneof=ROLE_ADMIN ROLE_STAFF ROLE_GUEST"`
	ShopID   *uuid.UUID      `json:"shop_id,omitempty"`
}

// UpdateUserRequest carries the mutable fields of a user. Username is
// immutable after creation.
type UpdateUserRequest struct {
	FullName string          `json:"full_name" validate:"required,min=2,max=120"`
	Email    string          `json:"email" validate:"required,email"`
	Role     models.RoleName `json:"role" validate:"required,oneof=ROLE_ADMIN ROLE_STAFF ROLE_GUEST"`
}

// ChangePasswordRequest carries a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
}

// UserService handles user account management
type UserService struct {
	userRepo     repositories.UserRepository
	userShopRepo repositories.UserShopRepository
	txMgr        repositories.TransactionManager
	hasher       auth.SecretHasher
	registry     *auth.Registry
	logger       *zap.Logger
}

// NewUserService creates a new UserService instance
func NewUserService(
	repos *repositories.Repositories,
	txMgr repositories.TransactionManager,
	hasher auth.SecretHasher,
	registry *auth.Registry,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:     repos.Users,
		userShopRepo: repos.UserShops,
		txMgr:        txMgr,
		hasher:       hasher,
		registry:     registry,
		logger:       logger,
	}
}

// Create registers a new user, optionally assigned to a shop.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if !s.registry.Knows(string(req.Role)) {
		return nil, ErrInvalidRole
	}

	if existing, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, ErrDuplicateUsername
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, WrapInternal("failed to hash password", err)
	}

	user := models.NewUser(req.Username, req.FullName, req.Email, req.Role)
	user.PasswordHash = hash

	err = s.txMgr.InTransaction(ctx, func(txCtx context.Context, tx repositories.Transaction) error {
		if err := s.userRepo.Create(txCtx, user); err != nil {
			return WrapInternal("failed to create user", err)
		}
		if req.ShopID != nil {
			assignment := models.NewUserShop(user.ID, *req.ShopID, req.Role, true)
			if err := s.userShopRepo.Create(txCtx, assignment); err != nil {
				return WrapInternal("failed to assign user to shop", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))
	return user, nil
}

// Get retrieves a user by ID
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ListByShop retrieves the users assigned to a shop
func (s *UserService) ListByShop(ctx context.Context, shopID uuid.UUID) ([]*models.User, error) {
	users, err := s.userRepo.GetByShopID(ctx, shopID)
	if err != nil {
		return nil, WrapInternal("failed to list shop users", err)
	}
	return users, nil
}

// Update applies the mutable fields to an existing user
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*models.User, error) {
	if !s.registry.Knows(string(req.Role)) {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.FullName = req.FullName
	user.Email = req.Email
	user.Role = req.Role
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, WrapInternal("failed to update user", err)
	}
	return user, nil
}

// ChangePassword verifies the current password and sets a new hash
func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return ErrUserNotFound
	}

	if !s.hasher.Verify(req.CurrentPassword, user.PasswordHash) {
		return ErrUnauthorized
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return WrapInternal("failed to hash password", err)
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return WrapInternal("failed to update password", err)
	}

	s.logger.Info("password changed", zap.String("user_id", id.String()))
	return nil
}

// Deactivate soft-deactivates a user and removes shop assignments. The row
// is kept so audit history stays intact.
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return ErrUserNotFound
	}

	return s.txMgr.InTransaction(ctx, func(txCtx context.Context, tx repositories.Transaction) error {
		assignments, err := s.userShopRepo.GetByUserID(txCtx, id)
		if err != nil {
			return WrapInternal("failed to load user assignments", err)
		}
		for _, a := range assignments {
			if err := s.userShopRepo.SoftDelete(txCtx, a.ID); err != nil {
				return WrapInternal("failed to remove user assignment", err)
			}
		}
		if err := s.userRepo.Deactivate(txCtx, id); err != nil {
			return WrapInternal("failed to deactivate user", err)
		}
		return nil
	})
}
