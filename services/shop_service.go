package services

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/barberops/backend/auth"
	"github.com/barberops/backend/models"
	"github.com/barberops/backend/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterShopRequest carries the data needed to register a shop together
// with its owner account.
type RegisterShopRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=120"`
	CommercialName string `json:"commercial_name" validate:"required,min=2,max=120"`
	TaxID          string `json:"tax_id" validate:"required,min=5,max=40"`
	Address        string `json:"address" validate:"max=200"`
	Phone          string `json:"phone" validate:"max=30"`
	Email          string `json:"email" validate:"required,email"`
	OpeningTime    string `json:"opening_time" validate:"required"`
	ClosingTime    string `json:"closing_time" validate:"required"`

	OwnerUsername string `json:"owner_username" validate:"required,min=3,max=60"`
	OwnerFullName string `json:"owner_full_name" validate:"required,min=2,max=120"`
	OwnerEmail    string `json:"owner_email" validate:"required,email"`
}

// RegisterShopResult is the outcome of a shop registration.
type RegisterShopResult struct {
	Shop  *models.Shop `json:"shop"`
	Owner *models.User `json:"owner"`
}

// UpdateShopRequest carries the mutable fields of a shop.
type UpdateShopRequest struct {
	Name           string            `json:"name" validate:"required,min=2,max=120"`
	CommercialName string            `json:"commercial_name" validate:"required,min=2,max=120"`
	Address        string            `json:"address" validate:"max=200"`
	Phone          string            `json:"phone" validate:"max=30"`
	Email          string            `json:"email" validate:"required,email"`
	OpeningTime    string            `json:"opening_time" validate:"required"`
	ClosingTime    string            `json:"closing_time" validate:"required"`
	Status         models.ShopStatus `json:"status" validate:"required,oneof=ACTIVE SUSPENDED CLOSED"`
}

// ShopService handles shop registration and lifecycle management
type ShopService struct {
	shopRepo     repositories.ShopRepository
	userRepo     repositories.UserRepository
	userShopRepo repositories.UserShopRepository
	txMgr        repositories.TransactionManager
	hasher       auth.SecretHasher
	email        EmailSender
	logger       *zap.Logger
}

// NewShopService creates a new ShopService instance
func NewShopService(
	repos *repositories.Repositories,
	txMgr repositories.TransactionManager,
	hasher auth.SecretHasher,
	email EmailSender,
	logger *zap.Logger,
) *ShopService {
	return &ShopService{
		shopRepo:     repos.Shops,
		userRepo:     repos.Users,
		userShopRepo: repos.UserShops,
		txMgr:        txMgr,
		hasher:       hasher,
		email:        email,
		logger:       logger,
	}
}

// Register creates a shop, its owner account and the owner's assignment in a
// single transaction. The owner receives a generated password by email; the
// registration succeeds even when delivery fails.
func (s *ShopService) Register(ctx context.Context, req RegisterShopRequest) (*RegisterShopResult, error) {
	if err := validateSchedule(req.OpeningTime, req.ClosingTime); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetByUsername(ctx, req.OwnerUsername); err == nil && existing != nil {
		return nil, ErrDuplicateUsername
	}

	tempPassword := generatePassword()
	hash, err := s.hasher.Hash(tempPassword)
	if err != nil {
		return nil, WrapInternal("failed to hash owner password", err)
	}

	shop := models.NewShop(req.Name, req.CommercialName, req.TaxID)
	shop.Address = req.Address
	shop.Phone = req.Phone
	shop.Email = req.Email
	shop.OpeningTime = req.OpeningTime
	shop.ClosingTime = req.ClosingTime

	owner := models.NewUser(req.OwnerUsername, req.OwnerFullName, req.OwnerEmail, models.RoleAdmin)
	owner.PasswordHash = hash

	err = s.txMgr.InTransaction(ctx, func(txCtx context.Context, tx repositories.Transaction) error {
		if err := s.shopRepo.Create(txCtx, shop); err != nil {
			return WrapInternal("failed to create shop", err)
		}
		if err := s.userRepo.Create(txCtx, owner); err != nil {
			return WrapInternal("failed to create owner user", err)
		}
		assignment := models.NewUserShop(owner.ID, shop.ID, models.RoleAdmin, true)
		if err := s.userShopRepo.Create(txCtx, assignment); err != nil {
			return WrapInternal("failed to create owner assignment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("shop registered",
		zap.String("shop_id", shop.ID.String()),
		zap.String("owner_id", owner.ID.String()))

	// Credentials email is best effort; the account exists either way. A
	// send still in flight at process exit is dropped without a log line.
	go s.sendCredentials(owner, shop, tempPassword)

	return &RegisterShopResult{Shop: shop, Owner: owner}, nil
}

// Get retrieves a shop by ID
func (s *ShopService) Get(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrShopNotFound
	}
	return shop, nil
}

// List retrieves all registered shops
func (s *ShopService) List(ctx context.Context) ([]*models.Shop, error) {
	shops, err := s.shopRepo.List(ctx)
	if err != nil {
		return nil, WrapInternal("failed to list shops", err)
	}
	return shops, nil
}

// Update applies the mutable fields to an existing shop
func (s *ShopService) Update(ctx context.Context, id uuid.UUID, req UpdateShopRequest) (*models.Shop, error) {
	if err := validateSchedule(req.OpeningTime, req.ClosingTime); err != nil {
		return nil, err
	}

	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrShopNotFound
	}

	shop.Name = req.Name
	shop.CommercialName = req.CommercialName
	shop.Address = req.Address
	shop.Phone = req.Phone
	shop.Email = req.Email
	shop.OpeningTime = req.OpeningTime
	shop.ClosingTime = req.ClosingTime
	shop.Status = req.Status
	shop.UpdatedAt = time.Now()

	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, WrapInternal("failed to update shop", err)
	}
	return shop, nil
}

// Delete soft-deletes a shop and deactivates its user assignments
func (s *ShopService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.shopRepo.GetByID(ctx, id); err != nil {
		return ErrShopNotFound
	}

	return s.txMgr.InTransaction(ctx, func(txCtx context.Context, tx repositories.Transaction) error {
		assignments, err := s.userShopRepo.GetByShopID(txCtx, id)
		if err != nil {
			return WrapInternal("failed to load shop assignments", err)
		}
		for _, a := range assignments {
			if err := s.userShopRepo.SoftDelete(txCtx, a.ID); err != nil {
				return WrapInternal("failed to remove shop assignment", err)
			}
		}
		if err := s.shopRepo.SoftDelete(txCtx, id); err != nil {
			return WrapInternal("failed to delete shop", err)
		}
		return nil
	})
}

func (s *ShopService) sendCredentials(owner *models.User, shop *models.Shop, password string) {
	body := "Hello " + owner.FullName + ",\n\n" +
		"Your shop \"" + shop.Name + "\" has been registered.\n" +
		"Username: " + owner.Username + "\n" +
		"Temporary password: " + password + "\n\n" +
		"Please change your password after the first sign-in.\n"

	if err := s.email.Send(owner.Email, "Your shop account", body); err != nil {
		s.logger.Warn("failed to send credentials email",
			zap.String("owner_id", owner.ID.String()),
			zap.Error(err))
	}
}

// validateSchedule checks HH:MM format and ordering of the business hours.
func validateSchedule(opening, closing string) error {
	openT, err := time.Parse("15:04", opening)
	if err != nil {
		return NewDomainError(ErrorTypeValidation, "invalid opening time, expected HH:MM", err)
	}
	closeT, err := time.Parse("15:04", closing)
	if err != nil {
		return NewDomainError(ErrorTypeValidation, "invalid closing time, expected HH:MM", err)
	}
	if !closeT.After(openT) {
		return ErrInvalidSchedule
	}
	return nil
}

// passwordAlphabet has 64 characters so a random byte maps onto it without
// modulo bias.
const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!*"

// generatePassword builds a random single-use password for new accounts.
func generatePassword() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic("no entropy source available: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = passwordAlphabet[b&63]
	}
	return string(buf)
}
