package services

import (
	"context"
	"time"

	"github.com/barberops/backend/models"
	"github.com/barberops/backend/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateClientRequest carries the data for a new client.
type CreateClientRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=120"`
	Phone    string `json:"phone" validate:"max=30"`
	Email    string `json:"email" validate:"required,email"`
	IsVIP    bool   `json:"is_vip"`
	Notes    string `json:"notes" validate:"max=500"`
}

// UpdateClientRequest carries the mutable fields of a client.
type UpdateClientRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=120"`
	Phone    string `json:"phone" validate:"max=30"`
	Email    string `json:"email" validate:"required,email"`
	IsVIP    bool   `json:"is_vip"`
	IsActive bool   `json:"is_active"`
	Notes    string `json:"notes" validate:"max=500"`
}

// ClientService handles client management within a shop
type ClientService struct {
	clientRepo repositories.ClientRepository
	shopRepo   repositories.ShopRepository
	logger     *zap.Logger
}

// NewClientService creates a new ClientService instance
func NewClientService(repos *repositories.Repositories, logger *zap.Logger) *ClientService {
	return &ClientService{
		clientRepo: repos.Clients,
		shopRepo:   repos.Shops,
		logger:     logger,
	}
}

// Create registers a new client in the shop. Email must be unique within
// the shop.
func (s *ClientService) Create(ctx context.Context, shopID uuid.UUID, req CreateClientRequest) (*models.Client, error) {
	if _, err := s.shopRepo.GetByID(ctx, shopID); err != nil {
		return nil, ErrShopNotFound
	}

	exists, err := s.clientRepo.ExistsByEmail(ctx, req.Email, shopID, nil)
	if err != nil {
		return nil, WrapInternal("failed to check client email", err)
	}
	if exists {
		return nil, ErrDuplicateClientEmail
	}

	client := models.NewClient(req.FullName, req.Phone, req.Email, shopID)
	client.IsVIP = req.IsVIP
	client.Notes = req.Notes

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, WrapInternal("failed to create client", err)
	}

	s.logger.Info("client created",
		zap.String("client_id", client.ID.String()),
		zap.String("shop_id", shopID.String()))
	return client, nil
}

// Get retrieves a client by ID within the shop
func (s *ClientService) Get(ctx context.Context, id, shopID uuid.UUID) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id, shopID)
	if err != nil {
		return nil, ErrClientNotFound
	}
	return client, nil
}

// List retrieves a filtered page of the shop's clients
func (s *ClientService) List(ctx context.Context, shopID uuid.UUID, filter models.ClientFilter) (models.PageResponse[*models.Client], error) {
	filter.ShopID = &shopID
	filter.Page = filter.Page.Normalize("full_name")

	clients, total, err := s.clientRepo.List(ctx, filter)
	if err != nil {
		return models.PageResponse[*models.Client]{}, WrapInternal("failed to list clients", err)
	}
	if clients == nil {
		clients = []*models.Client{}
	}
	return models.NewPageResponse(clients, filter.Page, total), nil
}

// Update applies the mutable fields to an existing client
func (s *ClientService) Update(ctx context.Context, id, shopID uuid.UUID, req UpdateClientRequest) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id, shopID)
	if err != nil {
		return nil, ErrClientNotFound
	}

	if req.Email != client.Email {
		exists, err := s.clientRepo.ExistsByEmail(ctx, req.Email, shopID, &id)
		if err != nil {
			return nil, WrapInternal("failed to check client email", err)
		}
		if exists {
			return nil, ErrDuplicateClientEmail
		}
	}

	client.FullName = req.FullName
	client.Phone = req.Phone
	client.Email = req.Email
	client.IsVIP = req.IsVIP
	client.IsActive = req.IsActive
	client.Notes = req.Notes
	client.UpdatedAt = time.Now()

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, WrapInternal("failed to update client", err)
	}
	return client, nil
}

// Delete soft-deletes a client
func (s *ClientService) Delete(ctx context.Context, id, shopID uuid.UUID) error {
	if err := s.clientRepo.SoftDelete(ctx, id, shopID); err != nil {
		return ErrClientNotFound
	}
	return nil
}
