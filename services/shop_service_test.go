package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/barberops/backend/models"
	"github.com/barberops/backend/repositories"
)

type shopServiceMocks struct {
	shops     *MockShopRepository
	users     *MockUserRepository
	userShops *MockUserShopRepository
	txMgr     *passthroughTxManager
	email     *recordingEmailSender
}

func newTestShopService(t *testing.T) (*ShopService, *shopServiceMocks) {
	t.Helper()

	m := &shopServiceMocks{
		shops:     &MockShopRepository{},
		users:     &MockUserRepository{},
		userShops: &MockUserShopRepository{},
		txMgr:     &passthroughTxManager{},
		email:     newRecordingEmailSender(),
	}
	repos := &repositories.Repositories{
		Shops:     m.shops,
		Users:     m.users,
		UserShops: m.userShops,
	}
	svc := NewShopService(repos, m.txMgr, &fakeHasher{}, m.email, zaptest.NewLogger(t))
	return svc, m
}

func validRegisterRequest() RegisterShopRequest {
	return RegisterShopRequest{
		Name:           "Corner Barbershop",
		CommercialName: "Corner Barbershop SAS",
		TaxID:          "900123456-7",
		Address:        "Calle 10 # 43-12",
		Phone:          "+57 300 123 4567",
		Email:          "shop@example.com",
		OpeningTime:    "09:00",
		ClosingTime:    "19:00",
		OwnerUsername:  "owner",
		OwnerFullName:  "Shop Owner",
		OwnerEmail:     "owner@example.com",
	}
}

func TestShopService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates shop, owner and assignment in one transaction", func(t *testing.T) {
		svc, m := newTestShopService(t)
		req := validRegisterRequest()

		m.users.On("GetByUsername", ctx, "owner").Return(nil, errors.New("user not found"))
		m.shops.On("Create", mock.Anything, mock.AnythingOfType("*models.Shop")).Return(nil)
		m.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
		m.userShops.On("Create", mock.Anything, mock.AnythingOfType("*models.UserShop")).Return(nil)

		result, err := svc.Register(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, "Corner Barbershop", result.Shop.Name)
		assert.Equal(t, models.ShopStatusActive, result.Shop.Status)
		assert.Equal(t, "owner", result.Owner.Username)
		assert.Equal(t, models.RoleAdmin, result.Owner.Role)
		assert.True(t, result.Owner.IsActive)
		assert.NotEmpty(t, result.Owner.PasswordHash)

		assert.Equal(t, 1, m.txMgr.calls)
		m.shops.AssertExpectations(t)
		m.users.AssertExpectations(t)
		m.userShops.AssertExpectations(t)

		// Credentials mail goes out asynchronously
		select {
		case <-m.email.done:
		case <-time.After(2 * time.Second):
			t.Fatal("credentials email was never sent")
		}
		assert.True(t, m.email.sentTo("owner@example.com"))
		assert.True(t, m.email.bodyContains("owner"))
	})

	t.Run("duplicate owner username is a conflict", func(t *testing.T) {
		svc, m := newTestShopService(t)
		req := validRegisterRequest()

		existing := models.NewUser("owner", "Someone Else", "else@example.com", models.RoleStaff)
		m.users.On("GetByUsername", ctx, "owner").Return(existing, nil)

		result, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrDuplicateUsername)
		assert.Nil(t, result)
		m.shops.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("closing before opening is rejected", func(t *testing.T) {
		svc, _ := newTestShopService(t)
		req := validRegisterRequest()
		req.OpeningTime = "19:00"
		req.ClosingTime = "09:00"

		result, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidSchedule)
		assert.Nil(t, result)
	})

	t.Run("equal opening and closing is rejected", func(t *testing.T) {
		svc, _ := newTestShopService(t)
		req := validRegisterRequest()
		req.OpeningTime = "09:00"
		req.ClosingTime = "09:00"

		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("malformed schedule is a validation error", func(t *testing.T) {
		svc, _ := newTestShopService(t)
		req := validRegisterRequest()
		req.OpeningTime = "9am"

		_, err := svc.Register(ctx, req)
		assert.True(t, IsValidationError(err))
	})

	t.Run("transaction failure aborts registration", func(t *testing.T) {
		svc, m := newTestShopService(t)
		req := validRegisterRequest()

		m.users.On("GetByUsername", ctx, "owner").Return(nil, errors.New("user not found"))
		m.shops.On("Create", mock.Anything, mock.AnythingOfType("*models.Shop")).Return(nil)
		m.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(errors.New("unique violation"))

		result, err := svc.Register(ctx, req)
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, IsInternalError(err))
		m.userShops.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestShopService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc, m := newTestShopService(t)
		shop := models.NewShop("Corner Barbershop", "Corner Barbershop SAS", "900123456-7")
		m.shops.On("GetByID", ctx, shop.ID).Return(shop, nil)

		got, err := svc.Get(ctx, shop.ID)
		require.NoError(t, err)
		assert.Equal(t, shop.ID, got.ID)
	})

	t.Run("missing shop", func(t *testing.T) {
		svc, m := newTestShopService(t)
		id := uuid.New()
		m.shops.On("GetByID", ctx, id).Return(nil, errors.New("shop not found"))

		got, err := svc.Get(ctx, id)
		assert.ErrorIs(t, err, ErrShopNotFound)
		assert.Nil(t, got)
	})
}

func TestShopService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies mutable fields", func(t *testing.T) {
		svc, m := newTestShopService(t)
		shop := models.NewShop("Old Name", "Old Name SAS", "900123456-7")
		m.shops.On("GetByID", ctx, shop.ID).Return(shop, nil)
		m.shops.On("Update", ctx, shop).Return(nil)

		req := UpdateShopRequest{
			Name:           "New Name",
			CommercialName: "New Name SAS",
			Email:          "new@example.com",
			OpeningTime:    "08:00",
			ClosingTime:    "18:00",
			Status:         models.ShopStatusSuspended,
		}

		updated, err := svc.Update(ctx, shop.ID, req)
		require.NoError(t, err)
		assert.Equal(t, "New Name", updated.Name)
		assert.Equal(t, models.ShopStatusSuspended, updated.Status)
	})

	t.Run("missing shop", func(t *testing.T) {
		svc, m := newTestShopService(t)
		id := uuid.New()
		m.shops.On("GetByID", ctx, id).Return(nil, errors.New("shop not found"))

		req := UpdateShopRequest{
			Name:           "New Name",
			CommercialName: "New Name SAS",
			Email:          "new@example.com",
			OpeningTime:    "08:00",
			ClosingTime:    "18:00",
			Status:         models.ShopStatusActive,
		}

		_, err := svc.Update(ctx, id, req)
		assert.ErrorIs(t, err, ErrShopNotFound)
	})
}

func TestShopService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes assignments then the shop", func(t *testing.T) {
		svc, m := newTestShopService(t)
		shop := models.NewShop("Corner Barbershop", "Corner Barbershop SAS", "900123456-7")
		first := models.NewUserShop(uuid.New(), shop.ID, models.RoleAdmin, true)
		second := models.NewUserShop(uuid.New(), shop.ID, models.RoleStaff, false)

		m.shops.On("GetByID", ctx, shop.ID).Return(shop, nil)
		m.userShops.On("GetByShopID", mock.Anything, shop.ID).Return([]*models.UserShop{first, second}, nil)
		m.userShops.On("SoftDelete", mock.Anything, first.ID).Return(nil)
		m.userShops.On("SoftDelete", mock.Anything, second.ID).Return(nil)
		m.shops.On("SoftDelete", mock.Anything, shop.ID).Return(nil)

		err := svc.Delete(ctx, shop.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, m.txMgr.calls)
		m.userShops.AssertExpectations(t)
		m.shops.AssertExpectations(t)
	})

	t.Run("missing shop", func(t *testing.T) {
		svc, m := newTestShopService(t)
		id := uuid.New()
		m.shops.On("GetByID", ctx, id).Return(nil, errors.New("shop not found"))

		err := svc.Delete(ctx, id)
		assert.ErrorIs(t, err, ErrShopNotFound)
	})
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, validateSchedule("09:00", "19:00"))
	assert.NoError(t, validateSchedule("00:00", "23:59"))
	assert.ErrorIs(t, validateSchedule("19:00", "09:00"), ErrInvalidSchedule)
	assert.ErrorIs(t, validateSchedule("09:00", "09:00"), ErrInvalidSchedule)
	assert.Error(t, validateSchedule("9am", "19:00"))
	assert.Error(t, validateSchedule("09:00", "25:00"))
}

func TestGeneratePassword(t *testing.T) {
	first := generatePassword()
	second := generatePassword()

	assert.Len(t, first, 16)
	assert.NotEqual(t, first, second)
	for _, c := range first {
		assert.Contains(t, passwordAlphabet, string(c))
	}

	// A hex-only generator would never emit the upper half of the alphabet.
	seen := make(map[rune]bool)
	for i := 0; i < 64; i++ {
		for _, c := range generatePassword() {
			seen[c] = true
		}
	}
	assert.Greater(t, len(seen), 22, "alphabet coverage too narrow")
}
