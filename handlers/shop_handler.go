package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/barberops/backend/middleware"
	"github.com/barberops/backend/services"
	"github.com/barberops/backend/utils"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ShopHandler handles shop-related HTTP requests
type ShopHandler struct {
	shops  *services.ShopService
	logger *zap.Logger
}

// NewShopHandler creates a new ShopHandler
func NewShopHandler(shops *services.ShopService, logger *zap.Logger) *ShopHandler {
	return &ShopHandler{
		shops:  shops,
		logger: logger,
	}
}

// HandleRegisterShop handles POST /api/v1/shops
func (h *ShopHandler) HandleRegisterShop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req services.RegisterShopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	result, err := h.shops.Register(ctx, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("shop registered",
		zap.String("request_id", requestID),
		zap.String("shop_id", result.Shop.ID.String()))

	_ = utils.WriteCreated(w, result)
}

// HandleListShops handles GET /api/v1/shops
func (h *ShopHandler) HandleListShops(w http.ResponseWriter, r *http.Request) {
	shops, err := h.shops.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, shops)
}

// HandleGetShop handles GET /api/v1/shops/{id}
func (h *ShopHandler) HandleGetShop(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid shop ID format", nil)
		return
	}

	shop, err := h.shops.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, shop)
}

// HandleUpdateShop handles PUT /api/v1/shops/{id}
func (h *ShopHandler) HandleUpdateShop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid shop ID format", nil)
		return
	}

	var req services.UpdateShopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	shop, err := h.shops.Update(ctx, id, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("shop updated",
		zap.String("request_id", requestID),
		zap.String("shop_id", id.String()))

	_ = utils.WriteOK(w, shop)
}

// HandleDeleteShop handles DELETE /api/v1/shops/{id}
func (h *ShopHandler) HandleDeleteShop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid shop ID format", nil)
		return
	}

	if err := h.shops.Delete(ctx, id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("shop deleted",
		zap.String("request_id", requestID),
		zap.String("shop_id", id.String()))

	utils.WriteNoContent(w)
}
