package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/barberops/backend/middleware"
	"github.com/barberops/backend/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Product is a catalog entry sold over the counter. The catalog is held in
// memory; it exists to exercise the per-permission route gates.
type Product struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductRequest carries the data for a new product.
type CreateProductRequest struct {
	Name  string  `json:"name" validate:"required,min=2,max=120"`
	Price float64 `json:"price" validate:"gte=0"`
}

// ProductHandler handles the permission-gated product endpoints
type ProductHandler struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*Product
	logger   *zap.Logger
}

// NewProductHandler creates a new ProductHandler with an empty catalog
func NewProductHandler(logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		products: make(map[uuid.UUID]*Product),
		logger:   logger,
	}
}

// HandleAddProduct handles POST /api/v1/products. Gated on PRODUCT_ADD.
func (h *ProductHandler) HandleAddProduct(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	product := &Product{
		ID:        uuid.New(),
		Name:      req.Name,
		Price:     req.Price,
		CreatedBy: identity.Subject,
		CreatedAt: time.Now(),
	}

	h.mu.Lock()
	h.products[product.ID] = product
	h.mu.Unlock()

	h.logger.Info("product added",
		zap.String("product_id", product.ID.String()),
		zap.String("created_by", identity.Subject))

	_ = utils.WriteCreated(w, product)
}

// HandleGetProduct handles GET /api/v1/products/{id}. Gated on PRODUCT_VIEW.
func (h *ProductHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid product ID format", nil)
		return
	}

	h.mu.RLock()
	product, ok := h.products[id]
	h.mu.RUnlock()

	if !ok {
		_ = utils.WriteNotFound(w, "Product not found")
		return
	}
	_ = utils.WriteOK(w, product)
}

// HandleListProducts handles GET /api/v1/products. Gated on PRODUCT_VIEW_ALL.
func (h *ProductHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	out := make([]*Product, 0, len(h.products))
	for _, p := range h.products {
		out = append(out, p)
	}
	h.mu.RUnlock()

	_ = utils.WriteOK(w, out)
}
