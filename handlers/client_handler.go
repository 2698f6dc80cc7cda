package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/barberops/backend/middleware"
	"github.com/barberops/backend/models"
	"github.com/barberops/backend/services"
	"github.com/barberops/backend/utils"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ClientHandler handles client-related HTTP requests. All routes are scoped
// to a shop through the {shopID} URL segment.
type ClientHandler struct {
	clients *services.ClientService
	logger  *zap.Logger
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clients *services.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clients: clients,
		logger:  logger,
	}
}

// HandleCreateClient handles POST /api/v1/shops/{shopID}/clients
func (h *ClientHandler) HandleCreateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	shopID, err := utils.ParseUUID(chi.URLParam(r, "shopID"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid shop ID format", nil)
		return
	}

	var req services.CreateClientRequest
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

	client, err := h.clients.Create(ctx, shopID, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("client created",
		zap.String("request_id", requestID),
		zap.String("client_id", client.ID.String()))

	_ = utils.WriteCreated(w, client)
}

// HandleListClients handles GET /api/v1/shops/{shopID}/clients with filter
// and pagination query parameters.
func (h *ClientHandler) HandleListClients(w http.ResponseWriter, r *http.Request) {
	shopID, err := utils.ParseUUID(chi.URLParam(r, "shopID"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid shop ID format", nil)
		return
	}

	filter, err := parseClientFilter(r)
	if err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), nil)
		return
	}

	page, err := h.clients.List(r.Context(), shopID, filter)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, page)
}

// HandleGetClient handles GET /api/v1/shops/{shopID}/clients/{id}
func (h *ClientHandler) HandleGetClient(w http.ResponseWriter, r *http.Request) {
	shopID, err := utils.ParseUUID(chi.URLParam(r, "shopID"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid shop ID format", nil)
		return
	}
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid client ID format", nil)
		return
	}

	client, err := h.clients.Get(r.Context(), id, shopID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, client)
}

// HandleUpdateClient handles PUT /api/v1/shops/{shopID}/clients/{id}
func (h *ClientHandler) HandleUpdateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	shopID, err := utils.ParseUUID(chi.URLParam(r, "shopID"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid shop ID format", nil)
		return
	}
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid client ID format", nil)
		return
	}

	var req services.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	client, err := h.clients.Update(ctx, id, shopID, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("client updated",
		zap.String("request_id", requestID),
		zap.String("client_id", id.String()))

	_ = utils.WriteOK(w, client)
}

// HandleDeleteClient handles DELETE /api/v1/shops/{shopID}/clients/{id}
func (h *ClientHandler) HandleDeleteClient(w http.ResponseWriter, r *http.Request) {
	shopID, err := utils.ParseUUID(chi.URLParam(r, "shopID"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid shop ID format", nil)
		return
	}
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid client ID format", nil)
		return
	}

	if err := h.clients.Delete(r.Context(), id, shopID); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteNoContent(w)
}

// parseClientFilter reads the listing query parameters.
func parseClientFilter(r *http.Request) (models.ClientFilter, error) {
	q := r.URL.Query()
	filter := models.ClientFilter{Search: q.Get("search")}

	if v := q.Get("is_active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, errInvalidQueryParam("is_active")
		}
		filter.IsActive = &b
	}
	if v := q.Get("is_vip"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, errInvalidQueryParam("is_vip")
		}
		filter.IsVIP = &b
	}
	if v := q.Get("deleted"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, errInvalidQueryParam("deleted")
		}
		filter.Deleted = &b
	}
	if v := q.Get("created_after"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errInvalidQueryParam("created_after")
		}
		filter.CreatedAfter = &ts
	}
	if v := q.Get("created_before"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errInvalidQueryParam("created_before")
		}
		filter.CreatedBefore = &ts
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, errInvalidQueryParam("page")
		}
		filter.Page.Page = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, errInvalidQueryParam("size")
		}
		filter.Page.Size = n
	}
	filter.Page.SortBy = q.Get("sort_by")
	filter.Page.SortDir = q.Get("sort_dir")

	return filter, nil
}

type queryParamError string

func errInvalidQueryParam(name string) error {
	return queryParamError("invalid query parameter: " + name)
}

func (e queryParamError) Error() string {
	return string(e)
}
