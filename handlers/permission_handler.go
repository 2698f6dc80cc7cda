package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/barberops/backend/services"
	"github.com/barberops/backend/utils"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PermissionHandler handles permission catalog HTTP requests
type PermissionHandler struct {
	permissions *services.PermissionService
	logger      *zap.Logger
}

// NewPermissionHandler creates a new PermissionHandler
func NewPermissionHandler(permissions *services.PermissionService, logger *zap.Logger) *PermissionHandler {
	return &PermissionHandler{
		permissions: permissions,
		logger:      logger,
	}
}

// HandleCreatePermission handles POST /api/v1/permissions
func (h *PermissionHandler) HandleCreatePermission(w http.ResponseWriter, r *http.Request) {
	var req services.CreatePermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	perm, err := h.permissions.Create(r.Context(), req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, perm)
}

// HandleListPermissions handles GET /api/v1/permissions
func (h *PermissionHandler) HandleListPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.permissions.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, perms)
}

// HandleGetPermission handles GET /api/v1/permissions/{id}
func (h *PermissionHandler) HandleGetPermission(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid permission ID format", nil)
		return
	}

	perm, err := h.permissions.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, perm)
}

// HandleUpdatePermission handles PUT /api/v1/permissions/{id}
func (h *PermissionHandler) HandleUpdatePermission(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid permission ID format", nil)
		return
	}

	var req services.UpdatePermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	perm, err := h.permissions.Update(r.Context(), id, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, perm)
}

// HandleDeletePermission handles DELETE /api/v1/permissions/{id}
func (h *PermissionHandler) HandleDeletePermission(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid permission ID format", nil)
		return
	}

	if err := h.permissions.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	utils.WriteNoContent(w)
}
