package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/barberops/backend/services"
	"github.com/barberops/backend/utils"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RoleHandler handles role catalog HTTP requests
type RoleHandler struct {
	roles  *services.RoleService
	logger *zap.Logger
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(roles *services.RoleService, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{
		roles:  roles,
		logger: logger,
	}
}

// HandleCreateRole handles POST /api/v1/roles
func (h *RoleHandler) HandleCreateRole(w http.ResponseWriter, r *http.Request) {
	var req services.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	role, err := h.roles.Create(r.Context(), req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, role)
}

// HandleListRoles handles GET /api/v1/roles
func (h *RoleHandler) HandleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, roles)
}

// HandleGetRole handles GET /api/v1/roles/{id}
func (h *RoleHandler) HandleGetRole(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid role ID format", nil)
		return
	}

	role, err := h.roles.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, role)
}

// HandleUpdateRole handles PUT /api/v1/roles/{id}
func (h *RoleHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid role ID format", nil)
		return
	}

	var req services.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	role, err := h.roles.Update(r.Context(), id, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, role)
}

// HandleDeleteRole handles DELETE /api/v1/roles/{id}
func (h *RoleHandler) HandleDeleteRole(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid role ID format", nil)
		return
	}

	if err := h.roles.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	utils.WriteNoContent(w)
}
