package adaptor

import (
	"encoding/json"
	"net/http"

	"storefront/internal/dto/request"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// CreateRequest handles POST /api/admin/requests
func (h *AdminHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.PermissionRequestCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.CreateRequest(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create permission request")
		return
	}

	utils.ResponseCreated(w, "Request submitted for review", resp)
}

// ListPending handles GET /api/admin/requests
func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListPending(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list permission requests")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// Approve handles PUT /api/admin/requests/{id}/approve
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request ID", nil)
		return
	}

	if err := h.service.Approve(r.Context(), requestID); err != nil {
		handleServiceError(w, h.log, err, "approve permission request")
		return
	}

	utils.ResponseSuccess(w, "Request approved and user updated", nil)
}

// Reject handles PUT /api/admin/requests/{id}/reject
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request ID", nil)
		return
	}

	if err := h.service.Reject(r.Context(), requestID); err != nil {
		handleServiceError(w, h.log, err, "reject permission request")
		return
	}

	utils.ResponseSuccess(w, "Request rejected", nil)
}
