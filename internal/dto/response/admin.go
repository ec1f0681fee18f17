package response

import (
	"time"

	"storefront/internal/data/entity"
)

type PermissionRequestResponse struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	UserName    string               `json:"user_name"`
	OldEmail    string               `json:"old_email"`
	NewEmail    string               `json:"new_email"`
	Description string               `json:"description"`
	Status      entity.RequestStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}

func PermissionRequestToResponse(req *entity.PermissionRequest) PermissionRequestResponse {
	return PermissionRequestResponse{
		ID:          req.ID.String(),
		UserID:      req.UserID.String(),
		UserName:    req.UserName,
		OldEmail:    req.OldEmail,
		NewEmail:    req.NewEmail,
		Description: req.Description,
		Status:      req.Status,
		CreatedAt:   req.CreatedAt,
	}
}

func PermissionRequestsToResponse(requests []*entity.PermissionRequest) []PermissionRequestResponse {
	responses := make([]PermissionRequestResponse, len(requests))
	for i, req := range requests {
		responses[i] = PermissionRequestToResponse(req)
	}
	return responses
}
