package wire

import (
	"storefront/internal/adaptor"
	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	auth := middleware.Authenticate(repo.Session, log)
	adminOnly := middleware.RequireRole(log, entity.RoleAdmin)

	// Any authenticated user may file a request; review is admin-only
	r.With(auth).Post("/api/admin/requests", adminHandler.CreateRequest)
	r.With(auth, adminOnly).Get("/api/admin/requests", adminHandler.ListPending)
	r.With(auth, adminOnly).Put("/api/admin/requests/{id}/approve", adminHandler.Approve)
	r.With(auth, adminOnly).Put("/api/admin/requests/{id}/reject", adminHandler.Reject)
}
