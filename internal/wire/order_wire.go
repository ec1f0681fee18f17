package wire

import (
	"storefront/internal/adaptor"
	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	auth := middleware.Authenticate(repo.Session, log)

	r.With(auth).Post("/api/orders", orderHandler.Create)
	r.With(auth).Get("/api/orders", orderHandler.List)

	sellerOrAdmin := middleware.RequireRole(log, entity.RoleSeller, entity.RoleAdmin)
	r.With(auth, sellerOrAdmin).Get("/api/orders/seller", orderHandler.ListForSeller)
}
