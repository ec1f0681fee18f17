package wire

import (
	"storefront/internal/adaptor"
	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProduct(
	r chi.Router,
	productHandler *adaptor.ProductHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Browsing the catalog is public
	r.Get("/api/products", productHandler.List)

	auth := middleware.Authenticate(repo.Session, log)

	// Catalog mutation: sellers own their products, admins moderate
	sellerOrAdmin := middleware.RequireRole(log, entity.RoleSeller, entity.RoleAdmin)
	r.With(auth, sellerOrAdmin).Post("/api/products", productHandler.Create)
	r.With(auth, sellerOrAdmin).Put("/api/products/{id}", productHandler.Update)
	r.With(auth, sellerOrAdmin).Delete("/api/products/{id}", productHandler.Delete)

	// Any authenticated buyer may rate a purchased product
	r.With(auth).Post("/api/products/{id}/rate", productHandler.Rate)
}
