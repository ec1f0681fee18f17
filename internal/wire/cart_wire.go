package wire

import (
	"storefront/internal/adaptor"
	"storefront/internal/data/repository"
	"storefront/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCart(
	r chi.Router,
	cartHandler *adaptor.CartHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	auth := middleware.Authenticate(repo.Session, log)

	r.With(auth).Get("/api/cart", cartHandler.Get)
	r.With(auth).Post("/api/cart", cartHandler.Add)
	r.With(auth).Put("/api/cart/{productId}", cartHandler.SetQuantity)
	r.With(auth).Delete("/api/cart/{productId}", cartHandler.Remove)
}
