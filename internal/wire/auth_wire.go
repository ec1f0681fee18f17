package wire

import (
	"storefront/internal/adaptor"
	"storefront/internal/data/repository"
	"storefront/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)

	// Protected routes
	auth := middleware.Authenticate(repo.Session, log)
	r.With(auth).Post("/api/auth/logout", authHandler.Logout)
	r.With(auth).Get("/api/auth/me", authHandler.Me)
}
