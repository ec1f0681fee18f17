package repository

import (
	"storefront/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Session    SessionRepository
	Product    ProductRepository
	Cart       CartRepository
	Order      OrderRepository
	Permission PermissionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Session:    NewSessionRepository(db, log),
		Product:    NewProductRepository(db, log),
		Cart:       NewCartRepository(db, log),
		Order:      NewOrderRepository(db, log),
		Permission: NewPermissionRepository(db, log),
	}
}
