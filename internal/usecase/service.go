package usecase

import (
	"storefront/internal/data/repository"
	"storefront/internal/notify"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Catalog CatalogService
	Cart    CartService
	Order   OrderService
	Admin   AdminService
}

func NewService(repo *repository.Repository, config *utils.Config, mailer notify.Mailer, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, mailer, log),
		User:    NewUserService(repo.User, config, log),
		Catalog: NewCatalogService(repo, log),
		Cart:    NewCartService(repo, log),
		Order:   NewOrderService(repo, mailer, log),
		Admin:   NewAdminService(repo, log),
	}
}
