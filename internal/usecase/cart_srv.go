package usecase

import (
	"context"
	"fmt"

	"storefront/internal/data/repository"
	"storefront/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartService interface {
	// Get returns the user's cart with live-priced totals. A user who never
	// added anything gets an empty cart, not an error.
	Get(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error)
	Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*response.CartResponse, error)
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*response.CartResponse, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (*response.CartResponse, error)
}

type cartService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCartService(repo *repository.Repository, log *zap.Logger) CartService {
	return &cartService{
		repo: repo,
		log:  log.With(zap.String("service", "cart")),
	}
}

func (s *cartService) Get(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error) {
	lines, err := s.repo.Cart.FindLines(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	resp := response.CartToResponse(lines)
	return &resp, nil
}

func (s *cartService) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*response.CartResponse, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	// 1. Product must exist
	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to find product", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %w", ErrNotFound)
	}

	// 2. Merge into the cart. Quantities for an existing line add up inside
	// a single atomic statement, so the cart never grows duplicate lines.
	if err := s.repo.Cart.AddItem(ctx, userID, productID, quantity); err != nil {
		s.log.Error("Failed to add cart item",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.log.Info("Cart item added",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()),
		zap.Int("quantity", quantity))

	return s.Get(ctx, userID)
}

func (s *cartService) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*response.CartResponse, error) {
	// Quantity below 1 is rejected; callers remove the line instead
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	updated, err := s.repo.Cart.SetQuantity(ctx, userID, productID, quantity)
	if err != nil {
		s.log.Error("Failed to set cart quantity",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to set quantity: %w", err)
	}
	if !updated {
		return nil, fmt.Errorf("cart item %w", ErrNotFound)
	}

	s.log.Info("Cart quantity set",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()),
		zap.Int("quantity", quantity))

	return s.Get(ctx, userID)
}

func (s *cartService) Remove(ctx context.Context, userID, productID uuid.UUID) (*response.CartResponse, error) {
	// Removing an absent line is a no-op, the cart comes back unchanged
	if err := s.repo.Cart.RemoveItem(ctx, userID, productID); err != nil {
		s.log.Error("Failed to remove cart item",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to remove from cart: %w", err)
	}

	s.log.Info("Cart item removed",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()))

	return s.Get(ctx, userID)
}
