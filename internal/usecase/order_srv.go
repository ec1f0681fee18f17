package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/response"
	"storefront/internal/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	// CreateFromCart snapshots the cart into a pending order and clears the
	// cart, all in one transaction.
	CreateFromCart(ctx context.Context, userID uuid.UUID) (*response.OrderResponse, error)
	// CreateSingle is the "buy now" path: one line, quantity 1, completed
	// immediately (no payment step).
	CreateSingle(ctx context.Context, userID, productID uuid.UUID) (*response.OrderResponse, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]response.OrderResponse, error)
	ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]response.OrderResponse, error)
}

type orderService struct {
	repo   *repository.Repository
	mailer notify.Mailer
	log    *zap.Logger
}

func NewOrderService(repo *repository.Repository, mailer notify.Mailer, log *zap.Logger) OrderService {
	return &orderService{
		repo:   repo,
		mailer: mailer,
		log:    log.With(zap.String("service", "order")),
	}
}

func (s *orderService) CreateFromCart(ctx context.Context, userID uuid.UUID) (*response.OrderResponse, error) {
	// 1. Read the cart with live product data
	lines, err := s.repo.Cart.FindLines(ctx, userID)
	if err != nil {
		s.log.Error("Failed to read cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	// 2. Snapshot each line. Name and price are frozen here; later catalog
	// edits never reach the order.
	order := &entity.Order{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID: userID,
		Status: entity.OrderStatusPending,
	}

	items := make([]*entity.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, err := s.repo.Product.FindByID(ctx, line.ProductID)
		if err != nil || product == nil {
			return nil, fmt.Errorf("product %s %w", line.ProductID.String(), ErrNotFound)
		}

		items = append(items, &entity.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			SellerID:  product.SellerID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
		order.Total += line.Price * float64(line.Quantity)
	}

	// 3. Persist and clear the cart atomically
	if err := s.repo.Order.Create(ctx, order, items, true); err != nil {
		s.log.Error("Failed to create order", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.log.Info("Order created from cart",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("line_count", len(items)),
		zap.Float64("total", order.Total))

	// 4. Confirmation email (async, best-effort)
	go s.sendOrderConfirmation(userID, order)

	resp := response.OrderToResponse(order, items)
	return &resp, nil
}

func (s *orderService) CreateSingle(ctx context.Context, userID, productID uuid.UUID) (*response.OrderResponse, error) {
	// 1. Product must exist
	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to find product", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %w", ErrNotFound)
	}

	// 2. One-line order, completed right away
	order := &entity.Order{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID: userID,
		Status: entity.OrderStatusCompleted,
		Total:  product.Price,
	}

	items := []*entity.OrderItem{{
		OrderID:   order.ID,
		ProductID: product.ID,
		SellerID:  product.SellerID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
	}}

	if err := s.repo.Order.Create(ctx, order, items, false); err != nil {
		s.log.Error("Failed to create order", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.log.Info("Buy-now order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()))

	go s.sendOrderConfirmation(userID, order)

	resp := response.OrderToResponse(order, items)
	return &resp, nil
}

func (s *orderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]response.OrderResponse, error) {
	orders, err := s.repo.Order.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list orders", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return s.expandOrders(ctx, orders)
}

func (s *orderService) ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]response.OrderResponse, error) {
	orders, err := s.repo.Order.FindBySellerID(ctx, sellerID)
	if err != nil {
		s.log.Error("Failed to list seller orders", zap.Error(err), zap.String("seller_id", sellerID.String()))
		return nil, fmt.Errorf("failed to list seller orders: %w", err)
	}

	return s.expandOrders(ctx, orders)
}

// ==================== HELPER METHODS ====================

func (s *orderService) expandOrders(ctx context.Context, orders []*entity.Order) ([]response.OrderResponse, error) {
	responses := make([]response.OrderResponse, 0, len(orders))
	for _, order := range orders {
		items, err := s.repo.Order.FindItems(ctx, order.ID)
		if err != nil {
			s.log.Error("Failed to load order items",
				zap.Error(err), zap.String("order_id", order.ID.String()))
			return nil, fmt.Errorf("failed to load order items: %w", err)
		}
		responses = append(responses, response.OrderToResponse(order, items))
	}
	return responses, nil
}

func (s *orderService) sendOrderConfirmation(userID uuid.UUID, order *entity.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil || user == nil {
		s.log.Error("Failed to load user for order confirmation",
			zap.Error(err), zap.String("user_id", userID.String()))
		return
	}

	body := fmt.Sprintf("Hi %s,\n\nYour order %s for %.2f is %s.\n",
		user.Name, order.ID.String(), order.Total, order.Status)
	if err := s.mailer.Send(user.Email, "Order confirmation", body); err != nil {
		s.log.Error("Failed to send order confirmation",
			zap.Error(err), zap.String("order_id", order.ID.String()))
	}
}
