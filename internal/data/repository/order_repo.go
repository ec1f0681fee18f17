package repository

import (
	"context"
	"fmt"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderRepository interface {
	// Create persists the order and its snapshot lines in one transaction.
	// When clearCart is set the user's cart lines are deleted in the same
	// transaction, so a failed order never empties the cart.
	Create(ctx context.Context, order *entity.Order, items []*entity.OrderItem, clearCart bool) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
	FindBySellerID(ctx context.Context, sellerID uuid.UUID) ([]*entity.Order, error)
	FindItems(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error)
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order, items []*entity.OrderItem, clearCart bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (id, user_id, status, total, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(ctx, orderQuery,
		order.ID,
		order.UserID,
		order.Status,
		order.Total,
		order.CreatedAt,
	); err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("user_id", order.UserID.String()),
		)
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, seller_id, name, price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery,
			order.ID,
			item.ProductID,
			item.SellerID,
			item.Name,
			item.Price,
			item.Quantity,
		); err != nil {
			r.log.Error("Failed to create order item",
				zap.Error(err),
				zap.String("order_id", order.ID.String()),
				zap.String("product_id", item.ProductID.String()),
			)
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if clearCart {
		clearQuery := `
			DELETE FROM cart_items ci
			USING carts c
			WHERE ci.cart_id = c.id AND c.user_id = $1
		`
		if _, err := tx.Exec(ctx, clearQuery, order.UserID); err != nil {
			r.log.Error("Failed to clear cart after order",
				zap.Error(err),
				zap.String("user_id", order.UserID.String()),
			)
			return fmt.Errorf("failed to clear cart: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}

	return nil
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	query := `
		SELECT id, user_id, status, total, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find user orders",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows, r.log)
}

func (r *orderRepository) FindBySellerID(ctx context.Context, sellerID uuid.UUID) ([]*entity.Order, error) {
	query := `
		SELECT DISTINCT o.id, o.user_id, o.status, o.total, o.created_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE oi.seller_id = $1
		ORDER BY o.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, sellerID)
	if err != nil {
		r.log.Error("Failed to find seller orders",
			zap.Error(err),
			zap.String("seller_id", sellerID.String()),
		)
		return nil, fmt.Errorf("failed to find seller orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows, r.log)
}

func (r *orderRepository) FindItems(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	query := `
		SELECT order_id, product_id, seller_id, name, price, quantity
		FROM order_items
		WHERE order_id = $1
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		r.log.Error("Failed to find order items",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return nil, fmt.Errorf("failed to find order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		err := rows.Scan(
			&item.OrderID,
			&item.ProductID,
			&item.SellerID,
			&item.Name,
			&item.Price,
			&item.Quantity,
		)
		if err != nil {
			r.log.Error("Failed to scan order item", zap.Error(err))
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}

	return items, nil
}

func scanOrders(rows pgx.Rows, log *zap.Logger) ([]*entity.Order, error) {
	var orders []*entity.Order
	for rows.Next() {
		var order entity.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Status,
			&order.Total,
			&order.CreatedAt,
		)
		if err != nil {
			log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return orders, nil
}
