package repository

import (
	"context"
	"fmt"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartRepository interface {
	// FindLines returns the user's cart lines joined with live product data.
	// A user with no cart gets an empty slice, never an error.
	FindLines(ctx context.Context, userID uuid.UUID) ([]*entity.CartLine, error)
	// AddItem creates the cart lazily and merges the quantity into an
	// existing line in a single atomic statement. Concurrent adds for the
	// same user never lose an update.
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	// SetQuantity replaces a line's quantity. Returns false when the user
	// has no such line item.
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (bool, error)
	// RemoveItem deletes a line. Removing an absent line is a no-op.
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartRepository(db database.PgxIface, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

func (r *cartRepository) FindLines(ctx context.Context, userID uuid.UUID) ([]*entity.CartLine, error) {
	query := `
		SELECT ci.product_id, p.name, p.price, ci.quantity
		FROM carts c
		JOIN cart_items ci ON ci.cart_id = c.id
		JOIN products p ON p.id = ci.product_id AND p.deleted_at IS NULL
		WHERE c.user_id = $1
		ORDER BY ci.created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find cart lines",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("failed to find cart lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.CartLine
	for rows.Next() {
		var line entity.CartLine
		if err := rows.Scan(&line.ProductID, &line.Name, &line.Price, &line.Quantity); err != nil {
			r.log.Error("Failed to scan cart line", zap.Error(err))
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, &line)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate cart lines: %w", err)
	}

	return lines, nil
}

func (r *cartRepository) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	// One statement: lazily create the cart, then merge the line. The
	// quantity addition happens inside the database, so two concurrent adds
	// both land (no read-modify-write in app code).
	query := `
		WITH c AS (
			INSERT INTO carts (id, user_id, created_at, updated_at)
			VALUES ($1, $2, NOW(), NOW())
			ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
			RETURNING id
		)
		INSERT INTO cart_items (cart_id, product_id, quantity, created_at, updated_at)
		SELECT c.id, $3, $4, NOW(), NOW() FROM c
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		              updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query, uuid.New(), userID, productID, quantity)
	if err != nil {
		r.log.Error("Failed to add cart item",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("product_id", productID.String()),
			zap.Int("quantity", quantity),
		)
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (bool, error) {
	query := `
		UPDATE cart_items ci
		SET quantity = $3, updated_at = NOW()
		FROM carts c
		WHERE ci.cart_id = c.id AND c.user_id = $1 AND ci.product_id = $2
	`

	result, err := r.db.Exec(ctx, query, userID, productID, quantity)
	if err != nil {
		r.log.Error("Failed to set cart quantity",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("product_id", productID.String()),
		)
		return false, fmt.Errorf("failed to set cart quantity: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	query := `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.cart_id = c.id AND c.user_id = $1 AND ci.product_id = $2
	`

	// Zero rows affected is fine: removal is idempotent
	_, err := r.db.Exec(ctx, query, userID, productID)
	if err != nil {
		r.log.Error("Failed to remove cart item",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("product_id", productID.String()),
		)
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	query := `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.cart_id = c.id AND c.user_id = $1
	`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to clear cart",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
