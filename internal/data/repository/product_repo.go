package repository

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/data/entity"
	"storefront/pkg/database"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindAll(ctx context.Context, filter *entity.ProductFilter) ([]*entity.Product, error)
	// Count returns the number of products matching the filter, ignoring
	// its paging fields.
	Count(ctx context.Context, filter *entity.ProductFilter) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	// DeleteCascade soft-deletes the product and removes every cart line
	// referencing it, in one transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) error

	// Ratings
	UpsertRating(ctx context.Context, rating *entity.Rating) error
	HasPurchased(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, price, description, category, seller_id,
		                     average_rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Price,
		product.Description,
		product.Category,
		product.SellerID,
		product.AverageRating,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("name", product.Name),
			zap.String("seller_id", product.SellerID.String()),
		)
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `
		SELECT id, name, price, description, category, seller_id,
		       average_rating, created_at, updated_at, deleted_at
		FROM products
		WHERE id = $1 AND deleted_at IS NULL
	`

	var product entity.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Description,
		&product.Category,
		&product.SellerID,
		&product.AverageRating,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return &product, nil
}

// buildFilterClause appends AND conditions for every set filter field.
// Returns the accumulated args and the next positional index.
func buildFilterClause(queryBuilder *strings.Builder, filter *entity.ProductFilter) []interface{} {
	args := []interface{}{}
	argCount := 1

	if filter == nil {
		return args
	}

	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND name ILIKE $%d", argCount))
		args = append(args, "%"+filter.Search+"%")
		argCount++
	}
	if filter.MinPrice != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND price >= $%d", argCount))
		args = append(args, *filter.MinPrice)
		argCount++
	}
	if filter.MaxPrice != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND price <= $%d", argCount))
		args = append(args, *filter.MaxPrice)
		argCount++
	}
	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND category = $%d", argCount))
		args = append(args, filter.Category)
	}

	return args
}

func (r *productRepository) FindAll(ctx context.Context, filter *entity.ProductFilter) ([]*entity.Product, error) {
	// Build query with optional filters
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, name, price, description, category, seller_id,
		       average_rating, created_at, updated_at
		FROM products
		WHERE deleted_at IS NULL
	`)

	args := buildFilterClause(&queryBuilder, filter)

	queryBuilder.WriteString(" ORDER BY created_at DESC")

	if filter != nil && filter.PerPage > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d",
			filter.PerPage, utils.CalculateOffset(filter.Page, filter.PerPage)))
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to list products", zap.Error(err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var product entity.Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Description,
			&product.Category,
			&product.SellerID,
			&product.AverageRating,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.log.Debug("Products found", zap.Int("count", len(products)))

	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, price = $3, description = $4, category = $5,
		    average_rating = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Price,
		product.Description,
		product.Category,
		product.AverageRating,
		product.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", product.ID.String()),
		)
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found or already deleted", product.ID.String())
	}

	return nil
}

func (r *productRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete product tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE products SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		r.log.Error("Failed to delete product",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", id.String())
	}

	// Cascade: no cart may keep a line for a product that no longer exists
	if _, err := tx.Exec(ctx,
		`DELETE FROM cart_items WHERE product_id = $1`, id); err != nil {
		r.log.Error("Failed to cascade cart cleanup",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("failed to cascade cart cleanup: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete product tx: %w", err)
	}

	r.log.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

func (r *productRepository) UpsertRating(ctx context.Context, rating *entity.Rating) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin rating tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO product_ratings (id, product_id, user_id, score, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id, user_id)
		DO UPDATE SET score = EXCLUDED.score
	`

	if _, err := tx.Exec(ctx, query,
		rating.ID,
		rating.ProductID,
		rating.UserID,
		rating.Score,
		rating.CreatedAt,
	); err != nil {
		r.log.Error("Failed to upsert rating",
			zap.Error(err),
			zap.String("product_id", rating.ProductID.String()),
			zap.String("user_id", rating.UserID.String()),
		)
		return fmt.Errorf("failed to save rating: %w", err)
	}

	// Recompute the denormalized average in the same transaction
	recompute := `
		UPDATE products
		SET average_rating = COALESCE(
			(SELECT ROUND(AVG(score)::numeric, 2) FROM product_ratings WHERE product_id = $1), 0)
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, recompute, rating.ProductID); err != nil {
		r.log.Error("Failed to recompute average rating",
			zap.Error(err),
			zap.String("product_id", rating.ProductID.String()),
		)
		return fmt.Errorf("failed to recompute rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit rating tx: %w", err)
	}

	return nil
}

func (r *productRepository) HasPurchased(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM orders o
			JOIN order_items oi ON oi.order_id = o.id
			WHERE o.user_id = $1 AND oi.product_id = $2
		)
	`

	var purchased bool
	err := r.db.QueryRow(ctx, query, userID, productID).Scan(&purchased)
	if err != nil {
		r.log.Error("Failed to check purchase",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("product_id", productID.String()),
		)
		return false, fmt.Errorf("failed to check purchase: %w", err)
	}

	return purchased, nil
}

func (r *productRepository) Count(ctx context.Context, filter *entity.ProductFilter) (int64, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT COUNT(*) FROM products WHERE deleted_at IS NULL`)

	args := buildFilterClause(&queryBuilder, filter)

	var total int64
	if err := r.db.QueryRow(ctx, queryBuilder.String(), args...).Scan(&total); err != nil {
		r.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return total, nil
}
