package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	List(ctx context.Context, filter *entity.ProductFilter) (*response.PaginatedResponse[response.ProductResponse], error)
	Create(ctx context.Context, sellerID uuid.UUID, req *request.ProductRequest) (*response.ProductResponse, error)
	Update(ctx context.Context, productID, callerID uuid.UUID, callerRole entity.UserRole, req *request.ProductUpdateRequest) (*response.ProductResponse, error)
	Delete(ctx context.Context, productID, callerID uuid.UUID, callerRole entity.UserRole) error
	Rate(ctx context.Context, productID, userID uuid.UUID, score int) (*response.ProductResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) List(ctx context.Context, filter *entity.ProductFilter) (*response.PaginatedResponse[response.ProductResponse], error) {
	if filter == nil {
		filter = &entity.ProductFilter{}
	}
	if filter.MinPrice != nil && *filter.MinPrice < 0 {
		return nil, fmt.Errorf("%w: min_price must not be negative", ErrValidation)
	}
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		return nil, fmt.Errorf("%w: max_price must not be negative", ErrValidation)
	}

	// Clamp paging to sane bounds
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 20
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}

	products, err := s.repo.Product.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list products", zap.Error(err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	total, err := s.repo.Product.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count products", zap.Error(err))
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	return response.NewPaginatedResponse(response.ProductsToResponse(products), filter.Page, filter.PerPage, total), nil
}

func (s *catalogService) Create(ctx context.Context, sellerID uuid.UUID, req *request.ProductRequest) (*response.ProductResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. Build entity
	now := time.Now()
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		SellerID:    sellerID,
	}

	// 3. Save
	if err := s.repo.Product.Create(ctx, product); err != nil {
		s.log.Error("Failed to create product", zap.Error(err), zap.String("seller_id", sellerID.String()))
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", sellerID.String()),
		zap.Float64("price", product.Price))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *catalogService) Update(ctx context.Context, productID, callerID uuid.UUID, callerRole entity.UserRole, req *request.ProductUpdateRequest) (*response.ProductResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. Find product
	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to find product", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %w", ErrNotFound)
	}

	// 3. Ownership check: owner or admin only
	if err := s.checkOwnership(product, callerID, callerRole); err != nil {
		return nil, err
	}

	// 4. Patch only fields present in the request
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = req.Category
	}
	product.UpdatedAt = time.Now()

	// 5. Save
	if err := s.repo.Product.Update(ctx, product); err != nil {
		s.log.Error("Failed to update product", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.log.Info("Product updated",
		zap.String("product_id", productID.String()),
		zap.String("caller_id", callerID.String()))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *catalogService) Delete(ctx context.Context, productID, callerID uuid.UUID, callerRole entity.UserRole) error {
	// 1. Find product
	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to find product", zap.Error(err), zap.String("product_id", productID.String()))
		return fmt.Errorf("failed to find product: %w", err)
	}
	if product == nil {
		return fmt.Errorf("product %w", ErrNotFound)
	}

	// 2. Ownership check
	if err := s.checkOwnership(product, callerID, callerRole); err != nil {
		return err
	}

	// 3. Delete with cart cascade
	if err := s.repo.Product.DeleteCascade(ctx, productID); err != nil {
		s.log.Error("Failed to delete product", zap.Error(err), zap.String("product_id", productID.String()))
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.log.Info("Product deleted",
		zap.String("product_id", productID.String()),
		zap.String("caller_id", callerID.String()))

	return nil
}

func (s *catalogService) Rate(ctx context.Context, productID, userID uuid.UUID, score int) (*response.ProductResponse, error) {
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	// 1. Find product
	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to find product", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %w", ErrNotFound)
	}

	// 2. Only buyers who ordered the product may rate it
	purchased, err := s.repo.Product.HasPurchased(ctx, userID, productID)
	if err != nil {
		s.log.Error("Failed to check purchase", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to check purchase: %w", err)
	}
	if !purchased {
		return nil, fmt.Errorf("you must purchase the product first: %w", ErrForbidden)
	}

	// 3. Upsert rating, repository recomputes the average
	rating := &entity.Rating{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ProductID: productID,
		UserID:    userID,
		Score:     score,
	}
	if err := s.repo.Product.UpsertRating(ctx, rating); err != nil {
		s.log.Error("Failed to save rating", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("failed to save rating: %w", err)
	}

	// 4. Re-read for the fresh average
	product, err = s.repo.Product.FindByID(ctx, productID)
	if err != nil || product == nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}

	s.log.Info("Product rated",
		zap.String("product_id", productID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("score", score))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

// checkOwnership allows the owning seller and any admin through.
func (s *catalogService) checkOwnership(product *entity.Product, callerID uuid.UUID, callerRole entity.UserRole) error {
	if callerRole == entity.RoleAdmin {
		return nil
	}
	if product.SellerID != callerID {
		s.log.Warn("Ownership check failed",
			zap.String("product_id", product.ID.String()),
			zap.String("caller_id", callerID.String()),
			zap.String("owner_id", product.SellerID.String()))
		return fmt.Errorf("you do not own this product: %w", ErrForbidden)
	}
	return nil
}
