package response

import (
	"time"

	"storefront/internal/data/entity"
)

type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Description   string    `json:"description"`
	Category      *string   `json:"category,omitempty"`
	SellerID      string    `json:"seller_id"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
}

func ProductToResponse(product *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID.String(),
		Name:          product.Name,
		Price:         product.Price,
		Description:   product.Description,
		Category:      product.Category,
		SellerID:      product.SellerID.String(),
		AverageRating: product.AverageRating,
		CreatedAt:     product.CreatedAt,
	}
}

func ProductsToResponse(products []*entity.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, product := range products {
		responses[i] = ProductToResponse(product)
	}
	return responses
}
