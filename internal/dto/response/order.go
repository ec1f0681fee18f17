package response

import (
	"time"

	"storefront/internal/data/entity"
)

type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	SellerID  string  `json:"seller_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type OrderResponse struct {
	ID        string              `json:"id"`
	Status    entity.OrderStatus  `json:"status"`
	Total     float64             `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []OrderItemResponse `json:"items"`
}

func OrderToResponse(order *entity.Order, items []*entity.OrderItem) OrderResponse {
	resp := OrderResponse{
		ID:        order.ID.String(),
		Status:    order.Status,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
		Items:     make([]OrderItemResponse, 0, len(items)),
	}

	for _, item := range items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID: item.ProductID.String(),
			SellerID:  item.SellerID.String(),
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return resp
}
