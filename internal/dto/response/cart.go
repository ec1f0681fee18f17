package response

import "storefront/internal/data/entity"

type CartItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// CartResponse always carries a non-nil item list so an untouched cart
// renders as empty, not null.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total float64            `json:"total"`
}

// CartToResponse prices lines at the live catalog price at read time.
func CartToResponse(lines []*entity.CartLine) CartResponse {
	resp := CartResponse{
		Items: make([]CartItemResponse, 0, len(lines)),
	}

	for _, line := range lines {
		subtotal := line.Price * float64(line.Quantity)
		resp.Items = append(resp.Items, CartItemResponse{
			ProductID: line.ProductID.String(),
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
		})
		resp.Total += subtotal
	}

	return resp
}
