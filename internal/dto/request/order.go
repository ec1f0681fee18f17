package request

// CreateOrderRequest creates an order from the cart when ProductID is empty,
// or a single-product "buy now" order when it is set.
type CreateOrderRequest struct {
	ProductID *string `json:"product_id,omitempty" validate:"omitempty,uuid4"`
}
