package request

type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type SetCartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}
