package request

type ProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description" validate:"required"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=100"`
}

type ProductUpdateRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=100"`
}

type RateProductRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}
