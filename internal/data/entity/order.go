package entity

import "github.com/google/uuid"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

type Order struct {
	BaseSimple
	UserID uuid.UUID   `db:"user_id"`
	Status OrderStatus `db:"status"`
	Total  float64     `db:"total"`
}

// OrderItem holds the product name and price captured at order time.
// Later catalog edits never touch these rows.
type OrderItem struct {
	OrderID   uuid.UUID `db:"order_id"`
	ProductID uuid.UUID `db:"product_id"`
	SellerID  uuid.UUID `db:"seller_id"`
	Name      string    `db:"name"`
	Price     float64   `db:"price"`
	Quantity  int       `db:"quantity"`
}
