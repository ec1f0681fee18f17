package entity

import "github.com/google/uuid"

type Cart struct {
	BaseNoDelete
	UserID uuid.UUID `db:"user_id"`
}

type CartItem struct {
	CartID    uuid.UUID `db:"cart_id"`
	ProductID uuid.UUID `db:"product_id"`
	Quantity  int       `db:"quantity"`
}

// CartLine is a cart item joined with its live catalog record.
// Price here always reflects the current catalog price, not a snapshot.
type CartLine struct {
	ProductID uuid.UUID
	Name      string
	Price     float64
	Quantity  int
}
