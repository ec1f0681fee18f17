package entity

import "github.com/google/uuid"

type Product struct {
	Base
	Name          string    `db:"name"`
	Price         float64   `db:"price"`
	Description   string    `db:"description"`
	Category      *string   `db:"category"`
	SellerID      uuid.UUID `db:"seller_id"`
	AverageRating float64   `db:"average_rating"`
}

// ProductFilter narrows catalog listings. Zero values mean "no filter".
type ProductFilter struct {
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Category string
	Page     int
	PerPage  int
}

// Rating is one user's score for a product. A user rates a product at most once.
type Rating struct {
	BaseSimple
	ProductID uuid.UUID `db:"product_id"`
	UserID    uuid.UUID `db:"user_id"`
	Score     int       `db:"score"`
}
