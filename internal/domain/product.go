package domain

import (
	"time"
)

// Product represents a sellable item in the catalog.
type Product struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	Discount     float64   `json:"discount"`
	SpecialPrice float64   `json:"special_price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ComputeSpecialPrice returns the discounted price for the given base price
// and percentage discount.
func ComputeSpecialPrice(price, discount float64) float64 {
	return price - price*discount/100
}
