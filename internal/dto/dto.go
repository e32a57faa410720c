// Package dto holds the transfer shapes returned by the API and the pure
// mapping functions between them and the persisted entities. Mapping never
// touches storage: back-references (address owner, product category) are
// dropped on the way out.
package dto

import (
	"github.com/sbecom/storeapi/internal/domain"
)

// Address is the outward-facing shape of a user address.
type Address struct {
	ID           int64  `json:"addressId"`
	Street       string `json:"street"`
	BuildingName string `json:"buildingName"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	Pincode      string `json:"pincode"`
}

// Category is the outward-facing shape of a catalog category.
type Category struct {
	ID   int64  `json:"categoryId"`
	Name string `json:"categoryName"`
}

// Product is the outward-facing shape of a catalog product.
type Product struct {
	ID           int64   `json:"productId"`
	Name         string  `json:"productName"`
	Image        string  `json:"image"`
	Description  string  `json:"description"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Discount     float64 `json:"discount"`
	SpecialPrice float64 `json:"specialPrice"`
}

// FromAddress maps a persisted address to its transfer shape. The owner
// back-reference is not exposed.
func FromAddress(a *domain.Address) Address {
	return Address{
		ID:           a.ID,
		Street:       a.Street,
		BuildingName: a.BuildingName,
		City:         a.City,
		State:        a.State,
		Country:      a.Country,
		Pincode:      a.Pincode,
	}
}

// FromAddresses maps a slice of persisted addresses.
func FromAddresses(addresses []domain.Address) []Address {
	out := make([]Address, len(addresses))
	for i := range addresses {
		out[i] = FromAddress(&addresses[i])
	}
	return out
}

// FromCategory maps a persisted category to its transfer shape.
func FromCategory(c *domain.Category) Category {
	return Category{
		ID:   c.ID,
		Name: c.Name,
	}
}

// FromCategories maps a slice of persisted categories.
func FromCategories(categories []domain.Category) []Category {
	out := make([]Category, len(categories))
	for i := range categories {
		out[i] = FromCategory(&categories[i])
	}
	return out
}

// FromProduct maps a persisted product to its transfer shape. The category
// back-reference is not exposed.
func FromProduct(p *domain.Product) Product {
	return Product{
		ID:           p.ID,
		Name:         p.Name,
		Image:        p.Image,
		Description:  p.Description,
		Quantity:     p.Quantity,
		Price:        p.Price,
		Discount:     p.Discount,
		SpecialPrice: p.SpecialPrice,
	}
}

// FromProducts maps a slice of persisted products.
func FromProducts(products []domain.Product) []Product {
	out := make([]Product, len(products))
	for i := range products {
		out[i] = FromProduct(&products[i])
	}
	return out
}
