package domain

import (
	"time"
)

// Address represents a shipping address belonging to a user.
type Address struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Street       string    `json:"street"`
	BuildingName string    `json:"building_name"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Country      string    `json:"country"`
	Pincode      string    `json:"pincode"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
