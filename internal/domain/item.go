package domain

import "time"

// Item is a reusable product owned by a single user.
type Item struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	QuantityUnits *string   `json:"quantityUnits,omitempty"`
	UserID        string    `json:"userId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ItemPatch carries optional item changes.
type ItemPatch struct {
	Name          *string
	QuantityUnits *string
}
