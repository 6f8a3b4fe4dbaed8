package domain

import "time"

// List groups list items for a single user.
type List struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListItem places an item on a list with a quantity and completion flag.
// Item is the referenced item when it was loaded with the entry.
type ListItem struct {
	ID        string    `json:"id"`
	Quantity  int       `json:"quantity"`
	Completed bool      `json:"completed"`
	ListID    string    `json:"listId"`
	ItemID    string    `json:"itemId"`
	Item      *Item     `json:"item,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListItemInput describes a new list entry.
type ListItemInput struct {
	ListID    string
	ItemID    string
	Quantity  int
	Completed bool
}

// ListItemPatch carries optional list entry changes.
type ListItemPatch struct {
	ListID    *string
	ItemID    *string
	Quantity  *int
	Completed *bool
}
