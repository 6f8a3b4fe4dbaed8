package dto

// CreateItemRequest payload.
type CreateItemRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	QuantityUnits *string `json:"quantityUnits" validate:"omitempty,max=50"`
}

// UpdateItemRequest payload; absent fields are left unchanged.
type UpdateItemRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	QuantityUnits *string `json:"quantityUnits" validate:"omitempty,max=50"`
}

// CreateListRequest payload.
type CreateListRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// UpdateListRequest payload.
type UpdateListRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
}

// CreateListItemRequest payload.
type CreateListItemRequest struct {
	ListID    string `json:"listId" validate:"required,uuid"`
	ItemID    string `json:"itemId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
	Completed bool   `json:"completed"`
}

// UpdateListItemRequest payload.
type UpdateListItemRequest struct {
	ListID    *string `json:"listId" validate:"omitempty,uuid"`
	ItemID    *string `json:"itemId" validate:"omitempty,uuid"`
	Quantity  *int    `json:"quantity" validate:"omitempty,gte=0"`
	Completed *bool   `json:"completed"`
}
