package domain

type InventoryRecord struct {
	ProductID int64  `json:"product_id"`
	SKU       string `json:"sku"`
	Quantity  int64  `json:"quantity"`
}

type CreateInventoryInput struct {
	ProductID int64  `json:"product_id" validate:"min=0"`
	SKU       string `json:"sku" validate:"required,notblank"`
	Quantity  int64  `json:"quantity" validate:"min=0"`
}

// Ack acknowledges a write whose response carries no typed payload.
type Ack struct {
	Message string
}
