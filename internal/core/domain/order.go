package domain

import (
	"bytes"
	"encoding/json"
)

type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "pending"
	OrderStatusCreated           OrderStatus = "created"
	OrderStatusInventoryReserved OrderStatus = "inventory_reserved"
	OrderStatusPaid              OrderStatus = "paid"
	OrderStatusCompleted         OrderStatus = "completed"
	OrderStatusCancelled         OrderStatus = "cancelled"
	OrderStatusFailed            OrderStatus = "failed"
)

// ID is an entity identifier the backends emit either as a JSON number
// (database key) or as a string (business key).
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

type OrderItem struct {
	ProductID string `json:"product_id" validate:"required,notblank"`
	Quantity  int64  `json:"quantity" validate:"min=1"`
	Price     int64  `json:"price" validate:"min=0"`
}

type Order struct {
	ID          ID          `json:"id"`
	OrderID     string      `json:"order_id,omitempty"`
	UserID      int64       `json:"user_id"`
	Items       []OrderItem `json:"items,omitempty"`
	TotalAmount int64       `json:"total_amount"`
	Status      OrderStatus `json:"status"`
}

// Key returns the identifier an operator would use to refer to the order.
func (o Order) Key() string {
	if o.OrderID != "" {
		return o.OrderID
	}
	return o.ID.String()
}

type CreateOrderInput struct {
	UserID int64       `json:"user_id" validate:"min=1"`
	Items  []OrderItem `json:"items" validate:"required,min=1,dive"`
}

// Total is the amount the backend is expected to charge for the input, in cents.
func (in CreateOrderInput) Total() int64 {
	var total int64
	for _, it := range in.Items {
		total += it.Quantity * it.Price
	}
	return total
}

// CreatedOrder is the payload of a successful create call.
type CreatedOrder struct {
	OrderID ID `json:"order_id"`
	ID      ID `json:"id"`
}

func (c CreatedOrder) Key() string {
	if c.OrderID != "" {
		return c.OrderID.String()
	}
	return c.ID.String()
}
