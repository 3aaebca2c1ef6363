package domain

import "strings"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSuccess   PaymentStatus = "success"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Settled reports whether the processor accepted the payment. The payment
// service reports acceptance as "success" or "completed", in either case.
func (s PaymentStatus) Settled() bool {
	switch PaymentStatus(strings.ToLower(string(s))) {
	case PaymentStatusSuccess, PaymentStatusCompleted:
		return true
	default:
		return false
	}
}

type Payment struct {
	OrderID       string        `json:"order_id"`
	Amount        int64         `json:"amount"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transaction_id,omitempty"`
}

type PaymentInput struct {
	OrderID string `json:"order_id" validate:"required,notblank"`
	Amount  int64  `json:"amount" validate:"min=0"`
}
