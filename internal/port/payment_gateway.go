package port

import (
	"context"

	"github.com/rl1809/ops-console/internal/core/domain"
)

type PaymentGateway interface {
	// GetPayment returns the payment recorded for an order
	GetPayment(ctx context.Context, orderID string) (domain.Payment, error)

	// Pay processes a payment and returns it with its post-processing status
	Pay(ctx context.Context, input domain.PaymentInput) (domain.Payment, error)
}
