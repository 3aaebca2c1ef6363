package port

import (
	"context"

	"github.com/rl1809/ops-console/internal/core/domain"
)

type OrderGateway interface {
	// ListOrders returns every order the backend knows about; never nil on success
	ListOrders(ctx context.Context) ([]domain.Order, error)

	// CreateOrder submits a new order and returns its identifier
	CreateOrder(ctx context.Context, input domain.CreateOrderInput) (string, error)
}
