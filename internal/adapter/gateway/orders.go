package gateway

import (
	"context"
	"net/http"

	"github.com/rl1809/ops-console/internal/core/domain"
)

const ordersPath = "/api/v1/orders"

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return execute(ctx, c, call{
		domain:    "orders",
		operation: "list",
		method:    http.MethodGet,
		path:      ordersPath,
		fallback:  "failed to fetch orders",
	}, decodeList[domain.Order])
}

// CreateOrder returns the business id of the new order.
func (c *Client) CreateOrder(ctx context.Context, input domain.CreateOrderInput) (string, error) {
	cl := call{
		domain:    "orders",
		operation: "create",
		method:    http.MethodPost,
		path:      ordersPath,
		body:      input,
		fallback:  "error creating order",
		check:     validInput(input),
	}
	created, err := execute(ctx, c, cl, decodeRecord[domain.CreatedOrder])
	if err != nil {
		return "", err
	}
	if created.Key() == "" {
		return "", malformed(cl.op(), cl.fallback, 0, errEmptyData)
	}
	return created.Key(), nil
}
