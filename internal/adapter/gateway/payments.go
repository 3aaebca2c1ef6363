package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/rl1809/ops-console/internal/core/domain"
)

const paymentsPath = "/api/v1/payments"

func (c *Client) GetPayment(ctx context.Context, orderID string) (domain.Payment, error) {
	orderID = strings.TrimSpace(orderID)
	return execute(ctx, c, call{
		domain:    "payments",
		operation: "get_by_order_id",
		method:    http.MethodGet,
		path:      paymentsPath,
		query:     url.Values{"order_id": {orderID}},
		fallback:  "not found",
		check:     nonEmpty("order_id", orderID),
	}, decodeRecord[domain.Payment])
}

// Pay returns the payment as the processor left it, which may be failed.
func (c *Client) Pay(ctx context.Context, input domain.PaymentInput) (domain.Payment, error) {
	return execute(ctx, c, call{
		domain:    "payments",
		operation: "pay",
		method:    http.MethodPost,
		path:      paymentsPath,
		body:      input,
		fallback:  "error processing payment",
		check:     validInput(input),
	}, decodeRecord[domain.Payment])
}
