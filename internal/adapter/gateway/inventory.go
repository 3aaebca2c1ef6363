package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/rl1809/ops-console/internal/core/domain"
)

const (
	productsPath        = "/api/v1/products/"
	inventoryCreatePath = "/api/v1/inventory/create"
)

// GetInventoryBySKU goes through the gateway's product route, which it maps
// onto the inventory service's SKU lookup.
func (c *Client) GetInventoryBySKU(ctx context.Context, sku string) (domain.InventoryRecord, error) {
	sku = strings.TrimSpace(sku)
	return execute(ctx, c, call{
		domain:    "inventory",
		operation: "get_by_sku",
		method:    http.MethodGet,
		path:      productsPath + url.PathEscape(sku),
		fallback:  "not found or error",
		check:     nonEmpty("sku", sku),
	}, decodeRecord[domain.InventoryRecord])
}

func (c *Client) CreateInventory(ctx context.Context, input domain.CreateInventoryInput) (domain.Ack, error) {
	return execute(ctx, c, call{
		domain:    "inventory",
		operation: "create",
		method:    http.MethodPost,
		path:      inventoryCreatePath,
		body:      input,
		fallback:  "error creating inventory",
		check:     validInput(input),
	}, decodeAck)
}
