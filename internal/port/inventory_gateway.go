package port

import (
	"context"

	"github.com/rl1809/ops-console/internal/core/domain"
)

type InventoryGateway interface {
	// GetInventoryBySKU looks up a single stock record
	GetInventoryBySKU(ctx context.Context, sku string) (domain.InventoryRecord, error)

	// CreateInventory registers stock for a product; uniqueness is enforced by the backend only
	CreateInventory(ctx context.Context, input domain.CreateInventoryInput) (domain.Ack, error)
}
