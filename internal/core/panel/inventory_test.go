package panel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/ops-console/internal/core/domain"
)

func stockBySKU(records map[string]domain.InventoryRecord) func(context.Context, string) (domain.InventoryRecord, error) {
	return func(_ context.Context, sku string) (domain.InventoryRecord, error) {
		if rec, ok := records[sku]; ok {
			return rec, nil
		}
		return domain.InventoryRecord{}, &domain.Error{Kind: domain.KindTransport, Op: "inventory.get_by_sku", Status: 500, Msg: "unexpected status 500", Fallback: "not found or error"}
	}
}

func TestInventoryController_Lookup(t *testing.T) {
	gw := &mockInventoryGateway{getFn: stockBySKU(map[string]domain.InventoryRecord{
		"SKU-001": {ProductID: 101, SKU: "SKU-001", Quantity: 100},
	})}
	c := NewInventoryController(gw, quietLogger())

	rec, err := c.Lookup(context.Background(), " SKU-001 ")
	require.NoError(t, err)
	assert.Equal(t, int64(100), rec.Quantity)

	v := c.View()
	assert.Equal(t, StateSuccess, v.State)
	assert.Equal(t, "SKU-001", v.LookupSKU)
	require.NotNil(t, v.Record)
	assert.Equal(t, InventoryRow{ProductID: 101, SKU: "SKU-001", Quantity: 100}, *v.Record)
}

func TestInventoryController_FailedLookupClearsRecord(t *testing.T) {
	gw := &mockInventoryGateway{getFn: stockBySKU(map[string]domain.InventoryRecord{
		"SKU-001": {ProductID: 101, SKU: "SKU-001", Quantity: 100},
	})}
	c := NewInventoryController(gw, quietLogger())

	_, err := c.Lookup(context.Background(), "SKU-001")
	require.NoError(t, err)

	_, err = c.Lookup(context.Background(), "SKU-404")
	require.Error(t, err)

	v := c.View()
	assert.Equal(t, StateFailed, v.State)
	assert.Nil(t, v.Record)
	assert.Equal(t, "SKU-404", v.LookupSKU)
	assert.Equal(t, "unexpected status 500", v.Error)
}

func TestInventoryController_EmptySKUIsRejected(t *testing.T) {
	gw := &mockInventoryGateway{getFn: stockBySKU(nil)}
	c := NewInventoryController(gw, quietLogger())

	_, err := c.Lookup(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 0, gw.calls())
	assert.Equal(t, StateIdle, c.View().State)
	assert.Equal(t, "sku is required", c.View().Error)
}

func TestInventoryController_Submit(t *testing.T) {
	gw := &mockInventoryGateway{getFn: stockBySKU(nil)}
	c := NewInventoryController(gw, quietLogger())

	ack, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Inventory added successfully", ack.Message)

	require.Len(t, gw.creates, 1)
	assert.Equal(t, domain.CreateInventoryInput{ProductID: 101, SKU: "SKU-001", Quantity: 100}, gw.creates[0])
	assert.Empty(t, gw.lookups, "create does not re-read the record")

	v := c.View()
	assert.Equal(t, StateSuccess, v.State)
	assert.Equal(t, "Inventory added successfully", v.Notice)
}

func TestInventoryController_SubmitRejectsBadDraft(t *testing.T) {
	gw := &mockInventoryGateway{getFn: stockBySKU(nil)}
	c := NewInventoryController(gw, quietLogger())
	c.SetDraft(InventoryDraft{ProductID: "x", SKU: "SKU-1", Quantity: "1"})

	_, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 0, gw.calls())
}

func TestInventoryController_SubmitFailure(t *testing.T) {
	gw := &mockInventoryGateway{
		getFn: stockBySKU(nil),
		createFn: func(context.Context, domain.CreateInventoryInput) (domain.Ack, error) {
			return domain.Ack{}, &domain.Error{Kind: domain.KindDomain, Op: "inventory.create", Status: 400, Msg: "duplicate sku"}
		},
	}
	c := NewInventoryController(gw, quietLogger())

	_, err := c.Submit(context.Background())
	require.Error(t, err)
	v := c.View()
	assert.Equal(t, StateFailed, v.State)
	assert.Equal(t, "duplicate sku", v.Error)
	assert.Equal(t, domain.KindDomain, v.ErrorKind)
}
