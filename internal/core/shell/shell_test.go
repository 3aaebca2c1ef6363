package shell

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/ops-console/internal/core/domain"
	"github.com/rl1809/ops-console/internal/core/panel"
)

type stubOrders struct {
	mu    sync.Mutex
	lists int
}

func (s *stubOrders) ListOrders(context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	return []domain.Order{{ID: "1", TotalAmount: 200}}, nil
}

func (s *stubOrders) CreateOrder(context.Context, domain.CreateOrderInput) (string, error) {
	return "1", nil
}

func (s *stubOrders) listCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists
}

type stubInventory struct{}

func (stubInventory) GetInventoryBySKU(_ context.Context, sku string) (domain.InventoryRecord, error) {
	return domain.InventoryRecord{ProductID: 101, SKU: sku, Quantity: 5}, nil
}

func (stubInventory) CreateInventory(context.Context, domain.CreateInventoryInput) (domain.Ack, error) {
	return domain.Ack{Message: "ok"}, nil
}

type stubPayments struct{}

func (stubPayments) GetPayment(_ context.Context, orderID string) (domain.Payment, error) {
	return domain.Payment{OrderID: orderID, Amount: 1, Status: domain.PaymentStatusSuccess}, nil
}

func (stubPayments) Pay(_ context.Context, in domain.PaymentInput) (domain.Payment, error) {
	return domain.Payment{OrderID: in.OrderID, Amount: in.Amount, Status: domain.PaymentStatusSuccess}, nil
}

func newTestShell(t *testing.T) (*Shell, *stubOrders) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	orders := &stubOrders{}
	return New(
		panel.NewOrdersController(orders, log),
		panel.NewInventoryController(stubInventory{}, log),
		panel.NewPaymentsController(stubPayments{}, log),
		log,
	), orders
}

func TestShell_DefaultsToOrders(t *testing.T) {
	s, orders := newTestShell(t)

	screen := s.Render()
	assert.Equal(t, PanelOrders, screen.Active)
	require.NotNil(t, screen.Orders)
	assert.Nil(t, screen.Inventory)
	assert.Nil(t, screen.Payments)
	assert.Equal(t, []Tab{{PanelOrders, true}, {PanelInventory, false}, {PanelPayments, false}}, screen.Tabs)
	assert.Equal(t, 0, orders.listCount(), "rendering never fetches")

	require.NoError(t, s.Mount(context.Background()))
	assert.Equal(t, 1, orders.listCount())
}

func TestShell_SelectRendersOnlyVisiblePanel(t *testing.T) {
	s, _ := newTestShell(t)

	require.NoError(t, s.Select(context.Background(), PanelInventory))
	screen := s.Render()
	assert.Equal(t, PanelInventory, screen.Active)
	assert.Nil(t, screen.Orders)
	require.NotNil(t, screen.Inventory)
	assert.Nil(t, screen.Payments)
}

func TestShell_EnteringOrdersRefreshes(t *testing.T) {
	s, orders := newTestShell(t)

	require.NoError(t, s.Select(context.Background(), PanelPayments))
	assert.Equal(t, 0, orders.listCount())

	require.NoError(t, s.Select(context.Background(), PanelOrders))
	assert.Equal(t, 1, orders.listCount())
	require.Len(t, s.Render().Orders.Orders, 1)

	require.NoError(t, s.Select(context.Background(), PanelOrders))
	assert.Equal(t, 1, orders.listCount(), "re-selecting the visible panel is a no-op")
}

func TestShell_LeavingPanelDiscardsDraft(t *testing.T) {
	s, _ := newTestShell(t)

	require.NoError(t, s.Select(context.Background(), PanelInventory))
	s.Inventory.SetDraft(panel.InventoryDraft{ProductID: "5", SKU: "X", Quantity: "1"})

	require.NoError(t, s.Select(context.Background(), PanelPayments))
	assert.Equal(t, panel.DefaultInventoryDraft(), s.Inventory.Draft())

	s.Payments.SetDraft(panel.PaymentDraft{OrderID: "abc", Amount: "5"})
	require.NoError(t, s.Select(context.Background(), PanelInventory))
	assert.Equal(t, panel.DefaultPaymentDraft(), s.Payments.Draft())
}

func TestShell_UnknownPanel(t *testing.T) {
	s, _ := newTestShell(t)

	err := s.Select(context.Background(), Panel("reports"))
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, PanelOrders, s.Active())
}
