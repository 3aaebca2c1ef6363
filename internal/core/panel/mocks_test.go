package panel

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rl1809/ops-console/internal/core/domain"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Mock OrderGateway
type mockOrderGateway struct {
	mu      sync.Mutex
	lists   int
	creates int
	created []domain.CreateOrderInput

	listFn   func(ctx context.Context, call int) ([]domain.Order, error)
	createFn func(ctx context.Context, in domain.CreateOrderInput) (string, error)
}

func (m *mockOrderGateway) ListOrders(ctx context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	m.lists++
	call := m.lists
	m.mu.Unlock()

	if m.listFn == nil {
		return []domain.Order{}, nil
	}
	return m.listFn(ctx, call)
}

func (m *mockOrderGateway) CreateOrder(ctx context.Context, in domain.CreateOrderInput) (string, error) {
	m.mu.Lock()
	m.creates++
	m.created = append(m.created, in)
	m.mu.Unlock()

	if m.createFn == nil {
		return "order-1", nil
	}
	return m.createFn(ctx, in)
}

func (m *mockOrderGateway) counts() (lists, creates int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lists, m.creates
}

// Mock InventoryGateway
type mockInventoryGateway struct {
	mu      sync.Mutex
	lookups []string
	creates []domain.CreateInventoryInput

	getFn    func(ctx context.Context, sku string) (domain.InventoryRecord, error)
	createFn func(ctx context.Context, in domain.CreateInventoryInput) (domain.Ack, error)
}

func (m *mockInventoryGateway) GetInventoryBySKU(ctx context.Context, sku string) (domain.InventoryRecord, error) {
	m.mu.Lock()
	m.lookups = append(m.lookups, sku)
	m.mu.Unlock()
	return m.getFn(ctx, sku)
}

func (m *mockInventoryGateway) CreateInventory(ctx context.Context, in domain.CreateInventoryInput) (domain.Ack, error) {
	m.mu.Lock()
	m.creates = append(m.creates, in)
	m.mu.Unlock()

	if m.createFn == nil {
		return domain.Ack{Message: "Inventory added successfully"}, nil
	}
	return m.createFn(ctx, in)
}

func (m *mockInventoryGateway) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lookups) + len(m.creates)
}

// Mock PaymentGateway backed by a map, like the payment service.
type mockPaymentGateway struct {
	mu       sync.Mutex
	payments map[string]domain.Payment
	lookups  []string
	pays     int
	payErr   error
}

func newMockPaymentGateway() *mockPaymentGateway {
	return &mockPaymentGateway{payments: make(map[string]domain.Payment)}
}

func (m *mockPaymentGateway) GetPayment(ctx context.Context, orderID string) (domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lookups = append(m.lookups, orderID)
	p, ok := m.payments[orderID]
	if !ok {
		return domain.Payment{}, &domain.Error{Kind: domain.KindDomain, Op: "payments.get_by_order_id", Status: 404, Code: 40400, Type: "NOT_FOUND", Msg: "Payment not found"}
	}
	return p, nil
}

func (m *mockPaymentGateway) Pay(ctx context.Context, in domain.PaymentInput) (domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pays++
	if m.payErr != nil {
		return domain.Payment{}, m.payErr
	}
	p := domain.Payment{OrderID: in.OrderID, Amount: in.Amount, Status: domain.PaymentStatusCompleted, TransactionID: "tx-" + in.OrderID}
	m.payments[in.OrderID] = p
	return p, nil
}

func (m *mockPaymentGateway) lookupKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lookups...)
}
