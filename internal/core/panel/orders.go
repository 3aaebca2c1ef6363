package panel

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rl1809/ops-console/internal/core/domain"
	"github.com/rl1809/ops-console/internal/port"
)

type OrderRow struct {
	ID          string             `json:"id"`
	UserID      int64              `json:"user_id"`
	TotalAmount int64              `json:"total_amount"`
	Amount      string             `json:"amount"`
	Status      domain.OrderStatus `json:"status"`
}

type OrdersView struct {
	Status
	Orders []OrderRow  `json:"orders"`
	Draft  OrderDraft  `json:"draft"`
	Last   *CreatedRef `json:"last_created,omitempty"`
}

// CreatedRef remembers the most recent successful create so its server
// total can be checked against what was submitted.
type CreatedRef struct {
	ID            string `json:"id"`
	ExpectedTotal int64  `json:"expected_total"`
}

type OrdersController struct {
	gateway port.OrderGateway
	log     logrus.FieldLogger

	mu sync.Mutex
	tracker
	orders []domain.Order
	draft  OrderDraft
	last   *CreatedRef
}

func NewOrdersController(gateway port.OrderGateway, log logrus.FieldLogger) *OrdersController {
	return &OrdersController{
		gateway: gateway,
		log:     log.WithField("component", "panel.orders"),
		orders:  []domain.Order{},
		draft:   DefaultOrderDraft(),
	}
}

// Refresh re-lists orders. A failed refresh keeps the previous list on display.
func (c *OrdersController) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.notice = ""
	c.mu.Unlock()

	return c.refresh(ctx)
}

func (c *OrdersController) refresh(ctx context.Context) error {
	c.mu.Lock()
	ticket := c.begin()
	c.mu.Unlock()

	orders, err := c.gateway.ListOrders(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.current(ticket) {
		c.log.WithField("ticket", ticket).Debug("dropping superseded order list")
		return err
	}
	if err != nil {
		c.fail(err)
		return err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.orders = orders
	c.succeed()
	return nil
}

// Submit creates an order from the draft and, on success, re-lists so the
// panel shows the server's copy. It returns the new order id.
func (c *OrdersController) Submit(ctx context.Context) (string, error) {
	c.mu.Lock()
	input, err := c.draft.Parse()
	if err != nil {
		c.reject(err)
		c.mu.Unlock()
		return "", err
	}
	c.notice = ""
	ticket := c.begin()
	c.mu.Unlock()

	id, err := c.gateway.CreateOrder(ctx, input)

	c.mu.Lock()
	stale := !c.current(ticket)
	switch {
	case stale:
		c.log.WithField("ticket", ticket).Debug("create resolved after a newer action")
	case err != nil:
		c.fail(err)
	default:
		c.notice = "order created: " + id
		c.last = &CreatedRef{ID: id, ExpectedTotal: input.Total()}
		c.succeed()
	}
	c.mu.Unlock()

	if err != nil {
		return "", err
	}

	c.log.WithFields(logrus.Fields{"order_id": id, "total": input.Total()}).Info("order created")
	// The order exists server-side whether or not this resolution was current.
	_ = c.refresh(ctx)
	return id, nil
}

func (c *OrdersController) Draft() OrderDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *OrdersController) SetDraft(d OrderDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
}

// ResetDraft discards whatever was typed.
func (c *OrdersController) ResetDraft() {
	c.SetDraft(DefaultOrderDraft())
}

func (c *OrdersController) View() OrdersView {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := make([]OrderRow, 0, len(c.orders))
	for _, o := range c.orders {
		rows = append(rows, OrderRow{
			ID:          o.Key(),
			UserID:      o.UserID,
			TotalAmount: o.TotalAmount,
			Amount:      domain.FormatCents(o.TotalAmount),
			Status:      o.Status,
		})
	}

	v := OrdersView{Status: c.status(), Orders: rows, Draft: c.draft}
	if c.last != nil {
		last := *c.last
		v.Last = &last
	}
	return v
}
