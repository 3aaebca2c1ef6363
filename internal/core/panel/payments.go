package panel

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rl1809/ops-console/internal/core/domain"
	"github.com/rl1809/ops-console/internal/port"
)

type PaymentsView struct {
	Status
	LookupOrderID string       `json:"lookup_order_id"`
	Payment       *PaymentRow  `json:"payment,omitempty"`
	Draft         PaymentDraft `json:"draft"`
}

type PaymentRow struct {
	OrderID       string               `json:"order_id"`
	Amount        int64                `json:"amount"`
	AmountDisplay string               `json:"amount_display"`
	Status        domain.PaymentStatus `json:"status"`
	Settled       bool                 `json:"settled"`
	TransactionID string               `json:"transaction_id,omitempty"`
}

type PaymentsController struct {
	gateway port.PaymentGateway
	log     logrus.FieldLogger

	mu sync.Mutex
	tracker
	orderID string
	payment *domain.Payment
	draft   PaymentDraft
}

func NewPaymentsController(gateway port.PaymentGateway, log logrus.FieldLogger) *PaymentsController {
	return &PaymentsController{
		gateway: gateway,
		log:     log.WithField("component", "panel.payments"),
		draft:   DefaultPaymentDraft(),
	}
}

// Lookup shows the payment recorded against orderID. Any failure clears the
// displayed payment.
func (c *PaymentsController) Lookup(ctx context.Context, orderID string) (domain.Payment, error) {
	c.mu.Lock()
	c.notice = ""
	c.mu.Unlock()

	return c.lookup(ctx, orderID)
}

func (c *PaymentsController) lookup(ctx context.Context, orderID string) (domain.Payment, error) {
	orderID = strings.TrimSpace(orderID)

	c.mu.Lock()
	c.orderID = orderID
	if orderID == "" {
		err := domain.NewValidationError("payments.get_by_order_id", "order_id is required")
		c.reject(err)
		c.mu.Unlock()
		return domain.Payment{}, err
	}
	ticket := c.begin()
	c.mu.Unlock()

	p, err := c.gateway.GetPayment(ctx, orderID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.current(ticket) {
		c.log.WithFields(logrus.Fields{"ticket": ticket, "order_id": orderID}).Debug("dropping superseded payment lookup")
		return p, err
	}
	if err != nil {
		c.payment = nil
		c.fail(err)
		return domain.Payment{}, err
	}
	c.payment = &p
	c.succeed()
	return p, nil
}

// Submit pays for the draft's order, then points the lookup at that order and
// re-checks it so the view shows what the payment service recorded.
func (c *PaymentsController) Submit(ctx context.Context) (domain.Payment, error) {
	c.mu.Lock()
	input, err := c.draft.Parse()
	if err != nil {
		c.reject(err)
		c.mu.Unlock()
		return domain.Payment{}, err
	}
	c.notice = ""
	ticket := c.begin()
	c.mu.Unlock()

	p, err := c.gateway.Pay(ctx, input)

	c.mu.Lock()
	stale := !c.current(ticket)
	switch {
	case stale:
		c.log.WithField("ticket", ticket).Debug("payment resolved after a newer action")
	case err != nil:
		c.fail(err)
	default:
		c.notice = "payment " + string(p.Status) + " for order " + input.OrderID
		c.succeed()
	}
	c.mu.Unlock()

	if err != nil {
		return domain.Payment{}, err
	}

	c.log.WithFields(logrus.Fields{
		"order_id": input.OrderID,
		"amount":   input.Amount,
		"status":   p.Status,
	}).Info("payment submitted")

	_, _ = c.lookup(ctx, input.OrderID)
	return p, nil
}

func (c *PaymentsController) Draft() PaymentDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *PaymentsController) SetDraft(d PaymentDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
}

func (c *PaymentsController) ResetDraft() {
	c.SetDraft(DefaultPaymentDraft())
}

func (c *PaymentsController) View() PaymentsView {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := PaymentsView{Status: c.status(), LookupOrderID: c.orderID, Draft: c.draft}
	if p := c.payment; p != nil {
		v.Payment = &PaymentRow{
			OrderID:       p.OrderID,
			Amount:        p.Amount,
			AmountDisplay: domain.FormatCents(p.Amount),
			Status:        p.Status,
			Settled:       p.Status.Settled(),
			TransactionID: p.TransactionID,
		}
	}
	return v
}
