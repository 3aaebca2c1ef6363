package panel

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rl1809/ops-console/internal/core/domain"
	"github.com/rl1809/ops-console/internal/port"
)

type InventoryView struct {
	Status
	LookupSKU string         `json:"lookup_sku"`
	Record    *InventoryRow  `json:"record,omitempty"`
	Draft     InventoryDraft `json:"draft"`
}

type InventoryRow struct {
	ProductID int64  `json:"product_id"`
	SKU       string `json:"sku"`
	Quantity  int64  `json:"quantity"`
}

type InventoryController struct {
	gateway port.InventoryGateway
	log     logrus.FieldLogger

	mu sync.Mutex
	tracker
	sku    string
	record *domain.InventoryRecord
	draft  InventoryDraft
}

func NewInventoryController(gateway port.InventoryGateway, log logrus.FieldLogger) *InventoryController {
	return &InventoryController{
		gateway: gateway,
		log:     log.WithField("component", "panel.inventory"),
		draft:   DefaultInventoryDraft(),
	}
}

// Lookup shows the stock record for sku. Any failure clears the record so a
// stale result is never shown under a new key.
func (c *InventoryController) Lookup(ctx context.Context, sku string) (domain.InventoryRecord, error) {
	sku = strings.TrimSpace(sku)

	c.mu.Lock()
	c.sku = sku
	if sku == "" {
		err := domain.NewValidationError("inventory.get_by_sku", "sku is required")
		c.reject(err)
		c.mu.Unlock()
		return domain.InventoryRecord{}, err
	}
	c.notice = ""
	ticket := c.begin()
	c.mu.Unlock()

	rec, err := c.gateway.GetInventoryBySKU(ctx, sku)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.current(ticket) {
		c.log.WithFields(logrus.Fields{"ticket": ticket, "sku": sku}).Debug("dropping superseded inventory lookup")
		return rec, err
	}
	if err != nil {
		c.record = nil
		c.fail(err)
		return domain.InventoryRecord{}, err
	}
	c.record = &rec
	c.succeed()
	return rec, nil
}

// Submit adds stock from the draft. The displayed record is not re-read.
func (c *InventoryController) Submit(ctx context.Context) (domain.Ack, error) {
	c.mu.Lock()
	input, err := c.draft.Parse()
	if err != nil {
		c.reject(err)
		c.mu.Unlock()
		return domain.Ack{}, err
	}
	c.notice = ""
	ticket := c.begin()
	c.mu.Unlock()

	ack, err := c.gateway.CreateInventory(ctx, input)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.current(ticket) {
		c.log.WithField("ticket", ticket).Debug("inventory create resolved after a newer action")
		return ack, err
	}
	if err != nil {
		c.fail(err)
		return domain.Ack{}, err
	}
	c.notice = ack.Message
	c.succeed()
	c.log.WithFields(logrus.Fields{"sku": input.SKU, "quantity": input.Quantity}).Info("inventory added")
	return ack, nil
}

func (c *InventoryController) Draft() InventoryDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *InventoryController) SetDraft(d InventoryDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
}

func (c *InventoryController) ResetDraft() {
	c.SetDraft(DefaultInventoryDraft())
}

func (c *InventoryController) View() InventoryView {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := InventoryView{Status: c.status(), LookupSKU: c.sku, Draft: c.draft}
	if c.record != nil {
		v.Record = &InventoryRow{ProductID: c.record.ProductID, SKU: c.record.SKU, Quantity: c.record.Quantity}
	}
	return v
}
