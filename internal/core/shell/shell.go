// Package shell switches between the console panels and renders whichever
// one is visible.
package shell

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rl1809/ops-console/internal/core/domain"
	"github.com/rl1809/ops-console/internal/core/panel"
)

type Panel string

const (
	PanelOrders    Panel = "orders"
	PanelInventory Panel = "inventory"
	PanelPayments  Panel = "payments"
)

// Panels lists the tabs in display order.
var Panels = []Panel{PanelOrders, PanelInventory, PanelPayments}

func ParsePanel(s string) (Panel, error) {
	for _, p := range Panels {
		if string(p) == s {
			return p, nil
		}
	}
	return "", domain.NewValidationError("shell.select", "unknown panel %q", s)
}

type Tab struct {
	Panel  Panel `json:"panel"`
	Active bool  `json:"active"`
}

// Screen is one rendering of the console: the tab strip and the visible panel.
type Screen struct {
	Active    Panel                `json:"active"`
	Tabs      []Tab                `json:"tabs"`
	Orders    *panel.OrdersView    `json:"orders,omitempty"`
	Inventory *panel.InventoryView `json:"inventory,omitempty"`
	Payments  *panel.PaymentsView  `json:"payments,omitempty"`
}

type Shell struct {
	Orders    *panel.OrdersController
	Inventory *panel.InventoryController
	Payments  *panel.PaymentsController

	log logrus.FieldLogger

	mu     sync.Mutex
	active Panel
}

func New(orders *panel.OrdersController, inventory *panel.InventoryController, payments *panel.PaymentsController, log logrus.FieldLogger) *Shell {
	return &Shell{
		Orders:    orders,
		Inventory: inventory,
		Payments:  payments,
		log:       log.WithField("component", "shell"),
		active:    PanelOrders,
	}
}

func (s *Shell) Active() Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Mount loads the initial panel. Only the orders panel fetches on entry.
func (s *Shell) Mount(ctx context.Context) error {
	if s.Active() == PanelOrders {
		return s.Orders.Refresh(ctx)
	}
	return nil
}

// Select makes p the visible panel. The panel being left loses its draft.
// Entering orders re-lists them; the returned error is that refresh's.
// Selecting the panel already shown does nothing.
func (s *Shell) Select(ctx context.Context, p Panel) error {
	if _, err := ParsePanel(string(p)); err != nil {
		return err
	}

	s.mu.Lock()
	leaving := s.active
	if leaving == p {
		s.mu.Unlock()
		return nil
	}
	s.active = p
	s.mu.Unlock()

	s.resetDraft(leaving)
	s.log.WithFields(logrus.Fields{"from": leaving, "to": p}).Debug("panel selected")

	if p == PanelOrders {
		return s.Orders.Refresh(ctx)
	}
	return nil
}

func (s *Shell) resetDraft(p Panel) {
	switch p {
	case PanelOrders:
		s.Orders.ResetDraft()
	case PanelInventory:
		s.Inventory.ResetDraft()
	case PanelPayments:
		s.Payments.ResetDraft()
	}
}

func (s *Shell) Render() Screen {
	active := s.Active()

	screen := Screen{Active: active, Tabs: make([]Tab, 0, len(Panels))}
	for _, p := range Panels {
		screen.Tabs = append(screen.Tabs, Tab{Panel: p, Active: p == active})
	}

	switch active {
	case PanelOrders:
		v := s.Orders.View()
		screen.Orders = &v
	case PanelInventory:
		v := s.Inventory.View()
		screen.Inventory = &v
	case PanelPayments:
		v := s.Payments.View()
		screen.Payments = &v
	}
	return screen
}
