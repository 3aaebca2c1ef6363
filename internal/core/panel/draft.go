package panel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rl1809/ops-console/internal/core/domain"
)

// Drafts keep form fields exactly as typed. They are coerced into typed
// inputs only when submitted.

type OrderDraft struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  string `json:"quantity"`
	Price     string `json:"price"`
}

func DefaultOrderDraft() OrderDraft {
	return OrderDraft{UserID: "1", ProductID: "101", Quantity: "1", Price: "100"}
}

func (d OrderDraft) Parse() (domain.CreateOrderInput, error) {
	const op = "orders.create"

	userID, err := parseWhole(op, "user_id", d.UserID)
	if err != nil {
		return domain.CreateOrderInput{}, err
	}
	quantity, err := parseWhole(op, "quantity", d.Quantity)
	if err != nil {
		return domain.CreateOrderInput{}, err
	}
	price, err := parseWhole(op, "price", d.Price)
	if err != nil {
		return domain.CreateOrderInput{}, err
	}

	in := domain.CreateOrderInput{
		UserID: userID,
		Items: []domain.OrderItem{{
			ProductID: strings.TrimSpace(d.ProductID),
			Quantity:  quantity,
			Price:     price,
		}},
	}
	if err := domain.Validate(op, in); err != nil {
		return domain.CreateOrderInput{}, err
	}
	return in, nil
}

type InventoryDraft struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Quantity  string `json:"quantity"`
}

func DefaultInventoryDraft() InventoryDraft {
	return InventoryDraft{ProductID: "101", SKU: "SKU-001", Quantity: "100"}
}

func (d InventoryDraft) Parse() (domain.CreateInventoryInput, error) {
	const op = "inventory.create"

	productID, err := parseWhole(op, "product_id", d.ProductID)
	if err != nil {
		return domain.CreateInventoryInput{}, err
	}
	quantity, err := parseWhole(op, "quantity", d.Quantity)
	if err != nil {
		return domain.CreateInventoryInput{}, err
	}

	in := domain.CreateInventoryInput{ProductID: productID, SKU: strings.TrimSpace(d.SKU), Quantity: quantity}
	if err := domain.Validate(op, in); err != nil {
		return domain.CreateInventoryInput{}, err
	}
	return in, nil
}

type PaymentDraft struct {
	OrderID string `json:"order_id"`
	Amount  string `json:"amount"`
}

func DefaultPaymentDraft() PaymentDraft {
	return PaymentDraft{Amount: "1000"}
}

func (d PaymentDraft) Parse() (domain.PaymentInput, error) {
	const op = "payments.pay"

	amount, err := parseWhole(op, "amount", d.Amount)
	if err != nil {
		return domain.PaymentInput{}, err
	}

	in := domain.PaymentInput{OrderID: strings.TrimSpace(d.OrderID), Amount: amount}
	if err := domain.Validate(op, in); err != nil {
		return domain.PaymentInput{}, err
	}
	return in, nil
}

// parseWhole coerces a raw form field into an integer.
func parseWhole(op, field, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.NewValidationError(op, "%s is required", field)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &domain.Error{
			Kind: domain.KindValidation,
			Op:   op,
			Msg:  fmt.Sprintf("%s must be a whole number, got %q", field, raw),
			Err:  err,
		}
	}
	return v, nil
}
