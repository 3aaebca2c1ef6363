package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CreateOrderInput(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateOrderInput
		wantMsg string
	}{
		{
			name:  "valid",
			input: CreateOrderInput{UserID: 1, Items: []OrderItem{{ProductID: "101", Quantity: 2, Price: 100}}},
		},
		{
			name:    "user id below one",
			input:   CreateOrderInput{UserID: 0, Items: []OrderItem{{ProductID: "101", Quantity: 1}}},
			wantMsg: "user_id must be at least 1",
		},
		{
			name:    "no items",
			input:   CreateOrderInput{UserID: 1},
			wantMsg: "items is required",
		},
		{
			name:    "empty items",
			input:   CreateOrderInput{UserID: 1, Items: []OrderItem{}},
			wantMsg: "items must contain at least 1 entry",
		},
		{
			name:    "zero quantity",
			input:   CreateOrderInput{UserID: 1, Items: []OrderItem{{ProductID: "101", Quantity: 0, Price: 100}}},
			wantMsg: "items[0].quantity must be at least 1",
		},
		{
			name:    "negative price",
			input:   CreateOrderInput{UserID: 1, Items: []OrderItem{{ProductID: "101", Quantity: 1, Price: -1}}},
			wantMsg: "items[0].price must be at least 0",
		},
		{
			name:    "missing product",
			input:   CreateOrderInput{UserID: 1, Items: []OrderItem{{Quantity: 1}}},
			wantMsg: "items[0].product_id is required",
		},
		{
			name:    "blank product",
			input:   CreateOrderInput{UserID: 1, Items: []OrderItem{{ProductID: "  ", Quantity: 1}}},
			wantMsg: "items[0].product_id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate("orders.create", tt.input)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Equal(t, tt.wantMsg, Message(err))
		})
	}
}

func TestValidate_PaymentAndInventoryInputs(t *testing.T) {
	assert.NoError(t, Validate("payments.pay", PaymentInput{OrderID: "abc", Amount: 0}))
	assert.Equal(t, "order_id is required", Message(Validate("payments.pay", PaymentInput{Amount: 5})))
	assert.Equal(t, "amount must be at least 0", Message(Validate("payments.pay", PaymentInput{OrderID: "abc", Amount: -5})))

	assert.NoError(t, Validate("inventory.create", CreateInventoryInput{ProductID: 101, SKU: "SKU-001", Quantity: 0}))
	assert.Equal(t, "sku is required", Message(Validate("inventory.create", CreateInventoryInput{ProductID: 101})))
	assert.Equal(t, "quantity must be at least 0", Message(Validate("inventory.create", CreateInventoryInput{SKU: "x", Quantity: -1})))

	assert.Equal(t, "sku is required", Message(Validate("inventory.create", CreateInventoryInput{ProductID: 101, SKU: " \t"})))
	assert.Equal(t, "order_id is required", Message(Validate("payments.pay", PaymentInput{OrderID: "   ", Amount: 5})))
}
