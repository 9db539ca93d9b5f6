package handlers

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"medisupply.com/portal/internal/modules/cart"
	"medisupply.com/portal/internal/modules/orders"
	"medisupply.com/portal/pkg/view"
)

func TestCartErrorFlash(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind view.FlashKind
		key  string
		args []string
	}{
		{"over stock", &cart.StockError{SKU: "A", Stock: 4}, view.FlashWarning, "orders.cart.toast.stock", []string{"count", "4"}},
		{"over remaining", &cart.StockError{SKU: "A", Stock: 4, InCart: 3}, view.FlashWarning, "orders.cart.toast.stockMore", []string{"count", "1"}},
		{"wrapped stock", fmt.Errorf("add: %w", &cart.StockError{SKU: "A", Stock: 2}), view.FlashWarning, "orders.cart.toast.stock", []string{"count", "2"}},
		{"bad quantity", cart.ErrInvalidQuantity, view.FlashWarning, "orders.cart.toast.invalidQuantity", nil},
		{"anything else", errors.New("redis down"), view.FlashError, "orders.cart.toast.error", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, key, args := cartErrorFlash(tt.err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestToday(t *testing.T) {
	at := time.Date(2026, 10, 15, 23, 59, 0, 0, time.FixedZone("COT", -5*3600))
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), today(at))
}

func TestDeliveryAddress(t *testing.T) {
	o := orders.Order{Address: " Calle 5 # 10-20 ", City: "Cali", Country: "CO"}
	assert.Equal(t, "Calle 5 # 10-20, Cali, CO", deliveryAddress(o))
	assert.Equal(t, "Cali", deliveryAddress(orders.Order{City: "Cali"}))
}

func TestNormalizeReturnTo(t *testing.T) {
	assert.Equal(t, "/cart", normalizeReturnTo("/cart"))
	assert.Empty(t, normalizeReturnTo("//evil.example"))
	assert.Empty(t, normalizeReturnTo("https://evil.example/cart"))
}

func TestAtoiOr(t *testing.T) {
	assert.Equal(t, 3, atoiOr(" 3 ", 1))
	assert.Equal(t, 1, atoiOr("x", 1))
	assert.Equal(t, 1, atoiOr("", 1))
}
