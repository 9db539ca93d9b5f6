package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"medisupply.com/portal/internal/modules/products"
)

// Item is one cart line. Lines are identified by SKU and warehouse.
type Item struct {
	Product  products.Product `json:"product"`
	Quantity int              `json:"quantity"`
	Subtotal decimal.Decimal  `json:"subtotal"`
}

func (it Item) matches(sku, warehouse string) bool {
	return it.Product.SKU == sku && it.Product.Warehouse == warehouse
}

func lineTotal(p products.Product, qty int) decimal.Decimal {
	return p.UnitValue.Mul(decimal.NewFromInt(int64(qty)))
}

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrNotInCart       = errors.New("product not in cart")
)

// StockError reports a quantity above the available stock. InCart is the
// quantity already in the cart for the same line.
type StockError struct {
	SKU    string
	Stock  int
	InCart int
}

func (e *StockError) Error() string {
	if e.InCart > 0 {
		return fmt.Sprintf("only %d more units of %s can be added", e.Remaining(), e.SKU)
	}
	return fmt.Sprintf("only %d units of %s available", e.Stock, e.SKU)
}

// Remaining is how many more units fit in the cart.
func (e *StockError) Remaining() int {
	if n := e.Stock - e.InCart; n > 0 {
		return n
	}
	return 0
}
