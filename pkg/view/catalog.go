package view

import (
	"github.com/shopspring/decimal"

	"medisupply.com/portal/internal/modules/cart"
	"medisupply.com/portal/internal/modules/customers"
	"medisupply.com/portal/internal/modules/orders"
	"medisupply.com/portal/internal/modules/products"
	"medisupply.com/portal/internal/shared/countries"
)

type CatalogPage struct {
	Query    string
	Products []products.Product
}

type ProductPage struct {
	Product products.Product
	InCart  int
}

// CheckoutForm is the delivery form posted from the cart page.
type CheckoutForm struct {
	Country       string `form:"country" binding:"required,len=2"`
	City          string `form:"city" binding:"required,min=2,max=100"`
	Address       string `form:"address" binding:"required,min=10,max=200"`
	Priority      string `form:"priority" binding:"required,oneof=HIGH MEDIUM LOW"`
	DateEstimated string `form:"date_estimated" binding:"required"`
	ClientID      string `form:"client_id"`
}

type CartPage struct {
	Items       []cart.Item
	Total       decimal.Decimal
	Count       int
	Form        CheckoutForm
	NeedsClient bool
	Clients     []customers.InstitutionalClient
	Countries   []countries.Country
	Priorities  []orders.Priority
	MinDate     string
}

type ConfirmationPage struct {
	OrderID string
	Message string
}
