package view

import "medisupply.com/portal/internal/modules/orders"

type OrdersPage struct {
	Query    string
	Searched bool
	Orders   []orders.Order
}

type OrderDetailPage struct {
	Order     orders.Order
	CanCancel bool
}

type DeliveriesPage struct {
	Orders []orders.Order
}
