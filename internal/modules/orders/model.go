package orders

import "github.com/shopspring/decimal"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
	StatusReturned  Status = "RETURNED"
)

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

type OrderProduct struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Amount      int              `json:"amount"`
	IDWarehouse string           `json:"id_warehouse"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
}

type Order struct {
	ID            string         `json:"id"`
	Priority      Priority       `json:"priority"`
	Products      []OrderProduct `json:"products"`
	OrderStatus   Status         `json:"order_status"`
	Country       string         `json:"country"`
	City          string         `json:"city"`
	Address       string         `json:"address"`
	DateEstimated string         `json:"date_estimated"`
	IDClient      string         `json:"id_client"`
	IDVendor      string         `json:"id_vendor"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
}

// Units is the number of items across all order lines.
func (o Order) Units() int {
	n := 0
	for _, p := range o.Products {
		n += p.Amount
	}
	return n
}

type OrderRequest struct {
	Priority      Priority       `json:"priority"`
	Products      []OrderProduct `json:"products"`
	OrderStatus   Status         `json:"order_status"`
	Country       string         `json:"country"`
	City          string         `json:"city"`
	Address       string         `json:"address"`
	DateEstimated string         `json:"date_estimated"`
	IDClient      string         `json:"id_client"`
	IDVendor      string         `json:"id_vendor"`
}

type OrderResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Order   *Order `json:"order,omitempty"`
}
