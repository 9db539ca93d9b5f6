package reports

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// Filters narrows the seller performance report. Empty fields are omitted.
type Filters struct {
	VendorID  string `form:"vendorId"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Region    string `form:"region"`
	ProductID string `form:"productId"`
}

// Query encodes the non-empty filters as query parameters.
func (f Filters) Query() url.Values {
	q := url.Values{}
	for k, v := range map[string]string{
		"vendorId":  f.VendorID,
		"startDate": f.StartDate,
		"endDate":   f.EndDate,
		"region":    f.Region,
		"productId": f.ProductID,
	} {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}

type FilterOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FilterOptions struct {
	Vendors  []FilterOption `json:"vendors"`
	Regions  []FilterOption `json:"regions"`
	Products []FilterOption `json:"products"`
}

type TopProduct struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	UnitsSold   int    `json:"unitsSold"`
}

type SalesByMonth struct {
	Month  string          `json:"month"`
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
}

// SellerReport is the aggregated performance of one or all vendors.
type SellerReport struct {
	VendorID        string          `json:"vendorId"`
	VendorName      string          `json:"vendorName"`
	TotalSales      decimal.Decimal `json:"totalSales"`
	GoalCompletion  float64         `json:"goalCompletion"`
	CustomersServed int             `json:"customersServed"`
	OrdersGenerated int             `json:"ordersGenerated"`
	SalesGrowth     float64         `json:"salesGrowth"`
	GoalGrowth      float64         `json:"goalGrowth"`
	CustomersGrowth float64         `json:"customersGrowth"`
	OrdersGrowth    float64         `json:"ordersGrowth"`
	TopProducts     []TopProduct    `json:"topProducts"`
	SalesByMonth    []SalesByMonth  `json:"salesByMonth"`
}

type SellerDetailRow struct {
	VendorID     string   `json:"vendorId"`
	VendorName   string   `json:"vendorName"`
	Email        string   `json:"email"`
	Institutions []string `json:"institutions"`
}

// Export is a downloadable report document.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}
