package salesplans

import "github.com/shopspring/decimal"

type ProductTarget struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	TargetUnits int             `json:"target_units"`
	TargetValue decimal.Decimal `json:"target_value"`
}

type CreateRequest struct {
	VendorID string          `json:"vendor_id"`
	Period   string          `json:"period"`
	Region   string          `json:"region"`
	Products []ProductTarget `json:"products"`
}

type SalesPlan struct {
	PlanID    string          `json:"plan_id"`
	VendorID  string          `json:"vendor_id"`
	Period    string          `json:"period"`
	Region    string          `json:"region"`
	Products  []ProductTarget `json:"products"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

type CreateResponse struct {
	Message string    `json:"message"`
	Plan    SalesPlan `json:"plan"`
}

type Option struct {
	Value string
	Label string
}

// Regions and Periods are the choices offered by the plan form.
var (
	Regions = []Option{
		{"North America", "salesPlan.regions.northAmerica"},
		{"South America", "salesPlan.regions.southAmerica"},
		{"Central America", "salesPlan.regions.centralAmerica"},
		{"Europe", "salesPlan.regions.europe"},
		{"Asia", "salesPlan.regions.asia"},
		{"Africa", "salesPlan.regions.africa"},
		{"Oceania", "salesPlan.regions.oceania"},
	}
	Periods = []Option{
		{"Q1-2025", "Q1 2025"},
		{"Q2-2025", "Q2 2025"},
		{"Q3-2025", "Q3 2025"},
		{"Q4-2025", "Q4 2025"},
		{"Q1-2026", "Q1 2026"},
		{"Q2-2026", "Q2 2026"},
	}
)
