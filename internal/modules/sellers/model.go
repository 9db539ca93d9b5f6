package sellers

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"medisupply.com/portal/internal/modules/customers"
)

// Vendor is a sales representative. The vendor service returns institutions
// either as names or as {"name": ...} objects; both decode to names.
type Vendor struct {
	VendorID     string   `json:"vendor_id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Institutions []string `json:"institutions"`
	CreatedAt    string   `json:"created_at,omitempty"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
}

func (v *Vendor) UnmarshalJSON(b []byte) error {
	type plain Vendor
	var p struct {
		plain
		Institutions json.RawMessage `json:"institutions"`
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*v = Vendor(p.plain)
	v.Institutions = nil
	gjson.ParseBytes(p.Institutions).ForEach(func(_, inst gjson.Result) bool {
		name := inst.String()
		if inst.IsObject() {
			name = inst.Get("name").String()
		}
		if name != "" {
			v.Institutions = append(v.Institutions, name)
		}
		return true
	})
	return nil
}

type RegisterSellerRequest struct {
	Name         string                          `json:"name"`
	Email        string                          `json:"email"`
	Institutions []customers.InstitutionalClient `json:"institutions"`
}

type RegisterSellerResponse struct {
	Message string `json:"mssg"`
	Vendor  Vendor `json:"vendor"`
}

// SellerReport is one vendor's progress against its sales plan.
type SellerReport struct {
	VendorID        string          `json:"vendor_id"`
	OrderedProducts int             `json:"ordered_products"`
	CustomersServed int             `json:"customers_served"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	TotalUnitsSold  int             `json:"total_units_sold"`
	TargetUnits     int             `json:"target_units"`
	TargetValue     decimal.Decimal `json:"target_value"`
	RemainingToGoal decimal.Decimal `json:"remaining_to_goal"`
	SalesPercentage float64         `json:"sales_percentage"`
	SoldProducts    []SoldProduct   `json:"sold_products"`
}

type SoldProduct struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// GoalReached reports whether the vendor met its value target.
func (r SellerReport) GoalReached() bool {
	return !r.RemainingToGoal.IsPositive()
}
