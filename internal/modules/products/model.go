package products

import "github.com/shopspring/decimal"

type Product struct {
	SKU                 string            `json:"sku"`
	Name                string            `json:"name"`
	ProviderNIT         string            `json:"provider_nit"`
	ProductType         string            `json:"product_type"`
	StorageConditions   string            `json:"storage_conditions"`
	TemperatureRequired float64           `json:"temperature_required"`
	Batch               string            `json:"batch"`
	UnitValue           decimal.Decimal   `json:"unit_value"`
	Stock               int               `json:"stock"`
	ExpirationDate      string            `json:"expiration_date"`
	Status              string            `json:"status"`
	CreatedAt           string            `json:"created_at"`
	Warehouse           string            `json:"warehouse,omitempty"`
	WarehouseName       string            `json:"warehouse_name,omitempty"`
	Locations           []ProductLocation `json:"locations,omitempty"`
}

// ProductLocation is the stock of a product held in one city.
type ProductLocation struct {
	City     string `json:"city"`
	Country  string `json:"country"`
	Batch    string `json:"batch"`
	Priority int    `json:"priority"`
	Stock    int    `json:"stock"`
}

// InventoryFilters narrows the inventory listing. Empty fields are ignored.
type InventoryFilters struct {
	ProductName   string `form:"product_name"`
	Batch         string `form:"batch"`
	Status        string `form:"status"`
	WarehouseName string `form:"warehouse_name"`
}

func (f InventoryFilters) IsZero() bool {
	return f == InventoryFilters{}
}
