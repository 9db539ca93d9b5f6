package view

import (
	"medisupply.com/portal/internal/i18n"
	"medisupply.com/portal/internal/modules/customers"
	"medisupply.com/portal/internal/modules/products"
	"medisupply.com/portal/internal/modules/reports"
	"medisupply.com/portal/internal/modules/salesplans"
	"medisupply.com/portal/internal/modules/sellers"
	"medisupply.com/portal/internal/modules/suppliers"
	"medisupply.com/portal/internal/shared/countries"
)

// InstitutionsPage lists institutions; TitleKey and EmptyKey switch it
// between the full directory and a vendor's own clients.
type InstitutionsPage struct {
	TitleKey string
	EmptyKey string
	Clients  []customers.InstitutionalClient
	CanAdd   bool
}

type InstitutionFormPage struct {
	Form      customers.CreateRequest
	Countries []countries.Country
	Levels    []countries.CareLevel
}

type SellerForm struct {
	Name         string   `form:"name" binding:"required,min=3,max=100"`
	Email        string   `form:"email" binding:"required,email"`
	Institutions []string `form:"institutions"`
}

type SellerFormPage struct {
	Form         SellerForm
	Institutions []customers.InstitutionalClient
	Selected     map[string]bool
}

type SupplierFormPage struct {
	Form      suppliers.CreateRequest
	Countries []countries.Country
}

// SalesPlanRow is one product line of the plan form.
type SalesPlanRow struct {
	ProductID   string
	TargetUnits string
	TargetValue string
}

type SalesPlanFormPage struct {
	VendorID string
	Period   string
	Region   string
	Rows     []SalesPlanRow
	Vendors  []sellers.Vendor
	Products []products.Product
	Regions  []salesplans.Option
	Periods  []salesplans.Option
}

// BulkPage is the CSV upload form for products or suppliers.
type BulkPage struct {
	TitleKey string
	Action   string
	Result   map[string]any
}

type ReportsPage struct {
	Filters        reports.Filters
	Options        reports.FilterOptions
	Report         *reports.SellerReport
	Details        []reports.SellerDetailRow
	ExportPDFURL   string
	ExportExcelURL string
}

type InventoryPage struct {
	Filters  products.InventoryFilters
	Products []products.Product
}

type SettingsPage struct {
	Current        string
	DefaultCurrent string
	Languages      []i18n.Language
}
