package view

import (
	"medisupply.com/portal/internal/modules/customers"
	"medisupply.com/portal/internal/modules/geocoding"
	"medisupply.com/portal/internal/modules/sellers"
	"medisupply.com/portal/internal/modules/visits"
)

type VisitsPage struct {
	Date   string
	Result visits.SearchResult
}

type VisitForm struct {
	ClientID      string `form:"client_id" binding:"required"`
	ContactName   string `form:"contact_name" binding:"required,min=3,max=100"`
	ContactPhone  string `form:"contact_phone" binding:"required,min=7,max=15"`
	VisitDatetime string `form:"visit_datetime" binding:"required"`
	Observations  string `form:"observations" binding:"max=1000"`
}

// VisitFormPage offers the media input only when MediaUploads is set for the
// build target.
type VisitFormPage struct {
	Form         VisitForm
	Clients      []customers.InstitutionalClient
	MediaUploads bool
}

type VendorReportPage struct {
	Report *sellers.SellerReport
}

type RoutesPage struct {
	ClientID string
	Clients  []customers.InstitutionalClient
	Stops    []geocoding.Stop
}
