package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"medisupply.com/portal/internal/http/flash"
	"medisupply.com/portal/internal/http/middleware"
	"medisupply.com/portal/internal/http/render"
	"medisupply.com/portal/internal/modules/products"
	"medisupply.com/portal/internal/modules/salesplans"
	"medisupply.com/portal/internal/modules/sellers"
	"medisupply.com/portal/internal/shared/apperr"
	"medisupply.com/portal/pkg/view"
	"medisupply.com/portal/templates/pages"
)

// planRows is how many product lines an empty plan form offers.
const planRows = 5

type SalesPlanHandlers struct {
	plans    *salesplans.Service
	sellers  *sellers.Service
	products *products.Service
	flash    *flash.Codec
}

func NewSalesPlanHandlers(plans *salesplans.Service, ss *sellers.Service, ps *products.Service, flashCodec *flash.Codec) *SalesPlanHandlers {
	return &SalesPlanHandlers{plans: plans, sellers: ss, products: ps, flash: flashCodec}
}

func (h *SalesPlanHandlers) New(c *gin.Context) {
	h.renderForm(c, http.StatusOK, view.SalesPlanFormPage{
		Period: salesplans.Periods[0].Value,
		Region: salesplans.Regions[0].Value,
	}, nil)
}

// Create reads the parallel product_id/target_units/target_value columns.
// Rows without a product are skipped; a row with a product must carry
// positive targets.
func (h *SalesPlanHandlers) Create(c *gin.Context) {
	ctx := c.Request.Context()
	form := view.SalesPlanFormPage{
		VendorID: strings.TrimSpace(c.PostForm("vendor_id")),
		Period:   c.PostForm("period"),
		Region:   c.PostForm("region"),
	}
	ids := c.PostFormArray("product_id")
	units := c.PostFormArray("target_units")
	values := c.PostFormArray("target_value")

	errs := map[string]string{}
	invalid := middleware.T(c, "errors.invalidForm")
	if form.VendorID == "" {
		errs["vendor_id"] = invalid
	}
	if !hasOption(salesplans.Periods, form.Period) {
		errs["period"] = invalid
	}
	if !hasOption(salesplans.Regions, form.Region) {
		errs["region"] = invalid
	}

	names := map[string]string{}
	for _, p := range h.products.GetProducts(ctx) {
		names[p.SKU] = p.Name
	}
	req := salesplans.CreateRequest{VendorID: form.VendorID, Period: form.Period, Region: form.Region}
	for i, id := range ids {
		row := view.SalesPlanRow{ProductID: strings.TrimSpace(id), TargetUnits: at(units, i), TargetValue: at(values, i)}
		form.Rows = append(form.Rows, row)
		if row.ProductID == "" {
			continue
		}
		value, err := decimal.NewFromString(strings.TrimSpace(row.TargetValue))
		n := atoiOr(row.TargetUnits, 0)
		if err != nil || n <= 0 || !value.IsPositive() {
			errs["products"] = middleware.T(c, "salesPlan.noProducts")
			continue
		}
		req.Products = append(req.Products, salesplans.ProductTarget{
			ProductID:   row.ProductID,
			Name:        names[row.ProductID],
			TargetUnits: n,
			TargetValue: value,
		})
	}
	if len(errs) > 0 {
		h.renderForm(c, http.StatusBadRequest, form, errs)
		return
	}

	if _, err := h.plans.CreateSalesPlan(ctx, req); err != nil {
		if errors.Is(err, salesplans.ErrNoProducts) || apperr.IsKind(err, apperr.Invalid) {
			h.renderForm(c, http.StatusBadRequest, form, map[string]string{"products": middleware.T(c, "salesPlan.noProducts")})
			return
		}
		h.renderForm(c, apperr.HTTPStatus(err), form, fieldsOf(c, err, "salesPlan.createFailed"))
		return
	}
	render.RedirectWithFlash(c, h.flash, "/sales-plans/new", view.FlashSuccess, "salesPlan.created")
}

func (h *SalesPlanHandlers) renderForm(c *gin.Context, status int, page view.SalesPlanFormPage, errs map[string]string) {
	ctx := c.Request.Context()
	for len(page.Rows) < planRows {
		page.Rows = append(page.Rows, view.SalesPlanRow{})
	}
	page.Vendors = h.sellers.GetVendors(ctx)
	page.Products = h.products.GetProducts(ctx)
	page.Regions = salesplans.Regions
	page.Periods = salesplans.Periods
	render.Component(c, status, pages.SalesPlanNew(render.NewPage(c, "salesPlan.title").WithErrors(errs), page))
}

func hasOption(opts []salesplans.Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
