package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/http/flash"
	"medisupply.com/portal/internal/http/middleware"
	"medisupply.com/portal/internal/http/render"
	"medisupply.com/portal/internal/http/validation"
	"medisupply.com/portal/internal/modules/customers"
	"medisupply.com/portal/internal/modules/sellers"
	"medisupply.com/portal/internal/shared/apperr"
	"medisupply.com/portal/pkg/view"
	"medisupply.com/portal/templates/pages"
)

type SellerHandlers struct {
	sellers   *sellers.Service
	customers *customers.Service
	flash     *flash.Codec
	forms     *validation.Translator
}

func NewSellerHandlers(ss *sellers.Service, cs *customers.Service, flashCodec *flash.Codec, forms *validation.Translator) *SellerHandlers {
	return &SellerHandlers{sellers: ss, customers: cs, flash: flashCodec, forms: forms}
}

func (h *SellerHandlers) New(c *gin.Context) {
	h.renderForm(c, http.StatusOK, view.SellerForm{}, nil)
}

// Create registers a vendor together with the institutions ticked on the
// form. Unknown institution ids are ignored.
func (h *SellerHandlers) Create(c *gin.Context) {
	var in view.SellerForm
	if err := c.ShouldBind(&in); err != nil {
		h.renderForm(c, http.StatusBadRequest, in, h.forms.FromBindError(err, &in, middleware.Lang(c)))
		return
	}

	picked := make(map[string]bool, len(in.Institutions))
	for _, id := range in.Institutions {
		picked[id] = true
	}
	req := sellers.RegisterSellerRequest{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Institutions: []customers.InstitutionalClient{},
	}
	for _, cl := range h.customers.GetAll(c.Request.Context()) {
		if picked[cl.ClientID] {
			req.Institutions = append(req.Institutions, cl)
		}
	}

	if _, err := h.sellers.RegisterSeller(c.Request.Context(), req); err != nil {
		h.renderForm(c, apperr.HTTPStatus(err), in, fieldsOf(c, err, "sellers.createFailed"))
		return
	}
	render.RedirectWithFlash(c, h.flash, "/sellers/new", view.FlashSuccess, "sellers.created", "name", req.Name)
}

// Report shows the signed-in vendor's progress against its sales plan.
func (h *SellerHandlers) Report(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	render.Component(c, http.StatusOK, pages.VendorReport(render.NewPage(c, "sellers.report.title"), view.VendorReportPage{
		Report: h.sellers.GetVendorReport(c.Request.Context(), u.ID),
	}))
}

func (h *SellerHandlers) renderForm(c *gin.Context, status int, form view.SellerForm, errs map[string]string) {
	selected := make(map[string]bool, len(form.Institutions))
	for _, id := range form.Institutions {
		selected[id] = true
	}
	render.Component(c, status, pages.SellerNew(render.NewPage(c, "sellers.title").WithErrors(errs), view.SellerFormPage{
		Form:         form,
		Institutions: h.customers.GetAll(c.Request.Context()),
		Selected:     selected,
	}))
}
