package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/http/flash"
	"medisupply.com/portal/internal/http/middleware"
	"medisupply.com/portal/internal/http/render"
	"medisupply.com/portal/internal/http/validation"
	"medisupply.com/portal/internal/modules/suppliers"
	"medisupply.com/portal/internal/shared/apperr"
	"medisupply.com/portal/internal/shared/countries"
	"medisupply.com/portal/pkg/view"
	"medisupply.com/portal/templates/pages"
)

type SupplierHandlers struct {
	suppliers *suppliers.Service
	flash     *flash.Codec
	forms     *validation.Translator
}

func NewSupplierHandlers(sups *suppliers.Service, flashCodec *flash.Codec, forms *validation.Translator) *SupplierHandlers {
	return &SupplierHandlers{suppliers: sups, flash: flashCodec, forms: forms}
}

func (h *SupplierHandlers) New(c *gin.Context) {
	h.renderForm(c, http.StatusOK, suppliers.CreateRequest{}, nil)
}

func (h *SupplierHandlers) Create(c *gin.Context) {
	var in suppliers.CreateRequest
	if err := c.ShouldBind(&in); err != nil {
		h.renderForm(c, http.StatusBadRequest, in, h.forms.FromBindError(err, &in, middleware.Lang(c)))
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Address = strings.TrimSpace(in.Address)

	if _, err := h.suppliers.CreateSupplier(c.Request.Context(), in); err != nil {
		h.renderForm(c, apperr.HTTPStatus(err), in, fieldsOf(c, err, "suppliers.createFailed"))
		return
	}
	render.RedirectWithFlash(c, h.flash, "/suppliers/new", view.FlashSuccess, "suppliers.created", "name", in.Name)
}

func (h *SupplierHandlers) renderForm(c *gin.Context, status int, form suppliers.CreateRequest, errs map[string]string) {
	render.Component(c, status, pages.SupplierNew(render.NewPage(c, "suppliers.title").WithErrors(errs), view.SupplierFormPage{
		Form:      form,
		Countries: countries.LatinAmerica,
	}))
}
