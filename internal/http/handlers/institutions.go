package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/http/flash"
	"medisupply.com/portal/internal/http/middleware"
	"medisupply.com/portal/internal/http/render"
	"medisupply.com/portal/internal/http/validation"
	"medisupply.com/portal/internal/modules/customers"
	"medisupply.com/portal/internal/modules/sellers"
	"medisupply.com/portal/internal/shared/apperr"
	"medisupply.com/portal/internal/shared/countries"
	"medisupply.com/portal/pkg/view"
	"medisupply.com/portal/templates/pages"
)

type InstitutionHandlers struct {
	customers *customers.Service
	sellers   *sellers.Service
	flash     *flash.Codec
	forms     *validation.Translator
}

func NewInstitutionHandlers(cs *customers.Service, ss *sellers.Service, flashCodec *flash.Codec, forms *validation.Translator) *InstitutionHandlers {
	return &InstitutionHandlers{customers: cs, sellers: ss, flash: flashCodec, forms: forms}
}

func (h *InstitutionHandlers) List(c *gin.Context) {
	render.Component(c, http.StatusOK, pages.Institutions(render.NewPage(c, "institutions.title"), view.InstitutionsPage{
		TitleKey: "institutions.title",
		EmptyKey: "institutions.empty",
		Clients:  h.customers.GetAll(c.Request.Context()),
		CanAdd:   true,
	}))
}

// MyClients lists the institutions assigned to the signed-in vendor.
func (h *InstitutionHandlers) MyClients(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	render.Component(c, http.StatusOK, pages.Institutions(render.NewPage(c, "institutions.myClientsTitle"), view.InstitutionsPage{
		TitleKey: "institutions.myClientsTitle",
		EmptyKey: "institutions.myClientsEmpty",
		Clients:  h.sellers.GetMyClients(c.Request.Context(), u.ID),
	}))
}

func (h *InstitutionHandlers) New(c *gin.Context) {
	h.renderForm(c, http.StatusOK, customers.CreateRequest{}, nil)
}

func (h *InstitutionHandlers) Create(c *gin.Context) {
	var in customers.CreateRequest
	if err := c.ShouldBind(&in); err != nil {
		h.renderForm(c, http.StatusBadRequest, in, h.forms.FromBindError(err, &in, middleware.Lang(c)))
		return
	}
	if !countries.IsCareLevel(in.Level) {
		h.renderForm(c, http.StatusBadRequest, in, map[string]string{"level": middleware.T(c, "errors.invalidForm")})
		return
	}

	if _, err := h.customers.CreateInstitutionalClient(c.Request.Context(), in); err != nil {
		h.renderForm(c, apperr.HTTPStatus(err), in, fieldsOf(c, err, "institutions.createFailed"))
		return
	}
	render.RedirectWithFlash(c, h.flash, "/institutions", view.FlashSuccess, "institutions.created", "name", in.Name)
}

func (h *InstitutionHandlers) renderForm(c *gin.Context, status int, form customers.CreateRequest, errs map[string]string) {
	render.Component(c, status, pages.InstitutionNew(render.NewPage(c, "institutions.new").WithErrors(errs), view.InstitutionFormPage{
		Form:      form,
		Countries: countries.LatinAmerica,
		Levels:    countries.CareLevels,
	}))
}
