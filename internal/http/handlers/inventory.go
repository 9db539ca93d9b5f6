package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/http/render"
	"medisupply.com/portal/internal/modules/products"
	"medisupply.com/portal/pkg/view"
	"medisupply.com/portal/templates/pages"
)

type InventoryHandlers struct {
	products *products.Service
}

func NewInventoryHandlers(ps *products.Service) *InventoryHandlers {
	return &InventoryHandlers{products: ps}
}

func (h *InventoryHandlers) Index(c *gin.Context) {
	var f products.InventoryFilters
	_ = c.ShouldBindQuery(&f)
	render.Component(c, http.StatusOK, pages.Inventory(render.NewPage(c, "inventory.title"), view.InventoryPage{
		Filters:  f,
		Products: h.products.Search(c.Request.Context(), f),
	}))
}
