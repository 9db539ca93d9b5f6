package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/http/middleware"
	"medisupply.com/portal/internal/http/render"
	"medisupply.com/portal/internal/modules/cart"
	"medisupply.com/portal/internal/modules/products"
	"medisupply.com/portal/internal/shared/apperr"
	"medisupply.com/portal/pkg/view"
	"medisupply.com/portal/templates/pages"
)

// CatalogHandlers serves the order composition page and its live search.
type CatalogHandlers struct {
	products *products.Service
	latest   *products.LatestSearch
	carts    *cart.Service
}

func NewCatalogHandlers(ps *products.Service, latest *products.LatestSearch, carts *cart.Service) *CatalogHandlers {
	return &CatalogHandlers{products: ps, latest: latest, carts: carts}
}

// Catalog lists every product, or the search results for q.
func (h *CatalogHandlers) Catalog(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	render.Component(c, http.StatusOK, pages.Catalog(render.NewPage(c, "orders.catalog.title"), view.CatalogPage{
		Query:    q,
		Products: h.products.SearchProducts(c.Request.Context(), q),
	}))
}

// Search answers the catalog's per-keystroke requests. When a newer search
// from the same session has started, this reply is dropped with 204.
func (h *CatalogHandlers) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	results, current := h.latest.Do(c.Request.Context(), middleware.SessionID(c), q)
	if !current {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": q, "products": results})
}

func (h *CatalogHandlers) Detail(c *gin.Context) {
	ctx := c.Request.Context()
	p := h.products.GetProductBySKU(ctx, c.Param("sku"))
	if p == nil {
		middleware.Fail(c, apperr.NotFoundErr(middleware.T(c, "orders.catalog.productNotFound")))
		return
	}
	inCart := 0
	if it, ok := h.carts.Get(ctx, middleware.SessionID(c), p.SKU, p.Warehouse); ok {
		inCart = it.Quantity
	}
	render.Component(c, http.StatusOK, pages.Product(render.NewPage(c, "orders.catalog.title"), view.ProductPage{Product: *p, InCart: inCart}))
}
