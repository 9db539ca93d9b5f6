package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/auth"
	"medisupply.com/portal/internal/http/flash"
	"medisupply.com/portal/internal/http/middleware"
	"medisupply.com/portal/internal/http/render"
	"medisupply.com/portal/internal/modules/orders"
	"medisupply.com/portal/internal/shared/apperr"
	"medisupply.com/portal/pkg/view"
	"medisupply.com/portal/templates/pages"
)

// OrderHandlers serves order search, detail, cancellation and the client's
// scheduled deliveries.
type OrderHandlers struct {
	orders *orders.Service
	flash  *flash.Codec
}

func NewOrderHandlers(svc *orders.Service, flashCodec *flash.Codec) *OrderHandlers {
	return &OrderHandlers{orders: svc, flash: flashCodec}
}

// List shows the orders visible to the user, or the single order whose id
// is q.
func (h *OrderHandlers) List(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	ctx := c.Request.Context()
	q := strings.TrimSpace(c.Query("q"))

	page := view.OrdersPage{Query: q, Searched: q != "", Orders: []orders.Order{}}
	if q == "" {
		page.Orders = h.listFor(c, u)
	} else if o := h.orders.GetOrderByID(ctx, q); o != nil && visibleTo(u, *o) {
		page.Orders = []orders.Order{*o}
	}
	render.Component(c, http.StatusOK, pages.Orders(render.NewPage(c, "orders.title"), page))
}

// listFor fetches a client's own orders directly; vendors get the full list
// narrowed to the orders they placed.
func (h *OrderHandlers) listFor(c *gin.Context, u *auth.User) []orders.Order {
	ctx := c.Request.Context()
	if u.Role == auth.RoleClient {
		return h.orders.GetOrdersByCustomerID(ctx, u.ID)
	}
	out := []orders.Order{}
	for _, o := range h.orders.GetOrders(ctx) {
		if visibleTo(u, o) {
			out = append(out, o)
		}
	}
	return out
}

func (h *OrderHandlers) Detail(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	o := h.orders.GetOrderByID(c.Request.Context(), c.Param("id"))
	if o == nil || !visibleTo(u, *o) {
		middleware.Fail(c, apperr.NotFoundErr(middleware.T(c, "orders.notFound")))
		return
	}
	render.Component(c, http.StatusOK, pages.OrderDetail(render.NewPage(c, "orders.title"), view.OrderDetailPage{
		Order:     *o,
		CanCancel: auth.HasRole(u, auth.RoleClient, auth.RoleAdmin) && orders.CanTransition(o.OrderStatus, orders.StatusCancelled),
	}))
}

func (h *OrderHandlers) Cancel(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	ctx := c.Request.Context()
	id := c.Param("id")
	back := "/orders/" + id

	o := h.orders.GetOrderByID(ctx, id)
	if o == nil || !visibleTo(u, *o) {
		middleware.Fail(c, apperr.NotFoundErr(middleware.T(c, "orders.notFound")))
		return
	}
	if !orders.CanTransition(o.OrderStatus, orders.StatusCancelled) {
		render.RedirectWithFlash(c, h.flash, back, view.FlashWarning, "orders.cannotCancel")
		return
	}
	if _, err := h.orders.CancelOrder(ctx, id); err != nil {
		render.RedirectWithFlash(c, h.flash, back, view.FlashError, "orders.cancelFailed")
		return
	}
	render.RedirectWithFlash(c, h.flash, back, view.FlashSuccess, "orders.cancelled", "id", id)
}

// Deliveries lists the client's orders that are still on their way.
func (h *OrderHandlers) Deliveries(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	scheduled := []orders.Order{}
	for _, o := range h.orders.GetOrdersByCustomerID(c.Request.Context(), u.ID) {
		if o.Scheduled() {
			scheduled = append(scheduled, o)
		}
	}
	render.Component(c, http.StatusOK, pages.Deliveries(render.NewPage(c, "deliveries.title"), view.DeliveriesPage{Orders: scheduled}))
}

// visibleTo limits clients to their own orders and vendors to the orders
// they placed. Admins see everything.
func visibleTo(u *auth.User, o orders.Order) bool {
	switch {
	case u == nil:
		return false
	case u.Role == auth.RoleAdmin:
		return true
	case u.Role == auth.RoleClient:
		return o.IDClient == u.ID
	case u.Role == auth.RoleVendor:
		return o.IDVendor == u.ID
	}
	return false
}
