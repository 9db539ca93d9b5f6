package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/auth"
	"medisupply.com/portal/internal/http/middleware"
	"medisupply.com/portal/internal/http/render"
	"medisupply.com/portal/internal/modules/customers"
	"medisupply.com/portal/internal/modules/geocoding"
	"medisupply.com/portal/internal/modules/orders"
	"medisupply.com/portal/internal/modules/sellers"
	"medisupply.com/portal/pkg/view"
	"medisupply.com/portal/templates/pages"
)

type RouteHandlers struct {
	orders    *orders.Service
	customers *customers.Service
	sellers   *sellers.Service
	geocoder  *geocoding.Service
}

func NewRouteHandlers(ords *orders.Service, cs *customers.Service, ss *sellers.Service, geo *geocoding.Service) *RouteHandlers {
	return &RouteHandlers{orders: ords, customers: cs, sellers: ss, geocoder: geo}
}

// Index plans the delivery stops of one client: its open orders in the
// order the backend returns them, each address geocoded.
func (h *RouteHandlers) Index(c *gin.Context) {
	ctx := c.Request.Context()
	u, _ := middleware.CurrentUser(c)

	clients := h.customers.GetAll(ctx)
	if u.Role == auth.RoleVendor {
		clients = h.sellers.GetMyClients(ctx, u.ID)
	}
	page := view.RoutesPage{ClientID: strings.TrimSpace(c.Query("client_id")), Clients: clients}

	if page.ClientID != "" && knownClient(clients, page.ClientID) {
		var stops []geocoding.Stop
		for _, o := range h.orders.GetOrdersByCustomerID(ctx, page.ClientID) {
			if !o.Scheduled() {
				continue
			}
			stops = append(stops, geocoding.Stop{OrderID: o.ID, Address: deliveryAddress(o)})
		}
		page.Stops = h.geocoder.GeocodeStops(ctx, stops)
	}
	render.Component(c, http.StatusOK, pages.Routes(render.NewPage(c, "routes.title"), page))
}

func knownClient(clients []customers.InstitutionalClient, id string) bool {
	for _, cl := range clients {
		if cl.ClientID == id {
			return true
		}
	}
	return false
}

func deliveryAddress(o orders.Order) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{o.Address, o.City, o.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
