package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/auth"
	"medisupply.com/portal/internal/http/flash"
	"medisupply.com/portal/internal/http/middleware"
	"medisupply.com/portal/internal/http/render"
	"medisupply.com/portal/internal/http/validation"
	"medisupply.com/portal/internal/modules/cart"
	"medisupply.com/portal/internal/modules/customers"
	"medisupply.com/portal/internal/modules/orders"
	"medisupply.com/portal/internal/modules/products"
	"medisupply.com/portal/internal/modules/sellers"
	"medisupply.com/portal/internal/shared/countries"
	"medisupply.com/portal/internal/shared/dates"
	"medisupply.com/portal/pkg/view"
	"medisupply.com/portal/templates/pages"
)

// CartHandlers serves the cart page, its line edits and checkout.
type CartHandlers struct {
	carts    *cart.Service
	products *products.Service
	sellers  *sellers.Service
	orders   *orders.Service
	flash    *flash.Codec
	forms    *validation.Translator
	logger   *slog.Logger
	now      func() time.Time
}

func NewCartHandlers(carts *cart.Service, ps *products.Service, ss *sellers.Service, ords *orders.Service, flashCodec *flash.Codec, forms *validation.Translator, logger *slog.Logger) *CartHandlers {
	return &CartHandlers{
		carts:    carts,
		products: ps,
		sellers:  ss,
		orders:   ords,
		flash:    flashCodec,
		forms:    forms,
		logger:   logger,
		now:      time.Now,
	}
}

func (h *CartHandlers) Get(c *gin.Context) {
	h.renderCart(c, http.StatusOK, view.CheckoutForm{Priority: string(orders.PriorityMedium)}, nil)
}

// Add puts quantity units of sku in the cart and returns to the page the
// form was posted from.
func (h *CartHandlers) Add(c *gin.Context) {
	ctx := c.Request.Context()
	back := normalizeReturnTo(c.PostForm("return_to"))
	if back == "" {
		back = "/orders/new"
	}

	p := h.products.GetProductBySKU(ctx, strings.TrimSpace(c.PostForm("sku")))
	if p == nil {
		render.RedirectWithFlash(c, h.flash, back, view.FlashError, "orders.catalog.productNotFound")
		return
	}
	qty := atoiOr(c.PostForm("quantity"), 1)

	err := h.carts.Add(ctx, middleware.SessionID(c), *p, qty)
	if err != nil {
		kind, key, args := cartErrorFlash(err)
		if kind == view.FlashError {
			h.logger.ErrorContext(ctx, "cart_add_failed", slog.String("sku", p.SKU), slog.String("err", err.Error()))
		}
		render.RedirectWithFlash(c, h.flash, back, kind, key, args...)
		return
	}
	render.RedirectWithFlash(c, h.flash, back, view.FlashSuccess, "orders.cart.toast.success", "name", p.Name)
}

// Update sets a line's quantity. Zero removes the line; anything that is not
// a whole number is rejected and leaves the cart untouched.
func (h *CartHandlers) Update(c *gin.Context) {
	ctx := c.Request.Context()
	key := middleware.SessionID(c)
	sku, warehouse := c.PostForm("sku"), c.PostForm("warehouse")
	qty, err := strconv.Atoi(strings.TrimSpace(c.PostForm("quantity")))
	if err != nil {
		render.RedirectWithFlash(c, h.flash, "/cart", view.FlashWarning, "orders.cart.toast.invalidQuantity")
		return
	}

	name := h.lineName(c, key, sku, warehouse)
	removed, err := h.carts.UpdateQuantity(ctx, key, sku, warehouse, qty)
	if err != nil {
		kind, msgKey, args := cartErrorFlash(err)
		render.RedirectWithFlash(c, h.flash, "/cart", kind, msgKey, args...)
		return
	}
	if removed {
		render.RedirectWithFlash(c, h.flash, "/cart", view.FlashInfo, "orders.cart.toast.removed", "name", name)
		return
	}
	render.RedirectWithFlash(c, h.flash, "/cart", view.FlashSuccess, "orders.cart.toast.updated")
}

func (h *CartHandlers) Remove(c *gin.Context) {
	ctx := c.Request.Context()
	key := middleware.SessionID(c)
	sku, warehouse := c.PostForm("sku"), c.PostForm("warehouse")

	name := h.lineName(c, key, sku, warehouse)
	if err := h.carts.Remove(ctx, key, sku, warehouse); err != nil {
		kind, msgKey, args := cartErrorFlash(err)
		render.RedirectWithFlash(c, h.flash, "/cart", kind, msgKey, args...)
		return
	}
	render.RedirectWithFlash(c, h.flash, "/cart", view.FlashInfo, "orders.cart.toast.removed", "name", name)
}

// Checkout turns the cart into a PENDING order. Vendors order on behalf of
// one of their clients; clients order for themselves.
func (h *CartHandlers) Checkout(c *gin.Context) {
	ctx := c.Request.Context()
	u, _ := middleware.CurrentUser(c)
	key := middleware.SessionID(c)

	items := h.carts.Items(ctx, key)
	if len(items) == 0 {
		render.RedirectWithFlash(c, h.flash, "/cart", view.FlashWarning, "orders.checkout.cartEmpty")
		return
	}

	var in view.CheckoutForm
	if err := c.ShouldBind(&in); err != nil {
		h.renderCart(c, http.StatusBadRequest, in, h.forms.FromBindError(err, &in, middleware.Lang(c)))
		return
	}
	if errs := h.checkCheckout(c, u, in); len(errs) > 0 {
		h.renderCart(c, http.StatusBadRequest, in, errs)
		return
	}
	dateISO, _ := dates.NormalizeISO(in.DateEstimated)

	req := orders.OrderRequest{
		Priority:      orders.Priority(in.Priority),
		Products:      make([]orders.OrderProduct, 0, len(items)),
		OrderStatus:   orders.StatusPending,
		Country:       in.Country,
		City:          strings.TrimSpace(in.City),
		Address:       strings.TrimSpace(in.Address),
		DateEstimated: dateISO,
		IDClient:      u.ID,
	}
	if u.Role == auth.RoleVendor {
		req.IDClient = in.ClientID
		req.IDVendor = u.ID
	}
	for _, it := range items {
		price := it.Product.UnitValue
		req.Products = append(req.Products, orders.OrderProduct{
			ID:          it.Product.SKU,
			Name:        it.Product.Name,
			Amount:      it.Quantity,
			IDWarehouse: it.Product.Warehouse,
			UnitPrice:   &price,
		})
	}

	resp, err := h.orders.CreateOrder(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "checkout_failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("err", err.Error()))
		render.RedirectWithFlash(c, h.flash, "/cart", view.FlashError, "orders.checkout.failed")
		return
	}
	if err := h.carts.Clear(ctx, key); err != nil {
		h.logger.WarnContext(ctx, "cart_clear_failed", slog.String("err", err.Error()))
	}

	id := resp.ID
	if id == "" && resp.Order != nil {
		id = resp.Order.ID
	}
	render.Component(c, http.StatusOK, pages.Confirmation(render.NewPage(c, "orders.confirmation.title"), view.ConfirmationPage{
		OrderID: id,
		Message: resp.Message,
	}))
}

// checkCheckout applies the rules the binding tags cannot express.
func (h *CartHandlers) checkCheckout(c *gin.Context, u *auth.User, in view.CheckoutForm) map[string]string {
	errs := map[string]string{}
	invalid := middleware.T(c, "errors.invalidForm")

	if _, ok := countries.GetCountryNameByCode(in.Country); !ok {
		errs["country"] = invalid
	}
	if t, err := dates.Parse(in.DateEstimated); err != nil {
		errs["date_estimated"] = invalid
	} else if t.Before(today(h.now())) {
		errs["date_estimated"] = invalid
	}
	if u.Role == auth.RoleVendor {
		if in.ClientID == "" || !h.isMyClient(c, u.ID, in.ClientID) {
			errs["client_id"] = invalid
		}
	}
	return errs
}

func (h *CartHandlers) isMyClient(c *gin.Context, vendorID, clientID string) bool {
	for _, cl := range h.sellers.GetMyClients(c.Request.Context(), vendorID) {
		if cl.ClientID == clientID {
			return true
		}
	}
	return false
}

func (h *CartHandlers) renderCart(c *gin.Context, status int, form view.CheckoutForm, errs map[string]string) {
	ctx := c.Request.Context()
	u, _ := middleware.CurrentUser(c)
	key := middleware.SessionID(c)

	page := view.CartPage{
		Items:      h.carts.Items(ctx, key),
		Total:      h.carts.Total(ctx, key),
		Count:      h.carts.ItemCount(ctx, key),
		Form:       form,
		Countries:  countries.LatinAmerica,
		Priorities: []orders.Priority{orders.PriorityHigh, orders.PriorityMedium, orders.PriorityLow},
		MinDate:    today(h.now()).Format(dates.DayLayout),
		Clients:    []customers.InstitutionalClient{},
	}
	if auth.HasRole(u, auth.RoleVendor) {
		page.NeedsClient = true
		page.Clients = h.sellers.GetMyClients(ctx, u.ID)
	}
	render.Component(c, status, pages.Cart(render.NewPage(c, "orders.cart.title").WithErrors(errs), page))
}

// cartErrorFlash maps a cart error to the flash shown to the user.
// lineName is the product name of a cart line, or its sku when the line is
// gone.
func (h *CartHandlers) lineName(c *gin.Context, key, sku, warehouse string) string {
	if it, ok := h.carts.Get(c.Request.Context(), key, sku, warehouse); ok {
		return it.Product.Name
	}
	return sku
}

func cartErrorFlash(err error) (view.FlashKind, string, []string) {
	var se *cart.StockError
	switch {
	case errors.As(err, &se) && se.InCart > 0:
		return view.FlashWarning, "orders.cart.toast.stockMore", []string{"count", strconv.Itoa(se.Remaining())}
	case errors.As(err, &se):
		return view.FlashWarning, "orders.cart.toast.stock", []string{"count", strconv.Itoa(se.Stock)}
	case errors.Is(err, cart.ErrInvalidQuantity):
		return view.FlashWarning, "orders.cart.toast.invalidQuantity", nil
	}
	return view.FlashError, "orders.cart.toast.error", nil
}

func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
