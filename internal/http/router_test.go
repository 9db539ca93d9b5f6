package http

import (
	"bytes"
	"context"
	"encoding/json"
	"html"
	"io"
	"log/slog"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"medisupply.com/portal/internal/auth"
	"medisupply.com/portal/internal/backend"
	"medisupply.com/portal/internal/config"
	"medisupply.com/portal/internal/http/flash"
	"medisupply.com/portal/internal/http/middleware"
	"medisupply.com/portal/internal/http/validation"
	"medisupply.com/portal/internal/i18n"
	"medisupply.com/portal/internal/modules/cart"
	"medisupply.com/portal/internal/modules/customers"
	"medisupply.com/portal/internal/modules/geocoding"
	"medisupply.com/portal/internal/modules/orders"
	"medisupply.com/portal/internal/modules/products"
	"medisupply.com/portal/internal/modules/reports"
	"medisupply.com/portal/internal/modules/salesplans"
	"medisupply.com/portal/internal/modules/sellers"
	"medisupply.com/portal/internal/modules/suppliers"
	"medisupply.com/portal/internal/modules/visits"
	"medisupply.com/portal/internal/shared/dates"
	"medisupply.com/portal/internal/storage"
	"medisupply.com/portal/templates"
)

const (
	password       = "s3cret-pass"
	sessionCookie  = "test_session"
	clientEmail    = "compras@hospital.co"
	vendorEmail    = "ventas@medisupply.co"
	adminEmail     = "admin@medisupply.co"
	providerEmail  = "bodega@proveedor.co"
	productPayload = `{"sku":"MED-001","name":"Amoxicilina 500mg","unit_value":"12.50","stock":10,"warehouse":"w-1","warehouse_name":"Bogota"}`
)

// backendLog records what the fake microservices received.
type backendLog struct {
	mu     sync.Mutex
	orders []orders.OrderRequest
	visits []visits.CreateRequest
}

func (l *backendLog) lastOrder() (orders.OrderRequest, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.orders) == 0 {
		return orders.OrderRequest{}, false
	}
	return l.orders[len(l.orders)-1], true
}

func fakeBackends(t *testing.T, log *backendLog) *httptest.Server {
	t.Helper()
	mux := nethttp.NewServeMux()
	writeJSON := func(w nethttp.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}

	mux.HandleFunc("GET /clients/{$}", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, `[{"client_id":"c-1","name":"Hospital Uno","country":"CO","level":"III"}]`)
	})
	mux.HandleFunc("GET /products/{$}", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, "["+productPayload+"]")
	})
	mux.HandleFunc("GET /products/search", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if strings.Contains(strings.ToLower(r.URL.Query().Get("q")), "amox") {
			writeJSON(w, "["+productPayload+"]")
			return
		}
		writeJSON(w, `[]`)
	})
	mux.HandleFunc("GET /products/{sku}", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.PathValue("sku") != "MED-001" {
			w.WriteHeader(nethttp.StatusNotFound)
			return
		}
		writeJSON(w, productPayload)
	})
	mux.HandleFunc("POST /orders/orders/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req orders.OrderRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		log.mu.Lock()
		log.orders = append(log.orders, req)
		log.mu.Unlock()
		writeJSON(w, `{"id":"ord-77","message":"created"}`)
	})
	mux.HandleFunc("GET /orders/orders", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, `[
			{"id":"ord-mine","order_status":"PENDING","id_client":"c-1","id_vendor":"`+userID(vendorEmail)+`"},
			{"id":"ord-theirs","order_status":"SHIPPED","id_client":"c-2","id_vendor":"v-other"}
		]`)
	})
	mux.HandleFunc("GET /orders/orders/{id}", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, `{"id":"`+r.PathValue("id")+`","order_status":"PENDING","id_client":"someone-else"}`)
	})
	mux.HandleFunc("GET /orders/client/{id}", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, `[]`)
	})
	mux.HandleFunc("GET /vendors/{id}/clients", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, `[{"client_id":"c-1","name":"Hospital Uno","country":"CO"}]`)
	})
	mux.HandleFunc("GET /vendors/visits/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, `[]`)
	})
	mux.HandleFunc("POST /vendors/visits/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req visits.CreateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		log.mu.Lock()
		log.visits = append(log.visits, req)
		log.mu.Unlock()
		writeJSON(w, `{"visit_id":"v-1"}`)
	})
	mux.HandleFunc("GET /vendors/reports/export/pdf", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = io.WriteString(w, "%PDF-1.4")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// userID is the id the local provider derives for email.
func userID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String()
}

type harness struct {
	router  *gin.Engine
	backend *backendLog
	carts   *cart.MemoryStore
}

func newHarness(t *testing.T) *harness {
	return newHarnessWith(t, nil)
}

// newHarnessWith lets a test adjust the router dependencies before the
// router is built.
func newHarnessWith(t *testing.T, tweak func(*Deps)) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	lang := i18n.New(logger)
	require.NoError(t, lang.Init(context.Background(), i18n.DefaultLanguage))
	forms, err := validation.Setup(binding.Validator.Engine().(*validator.Validate))
	require.NoError(t, err)

	provider := auth.NewLocalProvider([]byte("test-secret"), time.Hour)
	users := map[string]auth.Role{
		clientEmail:   auth.RoleClient,
		vendorEmail:   auth.RoleVendor,
		adminEmail:    auth.RoleAdmin,
		providerEmail: auth.RoleProvider,
	}
	for email, role := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		provider.AddHashed(email, role, hash)
	}
	authSvc := auth.NewService(provider, auth.NewMemoryStore(), time.Hour, logger)

	log := &backendLog{}
	srv := fakeBackends(t, log)
	client := func(service string) *backend.Client {
		return backend.New(backend.Config{Service: service, BaseURL: srv.URL + "/" + service})
	}
	vendorClient := client("vendors")
	customerSvc := customers.NewService(client("clients"), logger)
	productSvc := products.NewService(client("products"), logger)
	uploads := t.TempDir()
	carts := cart.NewMemoryStore(time.Hour)

	d := Deps{
		Logger:   logger,
		I18n:     lang,
		Forms:    forms,
		Flash:    flash.NewCodec([]byte("test-secret"), "portal_flash", false),
		Session:  middleware.SessionCfg{Sessions: authSvc, CookieName: sessionCookie},
		CSRFKey:  []byte("0123456789abcdef0123456789abcdef"),
		Auth:     authSvc,
		Features: config.FeaturesFor(config.TargetWeb),

		Carts:      cart.NewService(carts, logger),
		Customers:  customerSvc,
		Sellers:    sellers.NewService(vendorClient, logger),
		Orders:     orders.NewService(client("orders"), logger),
		Products:   productSvc,
		Latest:     products.NewLatestSearch(productSvc),
		Suppliers:  suppliers.NewService(client("providers"), logger),
		SalesPlans: salesplans.NewService(vendorClient, logger),
		Reports:    reports.NewService(vendorClient, logger),
		Visits:     visits.NewService(vendorClient, customerSvc, logger),
		Geocoder:   geocoding.NewService(client("mapbox"), "token", 50, logger),

		Media:      storage.NewLocal(uploads, "/uploads"),
		UploadsDir: uploads,
		UploadsURL: "/uploads",
		Static:     templates.Static(),
	}
	if tweak != nil {
		tweak(&d)
	}
	return &harness{router: NewRouter(d), backend: log, carts: carts}
}

// browser keeps cookies between requests the way a real one would.
type browser struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]string
	lang    string
	// token is the CSRF token from the last page that carried one.
	token string
}

var csrfMeta = regexp.MustCompile(`name="csrf-token" content="([^"]+)"`)

func (h *harness) browser(t *testing.T) *browser {
	return &browser{t: t, router: h.router, cookies: map[string]string{}}
}

func (b *browser) send(req *nethttp.Request) *httptest.ResponseRecorder {
	for name, v := range b.cookies {
		req.AddCookie(&nethttp.Cookie{Name: name, Value: v})
	}
	if b.lang != "" {
		req.Header.Set("Accept-Language", b.lang)
	}
	rec := httptest.NewRecorder()
	b.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c.Value
	}
	if m := csrfMeta.FindStringSubmatch(rec.Body.String()); m != nil {
		b.token = html.UnescapeString(m[1])
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.send(httptest.NewRequest(nethttp.MethodGet, path, nil))
}

// csrf returns a token for the browser's CSRF cookie, loading a page first
// when none has been seen yet.
func (b *browser) csrf() string {
	if b.token == "" {
		if b.cookies[sessionCookie] == "" {
			b.get("/login")
		} else {
			b.get("/settings")
		}
	}
	require.NotEmpty(b.t, b.token)
	return b.token
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	form.Set(middleware.CSRFFormField, b.csrf())
	req := httptest.NewRequest(nethttp.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.send(req)
}

func (b *browser) login(email string) {
	rec := b.post("/login", url.Values{"email": {email}, "password": {password}})
	require.Equal(b.t, nethttp.StatusFound, rec.Code, rec.Body.String())
	require.NotEmpty(b.t, b.cookies[sessionCookie])
}

func TestHealthz(t *testing.T) {
	rec := newHarness(t).browser(t).get("/healthz")
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAnonymousIsSentToLogin(t *testing.T) {
	rec := newHarness(t).browser(t).get("/orders")
	assert.Equal(t, nethttp.StatusFound, rec.Code)
	assert.Equal(t, "/login?return_to=%2Forders", rec.Header().Get("Location"))
}

func TestAnonymousAPIGets401(t *testing.T) {
	rec := newHarness(t).browser(t).get("/api/products/search?q=amox")
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
}

func TestLoginPageFollowsLanguage(t *testing.T) {
	h := newHarness(t)

	b := h.browser(t)
	b.lang = "en-US,en;q=0.9"
	rec := b.get("/login")
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign in")
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))

	es := h.browser(t)
	es.cookies[i18n.CookieName] = "es"
	assert.Contains(t, es.get("/login").Body.String(), "Iniciar sesión")
}

func TestLoginWithBadPassword(t *testing.T) {
	b := newHarness(t).browser(t)
	rec := b.post("/login", url.Values{"email": {clientEmail}, "password": {"nope"}})
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	assert.Empty(t, b.cookies[sessionCookie])
}

func TestPostWithoutCSRFIsForbidden(t *testing.T) {
	b := newHarness(t).browser(t)
	req := httptest.NewRequest(nethttp.MethodPost, "/login", strings.NewReader("email=a%40b.co&password=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := b.send(req)
	assert.Equal(t, nethttp.StatusForbidden, rec.Code)
}

func TestSignedInUserSkipsLogin(t *testing.T) {
	b := newHarness(t).browser(t)
	b.login(clientEmail)

	rec := b.get("/login")
	assert.Equal(t, nethttp.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRoleGuardSendsClientHome(t *testing.T) {
	b := newHarness(t).browser(t)
	b.login(clientEmail)

	rec := b.get("/reports")
	assert.Equal(t, nethttp.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.NotEmpty(t, b.cookies["portal_flash"])
}

func TestCatalogAndLiveSearch(t *testing.T) {
	b := newHarness(t).browser(t)
	b.login(clientEmail)

	rec := b.get("/orders/new")
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Amoxicilina 500mg")

	rec = b.get("/api/products/search?q=amox")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var body struct {
		Query    string             `json:"query"`
		Products []products.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "amox", body.Query)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "MED-001", body.Products[0].SKU)
}

func TestCheckoutPlacesPendingOrder(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	b.login(clientEmail)

	rec := b.post("/cart/add", url.Values{"sku": {"MED-001"}, "quantity": {"3"}, "return_to": {"/orders/new"}})
	require.Equal(t, nethttp.StatusFound, rec.Code)
	assert.Equal(t, "/orders/new", rec.Header().Get("Location"))

	due := time.Now().UTC().AddDate(0, 0, 7).Format(dates.DayLayout)
	rec = b.post("/cart/checkout", url.Values{
		"country":        {"CO"},
		"city":           {"Bogota"},
		"address":        {"Calle 100 # 15-20"},
		"priority":       {"HIGH"},
		"date_estimated": {due},
	})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "ord-77")

	req, ok := h.backend.lastOrder()
	require.True(t, ok)
	assert.Equal(t, orders.StatusPending, req.OrderStatus)
	assert.Equal(t, orders.PriorityHigh, req.Priority)
	assert.Empty(t, req.IDVendor)
	assert.NotEmpty(t, req.IDClient)
	require.Len(t, req.Products, 1)
	assert.Equal(t, 3, req.Products[0].Amount)
	assert.Equal(t, "w-1", req.Products[0].IDWarehouse)
	assert.True(t, strings.HasSuffix(req.DateEstimated, "T00:00:00.000Z"))

	rec = b.get("/cart")
	assert.NotContains(t, rec.Body.String(), "Amoxicilina 500mg")
}

func TestCheckoutWithEmptyCart(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	b.login(clientEmail)

	rec := b.post("/cart/checkout", url.Values{"country": {"CO"}})
	assert.Equal(t, nethttp.StatusFound, rec.Code)
	assert.Equal(t, "/cart", rec.Header().Get("Location"))
	_, placed := h.backend.lastOrder()
	assert.False(t, placed)
}

func TestVendorCheckoutNeedsClient(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	b.login(vendorEmail)
	b.post("/cart/add", url.Values{"sku": {"MED-001"}, "quantity": {"1"}})

	rec := b.post("/cart/checkout", url.Values{
		"country":        {"CO"},
		"city":           {"Bogota"},
		"address":        {"Calle 100 # 15-20"},
		"priority":       {"LOW"},
		"date_estimated": {time.Now().UTC().AddDate(0, 0, 2).Format(dates.DayLayout)},
	})
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	_, placed := h.backend.lastOrder()
	assert.False(t, placed)
}

func TestOrderOfAnotherClientIsNotFound(t *testing.T) {
	b := newHarness(t).browser(t)
	b.login(clientEmail)

	rec := b.get("/orders/ord-9")
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestVisitWithMediaUpload(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	b.login(vendorEmail)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range map[string]string{
		middleware.CSRFFormField: b.csrf(),
		"client_id":              "c-1",
		"contact_name":           "Dra. Pérez",
		"contact_phone":          "3001234567",
		"visit_datetime":         "2026-10-15T10:30",
		"observations":           "Stock review",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="media"; filename="Shelf Photo.JPG"`)
	hdr.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(nethttp.MethodPost, "/visits", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := b.send(req)
	require.Equal(t, nethttp.StatusFound, rec.Code, rec.Body.String())
	assert.Equal(t, "/visits", rec.Header().Get("Location"))

	h.backend.mu.Lock()
	defer h.backend.mu.Unlock()
	require.Len(t, h.backend.visits, 1)
	got := h.backend.visits[0]
	assert.Equal(t, "2026-10-15T10:30:00.000Z", got.VisitDatetime)
	require.Len(t, got.BucketData, 1)
	assert.True(t, strings.HasPrefix(got.BucketData[0].URL, "/uploads/media/"))
	assert.True(t, strings.HasSuffix(got.BucketData[0].URL, "-shelf-photo.jpg"))

	served := b.get(got.BucketData[0].URL)
	assert.Equal(t, nethttp.StatusOK, served.Code)
	assert.Equal(t, "jpeg-bytes", served.Body.String())
}

func TestReportExportIsAttachment(t *testing.T) {
	b := newHarness(t).browser(t)
	b.login(adminEmail)

	rec := b.get("/reports/export/pdf?vendorId=v-1")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
}

func TestUnknownRouteIs404(t *testing.T) {
	rec := newHarness(t).browser(t).get("/no/such/page")
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestOrdersListFollowsRole(t *testing.T) {
	h := newHarness(t)

	vendor := h.browser(t)
	vendor.login(vendorEmail)
	rec := vendor.get("/orders")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ord-mine")
	assert.NotContains(t, rec.Body.String(), "ord-theirs")

	admin := h.browser(t)
	admin.login(adminEmail)
	rec = admin.get("/orders")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ord-mine")
	assert.Contains(t, rec.Body.String(), "ord-theirs")

	client := h.browser(t)
	client.login(clientEmail)
	rec = client.get("/orders")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "ord-mine")
}

func TestMenusFollowRole(t *testing.T) {
	h := newHarness(t)
	tests := []struct {
		name    string
		email   string
		path    string
		present []string
		absent  []string
	}{
		{
			name:   "anonymous",
			path:   "/login",
			absent: []string{`href="/reports"`, `href="/orders"`, `href="/cart"`},
		},
		{
			name:    "client",
			email:   clientEmail,
			path:    "/",
			present: []string{`href="/orders"`, `href="/deliveries"`, `href="/cart"`},
			absent:  []string{`href="/reports"`, `href="/inventory"`, `href="/visits"`},
		},
		{
			name:    "admin",
			email:   adminEmail,
			path:    "/",
			present: []string{`href="/reports"`, `href="/orders"`, `href="/inventory"`, `href="/sellers/new"`},
			absent:  []string{`href="/cart"`, `href="/deliveries"`},
		},
		{
			name:    "provider",
			email:   providerEmail,
			path:    "/",
			present: []string{`href="/inventory"`, `href="/products/bulk"`},
			absent:  []string{`href="/orders"`, `href="/reports"`, `href="/cart"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := h.browser(t)
			if tt.email != "" {
				b.login(tt.email)
			}
			rec := b.get(tt.path)
			require.Equal(t, nethttp.StatusOK, rec.Code)
			body := rec.Body.String()
			for _, s := range tt.present {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestLogoutDropsCart(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	b.login(clientEmail)

	b.post("/cart/add", url.Values{"sku": {"MED-001"}, "quantity": {"2"}})
	require.Equal(t, 1, h.carts.Len())

	rec := b.post("/logout", nil)
	assert.Equal(t, nethttp.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, 0, h.carts.Len())
}

func TestCartUpdateQuantity(t *testing.T) {
	b := newHarness(t).browser(t)
	b.lang = "en"
	b.login(clientEmail)
	b.post("/cart/add", url.Values{"sku": {"MED-001"}, "quantity": {"3"}})

	line := url.Values{"sku": {"MED-001"}, "warehouse": {"w-1"}}

	line.Set("quantity", "tres")
	rec := b.post("/cart/update", line)
	require.Equal(t, nethttp.StatusFound, rec.Code)
	page := b.get("/cart").Body.String()
	assert.Contains(t, page, "Enter a quantity greater than zero.")
	assert.Contains(t, page, "Amoxicilina 500mg")

	line.Set("quantity", "0")
	rec = b.post("/cart/update", line)
	require.Equal(t, nethttp.StatusFound, rec.Code)
	page = b.get("/cart").Body.String()
	assert.Contains(t, page, "Amoxicilina 500mg removed from the cart.")
}

func TestVisitMediaFollowsFeatures(t *testing.T) {
	withCamera := newHarness(t).browser(t)
	withCamera.login(vendorEmail)
	assert.Contains(t, withCamera.get("/visits/new").Body.String(), `name="media"`)

	h := newHarnessWith(t, func(d *Deps) { d.Features = config.Features{} })
	b := h.browser(t)
	b.lang = "en"
	b.login(vendorEmail)
	assert.NotContains(t, b.get("/visits/new").Body.String(), `name="media"`)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range map[string]string{
		middleware.CSRFFormField: b.csrf(),
		"client_id":              "c-1",
		"contact_name":           "Dra. Pérez",
		"contact_phone":          "3001234567",
		"visit_datetime":         "2026-10-15T10:30",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="media"; filename="shelf.jpg"`)
	hdr.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(nethttp.MethodPost, "/visits", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := b.send(req)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Attaching photos or videos is not available on this device.")

	h.backend.mu.Lock()
	defer h.backend.mu.Unlock()
	assert.Empty(t, h.backend.visits)
}
