package http

import (
	"io/fs"
	"log/slog"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/auth"
	"medisupply.com/portal/internal/config"
	"medisupply.com/portal/internal/http/flash"
	"medisupply.com/portal/internal/http/handlers"
	"medisupply.com/portal/internal/http/middleware"
	"medisupply.com/portal/internal/http/render"
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
	"medisupply.com/portal/internal/storage"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Logger  *slog.Logger
	I18n    *i18n.Service
	Forms   *validation.Translator
	Flash   *flash.Codec
	Session middleware.SessionCfg
	// CSRFKey signs the CSRF cookie; it must be 32 bytes.
	CSRFKey  []byte
	Auth     *auth.Service
	Features config.Features

	Carts      *cart.Service
	Customers  *customers.Service
	Sellers    *sellers.Service
	Orders     *orders.Service
	Products   *products.Service
	Latest     *products.LatestSearch
	Suppliers  *suppliers.Service
	SalesPlans *salesplans.Service
	Reports    *reports.Service
	Visits     *visits.Service
	Geocoder   *geocoding.Service

	Media storage.Storage
	// UploadsDir and UploadsURL serve local media; both empty when media
	// lives in S3.
	UploadsDir string
	UploadsURL string

	Static      fs.FS
	Metrics     *middleware.HTTPMetrics
	MetricsView nethttp.Handler
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = false

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.Handler())
	}
	r.Use(middleware.ErrorHandler(d.Logger, render.ErrorPage))
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Language(d.I18n))
	r.Use(middleware.FlashMiddleware(d.Flash))
	r.Use(middleware.SessionMiddleware(d.Session))
	r.Use(middleware.CSRF(d.CSRFKey, d.Session.Secure))
	r.Use(middleware.CartCount(d.Carts))

	r.GET("/healthz", handlers.Healthz)
	if d.MetricsView != nil {
		r.GET("/metrics", gin.WrapH(d.MetricsView))
	}
	if d.Static != nil {
		r.StaticFS("/static", nethttp.FS(d.Static))
	}
	if d.UploadsDir != "" && d.UploadsURL != "" {
		r.Static(d.UploadsURL, d.UploadsDir)
	}

	authH := handlers.NewAuthHandlers(d.Auth, d.Carts, d.Flash, d.Session, d.Forms, d.Logger)
	settingsH := handlers.NewSettingsHandlers(d.I18n, d.Flash, d.Session.Secure)
	institutionH := handlers.NewInstitutionHandlers(d.Customers, d.Sellers, d.Flash, d.Forms)
	orderH := handlers.NewOrderHandlers(d.Orders, d.Flash)
	catalogH := handlers.NewCatalogHandlers(d.Products, d.Latest, d.Carts)
	cartH := handlers.NewCartHandlers(d.Carts, d.Products, d.Sellers, d.Orders, d.Flash, d.Forms, d.Logger)
	visitH := handlers.NewVisitHandlers(d.Visits, d.Sellers, d.Media, d.Features, d.Flash, d.Forms, d.Logger)
	sellerH := handlers.NewSellerHandlers(d.Sellers, d.Customers, d.Flash, d.Forms)
	reportH := handlers.NewReportHandlers(d.Reports, d.Flash, d.Logger)
	routeH := handlers.NewRouteHandlers(d.Orders, d.Customers, d.Sellers, d.Geocoder)
	inventoryH := handlers.NewInventoryHandlers(d.Products)
	bulkH := handlers.NewBulkHandlers(d.Products, d.Suppliers, d.Logger)
	supplierH := handlers.NewSupplierHandlers(d.Suppliers, d.Flash, d.Forms)
	planH := handlers.NewSalesPlanHandlers(d.SalesPlans, d.Sellers, d.Products, d.Flash)

	guest := r.Group("/", middleware.RequireGuest())
	guest.GET("/login", authH.LoginGet)
	guest.POST("/login", authH.LoginPost)

	signedIn := r.Group("/", middleware.RequireAuth(d.Flash))
	signedIn.GET("/", handlers.Home)
	signedIn.POST("/logout", authH.Logout)
	signedIn.GET("/settings", settingsH.Get)
	signedIn.POST("/settings/language", settingsH.SetLanguage)

	admin := r.Group("/", middleware.RequireRole(d.Flash, auth.RoleAdmin))
	admin.POST("/settings/default-language", settingsH.SetDefaultLanguage)
	admin.GET("/institutions/new", institutionH.New)
	admin.POST("/institutions", institutionH.Create)
	admin.GET("/sellers/new", sellerH.New)
	admin.POST("/sellers", sellerH.Create)
	admin.GET("/reports", reportH.Index)
	admin.GET("/reports/export/pdf", reportH.ExportPDF)
	admin.GET("/reports/export/excel", reportH.ExportExcel)
	admin.GET("/suppliers/new", supplierH.New)
	admin.POST("/suppliers", supplierH.Create)
	admin.GET("/suppliers/bulk", bulkH.SuppliersForm)
	admin.POST("/suppliers/bulk", bulkH.UploadSuppliers)
	admin.GET("/sales-plans/new", planH.New)
	admin.POST("/sales-plans", planH.Create)

	staff := r.Group("/", middleware.RequireRole(d.Flash, auth.RoleAdmin, auth.RoleVendor))
	staff.GET("/institutions", institutionH.List)
	staff.GET("/routes", routeH.Index)

	stock := r.Group("/", middleware.RequireRole(d.Flash, auth.RoleAdmin, auth.RoleProvider))
	stock.GET("/inventory", inventoryH.Index)
	stock.GET("/products/bulk", bulkH.ProductsForm)
	stock.POST("/products/bulk", bulkH.UploadProducts)

	vendor := r.Group("/", middleware.RequireRole(d.Flash, auth.RoleVendor))
	vendor.GET("/my-clients", institutionH.MyClients)
	vendor.GET("/visits", visitH.List)
	vendor.GET("/visits/new", visitH.New)
	vendor.POST("/visits", visitH.Create)
	vendor.GET("/vendor/report", sellerH.Report)

	client := r.Group("/", middleware.RequireRole(d.Flash, auth.RoleClient))
	client.GET("/deliveries", orderH.Deliveries)

	buyers := r.Group("/", middleware.RequireRole(d.Flash, auth.RoleClient, auth.RoleVendor))
	buyers.GET("/orders/new", catalogH.Catalog)
	buyers.GET("/products/:sku", catalogH.Detail)
	buyers.GET("/api/products/search", catalogH.Search)
	buyers.GET("/cart", cartH.Get)
	buyers.POST("/cart/add", cartH.Add)
	buyers.POST("/cart/update", cartH.Update)
	buyers.POST("/cart/remove", cartH.Remove)
	buyers.POST("/cart/checkout", cartH.Checkout)

	ordersGroup := r.Group("/orders", middleware.RequireRole(d.Flash, auth.RoleClient, auth.RoleVendor, auth.RoleAdmin))
	ordersGroup.GET("", orderH.List)
	ordersGroup.GET("/:id", orderH.Detail)
	ordersGroup.POST("/:id/cancel", orderH.Cancel)

	r.NoRoute(handlers.NotFound)
	return r
}
