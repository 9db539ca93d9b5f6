package main

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"medisupply.com/portal/internal/auth"
	"medisupply.com/portal/internal/backend"
	"medisupply.com/portal/internal/config"
	apphttp "medisupply.com/portal/internal/http"
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
	"medisupply.com/portal/internal/storage"
	"medisupply.com/portal/templates"
)

const mapboxGeocodingURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// buildTarget is set by the mage build targets; TARGET still overrides it.
var buildTarget string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("portal: %v", err)
	}
}

func run(ctx context.Context) error {
	if _, set := os.LookupEnv("TARGET"); !set && buildTarget != "" {
		_ = os.Setenv("TARGET", buildTarget)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	lang := i18n.New(logger)
	if err := lang.Init(ctx, cfg.DefaultLanguage); err != nil {
		return fmt.Errorf("i18n: %w", err)
	}
	defer lang.OnChange(func(code string) {
		logger.Info("default_language_changed", slog.String("lang", code))
	})()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validation: gin validator engine is not validator/v10")
	}
	forms, err := validation.Setup(v)
	if err != nil {
		return fmt.Errorf("validation: %w", err)
	}

	sessions, err := sessionStore(cfg.Session)
	if err != nil {
		return err
	}
	purge, err := auth.StartPurge(cfg.Session.PurgeSpec, sessions, logger)
	if err != nil {
		return fmt.Errorf("session purge: %w", err)
	}
	defer purge.Stop()

	provider, err := authProvider(ctx, cfg, logger)
	if err != nil {
		return err
	}
	authSvc := auth.NewService(provider, sessions, cfg.Session.TTL, logger)

	cartBackend, err := cartStore(cfg)
	if err != nil {
		return err
	}
	carts := cart.NewService(cartBackend, logger)
	if mem, ok := cartBackend.(*cart.MemoryStore); ok {
		if _, err := purge.AddFunc(cfg.Session.PurgeSpec, func() { cart.PurgeOnce(context.Background(), mem, logger) }); err != nil {
			return fmt.Errorf("cart purge: %w", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := backend.Register(reg); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	httpMetrics, err := middleware.NewHTTPMetrics(reg)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	client := func(service, baseURL string) *backend.Client {
		return backend.New(backend.Config{Service: service, BaseURL: baseURL, Timeout: cfg.Services.Timeout})
	}
	customerSvc := customers.NewService(client("clients", cfg.Services.Client), logger)
	vendorClient := client("vendors", cfg.Services.Vendor)
	productSvc := products.NewService(client("products", cfg.Services.Product), logger)

	media, err := storage.FromConfig(ctx, cfg.Media)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	logger.Info("media_storage", slog.String("driver", media.Driver))

	deps := apphttp.Deps{
		Logger:   logger,
		I18n:     lang,
		Forms:    forms,
		Features: cfg.Features,
		Flash:    flash.NewCodec([]byte(cfg.Session.Secret), "portal_flash", cfg.Session.Secure),
		CSRFKey:  csrfKey(cfg.Session.Secret),
		Session: middleware.SessionCfg{
			Sessions:   authSvc,
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.Secure,
		},
		Auth: authSvc,

		Carts:      carts,
		Customers:  customerSvc,
		Sellers:    sellers.NewService(vendorClient, logger),
		Orders:     orders.NewService(client("orders", cfg.Services.Orders), logger),
		Products:   productSvc,
		Latest:     products.NewLatestSearch(productSvc),
		Suppliers:  suppliers.NewService(client("providers", cfg.Services.Provider), logger),
		SalesPlans: salesplans.NewService(vendorClient, logger),
		Reports:    reports.NewService(vendorClient, logger),
		Visits:     visits.NewService(vendorClient, customerSvc, logger),
		Geocoder: geocoding.NewService(backend.New(backend.Config{
			Service:   "mapbox",
			BaseURL:   mapboxGeocodingURL,
			Timeout:   cfg.Services.Timeout,
			Anonymous: true,
		}), cfg.MapboxToken, cfg.GeocodeRPS, logger),

		Media:       media.Storage,
		Static:      templates.Static(),
		Metrics:     httpMetrics,
		MetricsView: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	}
	if media.Driver == "local" {
		deps.UploadsDir = cfg.Media.LocalDir
		deps.UploadsURL = cfg.Media.LocalURL
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apphttp.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http_listen", slog.String("addr", cfg.HTTPAddr), slog.String("target", string(cfg.Target)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("http_shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if c, ok := cartBackend.(*cart.RedisStore); ok {
		_ = c.Close()
	}
	return nil
}

// csrfKey derives the 32-byte CSRF cookie key from the session secret.
func csrfKey(secret string) []byte {
	sum := sha256.Sum256([]byte("csrf:" + secret))
	return sum[:]
}

func sessionStore(cfg config.Session) (auth.Store, error) {
	if cfg.Store != "gorm" {
		return auth.NewMemoryStore(), nil
	}
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return auth.NewGormStore(db), nil
}

func authProvider(ctx context.Context, cfg config.Config, logger *slog.Logger) (auth.Provider, error) {
	if cfg.Auth.Provider == "cognito" {
		p, err := auth.NewCognitoProviderFromRegion(ctx, cfg.Cognito.Region, cfg.Cognito.ClientID)
		if err != nil {
			return nil, fmt.Errorf("cognito: %w", err)
		}
		return p, nil
	}

	p := auth.NewLocalProvider([]byte(cfg.Session.Secret), cfg.Session.TTL)
	if err := auth.ParseLocalUsers(p, cfg.Auth.LocalUsers); err != nil {
		return nil, err
	}
	if cfg.Auth.LocalUsers == "" {
		logger.Warn("local_auth_without_users")
	}
	return p, nil
}

func cartStore(cfg config.Config) (cart.Store, error) {
	if cfg.Cart.Store != "redis" {
		return cart.NewMemoryStore(cfg.Session.TTL), nil
	}
	s, err := cart.NewRedisStoreFromURL(cfg.Cart.RedisURL, cfg.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("cart store: %w", err)
	}
	return s, nil
}
