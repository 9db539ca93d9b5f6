// Package config loads the portal configuration for a build target from the
// environment (optionally seeded from a .env file).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Target string

const (
	TargetWeb    Target = "web"
	TargetMobile Target = "mobile"
	TargetProd   Target = "prod"
)

// Services holds the base URL of every backend microservice.
type Services struct {
	API      string        `env:"APP_API_URL,default=http://localhost:3000"`
	WebBase  string        `env:"APP_WEB_BASE_URL,default=http://localhost:8080"`
	Client   string        `env:"APP_CLIENT_MICROSERVICE_URL,default=http://localhost:3001"`
	Vendor   string        `env:"APP_VENDOR_MICROSERVICE_URL,default=http://localhost:3002"`
	Provider string        `env:"APP_PROVIDER_MICROSERVICE_URL,default=http://localhost:3003"`
	Product  string        `env:"APP_PRODUCT_MICROSERVICE_URL,default=http://localhost:3004"`
	Orders   string        `env:"APP_ORDERS_MICROSERVICE_URL,default=http://localhost:3005"`
	Timeout  time.Duration `env:"BACKEND_TIMEOUT,default=10s"`
}

type Cognito struct {
	Region         string `env:"APP_COGNITO_REGION,default=us-east-1"`
	UserPoolID     string `env:"APP_COGNITO_USER_POOL_ID"`
	ClientID       string `env:"APP_COGNITO_USER_POOL_CLIENT_ID"`
	Domain         string `env:"APP_COGNITO_DOMAIN"`
	RedirectURLs   string `env:"APP_COGNITO_REDIRECT_URLS"`
	IdentityPoolID string `env:"APP_COGNITO_IDENTITY_POOL_ID"`
}

type Media struct {
	Driver        string `env:"STORAGE_DRIVER,default=local"`
	Region        string `env:"APP_S3_MEDIA_REGION"`
	Bucket        string `env:"APP_S3_MEDIA_BUCKET_NAME"`
	PublicBaseURL string `env:"APP_S3_MEDIA_PUBLIC_URL"`
	LocalDir      string `env:"LOCAL_UPLOAD_DIR,default=./storage/uploads"`
	LocalURL      string `env:"LOCAL_UPLOAD_URL_PREFIX,default=/uploads"`
}

type Session struct {
	Store      string        `env:"SESSION_STORE,default=memory"`
	DSN        string        `env:"DB_DSN"`
	CookieName string        `env:"SESSION_COOKIE,default=medisupply_session"`
	TTL        time.Duration `env:"SESSION_TTL,default=12h"`
	Secret     string        `env:"COOKIE_SECRET,default=dev-secret-change-me"`
	Secure     bool          `env:"COOKIE_SECURE,default=false"`
	PurgeSpec  string        `env:"SESSION_PURGE_SPEC,default=@every 10m"`
}

type Cart struct {
	Store    string `env:"CART_STORE,default=memory"`
	RedisURL string `env:"REDIS_URL"`
}

type Auth struct {
	Provider   string `env:"AUTH_PROVIDER,default=local"`
	LocalUsers string `env:"LOCAL_USERS"`
}

// Features are the device capabilities a target exposes.
type Features struct {
	PushNotifications bool
	BiometricAuth     bool
	Camera            bool
	Geolocation       bool
	FileSystem        bool
	NativeStorage     bool
}

type Config struct {
	Target          Target `env:"TARGET,default=web"`
	HTTPAddr        string `env:"HTTP_ADDR,default=:8080"`
	LogLevel        string `env:"LOG_LEVEL,default=info"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE,default=es"`
	MapboxToken     string `env:"APP_MAPBOX_TOKEN"`
	GeocodeRPS      int    `env:"GEOCODE_RPS,default=5"`

	Services Services
	Cognito  Cognito
	Media    Media
	Session  Session
	Cart     Cart
	Auth     Auth

	Features Features
}

// Production reports whether the target is a production build.
func (c Config) Production() bool { return c.Target == TargetProd }

// FeaturesFor returns the capability defaults of a target.
func FeaturesFor(t Target) Features {
	switch t {
	case TargetWeb:
		return Features{Camera: true, Geolocation: true}
	default:
		return Features{Camera: true, Geolocation: true, FileSystem: true, NativeStorage: true}
	}
}

// Load reads .env (when present), decodes the environment and resolves
// deployment placeholders.
func Load() (Config, error) {
	// .env is optional; production uses real environment variables
	_ = godotenv.Load()
	return FromEnv(os.LookupEnv)
}

// FromEnv decodes the current process environment. lookup resolves
// #{NAME}# placeholders left in values by the packaging step.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: decode env: %w", err)
	}
	cfg.Target = Target(strings.ToLower(string(cfg.Target)))
	cfg.Features = FeaturesFor(cfg.Target)

	if missing := ResolvePlaceholders(&cfg, lookup); len(missing) > 0 && cfg.Production() {
		return Config{}, fmt.Errorf("config: unresolved placeholders: %s", strings.Join(missing, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c Config) Validate() error {
	var errs []error
	switch c.Target {
	case TargetWeb, TargetMobile, TargetProd:
	default:
		errs = append(errs, fmt.Errorf("unknown TARGET %q", c.Target))
	}
	if c.Session.Store == "gorm" {
		if c.Session.DSN == "" {
			errs = append(errs, errors.New("DB_DSN is required when SESSION_STORE=gorm"))
		} else if _, err := mysql.ParseDSN(c.Session.DSN); err != nil {
			errs = append(errs, fmt.Errorf("DB_DSN: %w", err))
		}
	}
	if c.Cart.Store == "redis" && c.Cart.RedisURL == "" {
		errs = append(errs, errors.New("REDIS_URL is required when CART_STORE=redis"))
	}
	if c.Auth.Provider == "cognito" && (c.Cognito.UserPoolID == "" || c.Cognito.ClientID == "") {
		errs = append(errs, errors.New("APP_COGNITO_USER_POOL_ID and APP_COGNITO_USER_POOL_CLIENT_ID are required when AUTH_PROVIDER=cognito"))
	}
	if c.Production() && c.Session.Secret == "dev-secret-change-me" {
		errs = append(errs, errors.New("COOKIE_SECRET must be set for production"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
