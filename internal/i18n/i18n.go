// Package i18n serves the portal's Spanish and English texts.
package i18n

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"golang.org/x/text/language"

	"medisupply.com/portal/internal/shared/signal"
)

const (
	DefaultLanguage  = "es"
	FallbackLanguage = "en"
	// CookieName holds a user's saved language.
	CookieName = "app_language"
)

//go:embed locales/*.json
var localeFS embed.FS

type Language struct {
	Code string
	Name string
}

var available = []Language{
	{Code: "es", Name: "Español"},
	{Code: "en", Name: "English"},
}

var matcher = language.NewMatcher([]language.Tag{language.Spanish, language.English})

// Service holds the loaded resources and the process-wide active language.
type Service struct {
	logger *slog.Logger
	active *signal.Signal[string]

	mu        sync.RWMutex
	resources map[string]map[string]string
}

func New(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger:    logger,
		active:    signal.New(DefaultLanguage),
		resources: make(map[string]map[string]string),
	}
}

// Init loads every language resource and activates saved when it is
// supported, otherwise the default language. It must complete before the
// first render.
func (s *Service) Init(ctx context.Context, saved string) error {
	for _, l := range available {
		b, err := localeFS.ReadFile(path.Join("locales", l.Code+".json"))
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", l.Code, err)
		}
		if !gjson.ValidBytes(b) {
			return fmt.Errorf("i18n: %s.json is not valid JSON", l.Code)
		}
		s.mu.Lock()
		s.resources[l.Code] = Flatten(b)
		s.mu.Unlock()
	}

	lang := DefaultLanguage
	if IsSupported(saved) {
		lang = saved
	}
	s.active.Set(lang)
	s.logger.InfoContext(ctx, "i18n_ready", slog.String("language", lang))
	return nil
}

// Flatten turns nested JSON objects into dotted keys.
func Flatten(b []byte) map[string]string {
	out := make(map[string]string)
	var walk func(prefix string, r gjson.Result)
	walk = func(prefix string, r gjson.Result) {
		r.ForEach(func(k, v gjson.Result) bool {
			key := k.String()
			if prefix != "" {
				key = prefix + "." + key
			}
			if v.IsObject() {
				walk(key, v)
			} else {
				out[key] = v.String()
			}
			return true
		})
	}
	walk("", gjson.ParseBytes(b))
	return out
}

func IsSupported(code string) bool {
	for _, l := range available {
		if l.Code == code {
			return true
		}
	}
	return false
}

// SetLanguage switches the active language and notifies subscribers.
func (s *Service) SetLanguage(code string) error {
	if !IsSupported(code) {
		return fmt.Errorf("i18n: unsupported language %q", code)
	}
	s.active.Set(code)
	return nil
}

// OnChange registers fn for active-language changes.
func (s *Service) OnChange(fn func(string)) (unsubscribe func()) {
	return s.active.Subscribe(fn)
}

func (s *Service) GetCurrentLanguage() string { return s.active.Get() }

func (s *Service) GetAvailableLanguages() []Language {
	out := make([]Language, len(available))
	copy(out, available)
	return out
}

// T translates key in the active language.
func (s *Service) T(key string, args ...any) string {
	return s.translate(s.active.Get(), key, args...)
}

// For returns a localizer bound to lang; unsupported codes use the active
// language.
func (s *Service) For(lang string) Localizer {
	if !IsSupported(lang) {
		lang = s.active.Get()
	}
	return Localizer{svc: s, lang: lang}
}

// Match picks the best supported language for an Accept-Language header.
func Match(acceptLanguage string) (string, bool) {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return available[idx].Code, true
}

// translate resolves lang, then the fallback language, then returns the key.
// args are name/value pairs substituted into {{name}} placeholders.
func (s *Service) translate(lang, key string, args ...any) string {
	s.mu.RLock()
	msg, ok := s.resources[lang][key]
	if !ok {
		msg, ok = s.resources[FallbackLanguage][key]
	}
	s.mu.RUnlock()
	if !ok {
		return key
	}
	return interpolate(msg, args)
}

func interpolate(msg string, args []any) string {
	if len(args) < 2 || !strings.Contains(msg, "{{") {
		return msg
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		name := fmt.Sprint(args[i])
		pairs = append(pairs, "{{"+name+"}}", fmt.Sprint(args[i+1]), "{{ "+name+" }}", fmt.Sprint(args[i+1]))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Localizer translates for one request's language.
type Localizer struct {
	svc  *Service
	lang string
}

func (l Localizer) Lang() string { return l.lang }

func (l Localizer) T(key string, args ...any) string {
	if l.svc == nil {
		return key
	}
	return l.svc.translate(l.lang, key, args...)
}
