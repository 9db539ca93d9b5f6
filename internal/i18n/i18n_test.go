package i18n

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, saved string) *Service {
	t.Helper()
	s := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, s.Init(context.Background(), saved))
	return s
}

func TestInitDefaultsToSpanish(t *testing.T) {
	s := newService(t, "")
	assert.Equal(t, "es", s.GetCurrentLanguage())
	assert.Equal(t, "Inicio", s.T("nav.home"))
}

func TestInitUsesSavedPreference(t *testing.T) {
	assert.Equal(t, "en", newService(t, "en").GetCurrentLanguage())
	assert.Equal(t, "es", newService(t, "de").GetCurrentLanguage())
}

func TestSetLanguageSwitchesAndBack(t *testing.T) {
	s := newService(t, "")
	require.NoError(t, s.SetLanguage("en"))
	assert.Equal(t, "Home", s.T("nav.home"))

	require.NoError(t, s.SetLanguage("es"))
	assert.Equal(t, "Inicio", s.T("nav.home"))
}

func TestSetLanguageRejectsUnsupported(t *testing.T) {
	s := newService(t, "")
	assert.Error(t, s.SetLanguage("fr"))
	assert.Equal(t, "es", s.GetCurrentLanguage())
}

func TestSetLanguageNotifiesSubscribers(t *testing.T) {
	s := newService(t, "")
	var got []string
	unsubscribe := s.OnChange(func(l string) { got = append(got, l) })

	require.NoError(t, s.SetLanguage("en"))
	require.NoError(t, s.SetLanguage("en"))
	unsubscribe()
	require.NoError(t, s.SetLanguage("es"))

	assert.Equal(t, []string{"en"}, got)
}

func TestTranslateFallsBackToKey(t *testing.T) {
	s := newService(t, "")
	assert.Equal(t, "does.not.exist", s.T("does.not.exist"))
}

func TestTranslateFallsBackToEnglish(t *testing.T) {
	s := newService(t, "")
	s.mu.Lock()
	s.resources["en"]["only.english"] = "English only"
	s.mu.Unlock()
	assert.Equal(t, "English only", s.T("only.english"))
}

func TestTranslateInterpolates(t *testing.T) {
	s := newService(t, "en")
	assert.Equal(t, "Order 42 cancelled.", s.T("orders.cancelled", "id", 42))
	assert.Equal(t, "Only 3 units available.", s.T("orders.cart.toast.stock", "count", 3))
	assert.Equal(t, "Order {{id}} cancelled.", s.T("orders.cancelled"))
}

func TestNestedKeysAreFlattened(t *testing.T) {
	s := newService(t, "es")
	assert.Equal(t, "Pendiente", s.T("orders.statuses.PENDING"))
	assert.Equal(t, "Norteamérica", s.T("salesPlan.regions.northAmerica"))
}

func TestFlatten(t *testing.T) {
	got := Flatten([]byte(`{"a":{"b":"x","c":{"d":"y"}},"e":"z"}`))
	assert.Equal(t, map[string]string{"a.b": "x", "a.c.d": "y", "e": "z"}, got)
}

func TestForBindsRequestLanguage(t *testing.T) {
	s := newService(t, "es")
	assert.Equal(t, "Home", s.For("en").T("nav.home"))
	assert.Equal(t, "es", s.For("xx").Lang())
	assert.Equal(t, "Inicio", s.For("xx").T("nav.home"))
	assert.Equal(t, "nav.home", Localizer{}.T("nav.home"))
}

func TestMatch(t *testing.T) {
	cases := []struct {
		header string
		want   string
		ok     bool
	}{
		{"en-US,en;q=0.9", "en", true},
		{"es-CO,es;q=0.8", "es", true},
		{"fr-FR,en;q=0.5", "en", true},
		{"", "", false},
		{"ja", "", false},
	}
	for _, tc := range cases {
		got, ok := Match(tc.header)
		assert.Equal(t, tc.ok, ok, tc.header)
		assert.Equal(t, tc.want, got, tc.header)
	}
}

func TestGetAvailableLanguagesReturnsCopy(t *testing.T) {
	s := newService(t, "")
	langs := s.GetAvailableLanguages()
	require.Len(t, langs, 2)
	langs[0].Code = "xx"
	assert.Equal(t, "es", s.GetAvailableLanguages()[0].Code)
}
