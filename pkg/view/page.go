package view

import (
	"github.com/shopspring/decimal"

	"medisupply.com/portal/internal/auth"
	"medisupply.com/portal/internal/i18n"
	"medisupply.com/portal/internal/shared/countries"
)

// Page is the request state shared by the layout and every page component.
type Page struct {
	TitleKey  string
	Path      string
	User      *auth.User
	Lang      string
	CSRFToken string
	Flash     *Flash
	CartCount int
	RequestID string
	Errors    map[string]string
	Loc       i18n.Localizer
}

// T translates key in the request language.
func (p Page) T(key string, args ...any) string {
	return p.Loc.T(key, args...)
}

func (p Page) Title() string {
	if p.TitleKey == "" {
		return p.T("app.title")
	}
	return p.T(p.TitleKey) + " · " + p.T("app.title")
}

// FlashText is the translated flash message, or "".
func (p Page) FlashText() string {
	if p.Flash == nil {
		return ""
	}
	args := make([]any, len(p.Flash.Args))
	for i, a := range p.Flash.Args {
		args[i] = a
	}
	return p.T(p.Flash.Key, args...)
}

// Err is the validation message for a form field.
func (p Page) Err(field string) string {
	return p.Errors[field]
}

func (p Page) WithErrors(errs map[string]string) Page {
	p.Errors = errs
	return p
}

// HasRole gates a subtree on the signed-in user's role. Anonymous users hold
// no role.
func (p Page) HasRole(roles ...auth.Role) bool {
	return auth.HasRole(p.User, roles...)
}

func (p Page) Money(d decimal.Decimal) string { return Money(d, p.Lang) }

func (p Page) Number(n int) string { return Number(n, p.Lang) }

func (p Page) Date(v string) string { return Date(v, p.Lang) }

func (p Page) DateTime(v string) string { return DateTime(v, p.Lang) }

func (p Page) CountryName(code string) string { return countries.NameOr(code, "N/A") }

type LoginPage struct {
	Email    string
	ReturnTo string
	Error    string
}

type ErrorPage struct {
	Status  int
	Message string
}
