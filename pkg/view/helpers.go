package view

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"medisupply.com/portal/internal/shared/dates"
)

func tagFor(lang string) language.Tag {
	if t, err := language.Parse(lang); err == nil {
		return t
	}
	return language.Spanish
}

// Money formats d with two decimals and the separators of lang,
// e.g. "$12,345.50" in English and "$12.345,50" in Spanish.
func Money(d decimal.Decimal, lang string) string {
	p := message.NewPrinter(tagFor(lang))
	return p.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

// Number groups thousands the way lang does.
func Number(n int, lang string) string {
	return message.NewPrinter(tagFor(lang)).Sprintf("%d", n)
}

func Percent(f float64) string {
	return fmt.Sprintf("%.1f%%", f)
}

// Date renders a backend timestamp as a calendar day, or the raw value when
// it cannot be parsed.
func Date(value, lang string) string {
	t, err := dates.Parse(value)
	if err != nil {
		return value
	}
	if strings.HasPrefix(lang, "en") {
		return t.Format("01/02/2006")
	}
	return t.Format("02/01/2006")
}

// DateTime is Date with the time of day in UTC.
func DateTime(value, lang string) string {
	t, err := dates.Parse(value)
	if err != nil {
		return value
	}
	if strings.HasPrefix(lang, "en") {
		return t.Format("01/02/2006 3:04 PM")
	}
	return t.Format("02/01/2006 15:04")
}
