package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoneyUsesLanguageSeparators(t *testing.T) {
	d := decimal.RequireFromString("12345.5")
	assert.Equal(t, "$12,345.50", Money(d, "en"))
	assert.Equal(t, "$12.345,50", Money(d, "es"))
	assert.Equal(t, "$0.00", Money(decimal.Zero, "en"))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "12,000", Number(12000, "en"))
	assert.Equal(t, "12.000", Number(12000, "es"))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "85.3%", Percent(85.26))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "06/15/2024", Date("2024-06-15T12:00:00Z", "en"))
	assert.Equal(t, "15/06/2024", Date("2024-06-15T12:00:00Z", "es"))
	assert.Equal(t, "15/06/2024 12:00", DateTime("2024-06-15T12:00:00Z", "es"))
	assert.Equal(t, "not a date", Date("not a date", "es"))
}

func TestFlashCSSClass(t *testing.T) {
	assert.Equal(t, "alert-danger", NewFlash(FlashError, "k").CSSClass())
	assert.Equal(t, "alert-success", NewFlash(FlashSuccess, "k").CSSClass())
}
