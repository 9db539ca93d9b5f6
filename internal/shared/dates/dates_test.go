package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeISO(t *testing.T) {
	got, err := NormalizeISO("2024-06-15T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15T12:00:00.000Z", got)
}

func TestNormalizeISOConvertsOffsetsToUTC(t *testing.T) {
	got, err := NormalizeISO("2024-06-15T07:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15T12:30:00.000Z", got)
}

func TestNormalizeISOKeepsMilliseconds(t *testing.T) {
	got, err := NormalizeISO("2024-06-15T12:00:00.123456Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15T12:00:00.123Z", got)
}

func TestNormalizeISODateOnly(t *testing.T) {
	got, err := NormalizeISO("2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15T00:00:00.000Z", got)
}

func TestNormalizeISORejectsGarbage(t *testing.T) {
	_, err := NormalizeISO("tomorrow")
	assert.Error(t, err)
	_, err = NormalizeISO("  ")
	assert.Error(t, err)
}

func TestDay(t *testing.T) {
	got, err := Day("2024-06-15T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-16", got)

	assert.Equal(t, time.June, mustParse(t, "2024-06-15").Month())
}

func mustParse(t *testing.T, v string) time.Time {
	t.Helper()
	tm, err := Parse(v)
	require.NoError(t, err)
	return tm
}
