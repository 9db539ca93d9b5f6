package countries

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCountryNameByCode(t *testing.T) {
	name, ok := GetCountryNameByCode("AR")
	assert.True(t, ok)
	assert.Equal(t, "Argentina", name)

	name, ok = GetCountryNameByCode("MX")
	assert.True(t, ok)
	assert.Equal(t, "México", name)

	name, ok = GetCountryNameByCode("co")
	assert.True(t, ok)
	assert.Equal(t, "Colombia", name)
}

func TestGetCountryNameByCodeUnknown(t *testing.T) {
	for _, code := range []string{"XX", "", "123"} {
		name, ok := GetCountryNameByCode(code)
		assert.False(t, ok, code)
		assert.Empty(t, name, code)
	}
}

func TestNameOr(t *testing.T) {
	assert.Equal(t, "Perú", NameOr("PE", "N/A"))
	assert.Equal(t, "N/A", NameOr("ZZ", "N/A"))
}

func TestIsCareLevel(t *testing.T) {
	assert.True(t, IsCareLevel("III"))
	assert.False(t, IsCareLevel("V"))
}
