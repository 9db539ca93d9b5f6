package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasRole(t *testing.T) {
	vendor := &User{ID: "u1", Role: RoleVendor}

	assert.True(t, HasRole(vendor, RoleVendor))
	assert.True(t, HasRole(vendor, RoleAdmin, RoleVendor))
	assert.False(t, HasRole(vendor, RoleClient))
	assert.False(t, HasRole(vendor))
	assert.False(t, HasRole(nil, RoleVendor))
	assert.False(t, HasRole(&User{ID: "u2"}, RoleVendor))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole(" Admin "))
	assert.Equal(t, RoleProvider, ParseRole("provider"))
	assert.Equal(t, Role(""), ParseRole("superuser"))
}
