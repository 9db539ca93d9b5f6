package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDTokenReadsCognitoClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":         "7f1c-abc",
		"email":       "ana@medisupply.co",
		"custom:role": "vendor",
		"exp":         exp.Unix(),
	}).SignedString([]byte("any"))
	require.NoError(t, err)

	u, gotExp, err := ParseIDToken(tok)
	require.NoError(t, err)
	assert.Equal(t, User{ID: "7f1c-abc", Email: "ana@medisupply.co", Role: RoleVendor}, u)
	assert.True(t, exp.Equal(gotExp))
}

func TestParseIDTokenUnknownRole(t *testing.T) {
	tok, err := SignIDToken(User{ID: "x", Role: "root"}, time.Now().Add(time.Minute), []byte("k"))
	require.NoError(t, err)

	u, _, err := ParseIDToken(tok)
	require.NoError(t, err)
	assert.Equal(t, Role(""), u.Role)
}

func TestParseIDTokenRejectsGarbage(t *testing.T) {
	_, _, err := ParseIDToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrMalformedToken)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@b.c"}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, _, err = ParseIDToken(tok)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
