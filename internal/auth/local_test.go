package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLocalProviderAuthenticate(t *testing.T) {
	p := NewLocalProvider([]byte("secret"), time.Hour)
	require.NoError(t, p.Add("Ana@MediSupply.co", RoleVendor, "s3cret!"))

	tokens, err := p.Authenticate(context.Background(), "ana@medisupply.co", "s3cret!")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.EqualValues(t, 3600, tokens.ExpiresIn)

	u, _, err := ParseIDToken(tokens.IDToken)
	require.NoError(t, err)
	assert.Equal(t, RoleVendor, u.Role)
	assert.Equal(t, "ana@medisupply.co", u.Email)

	_, err = p.Authenticate(context.Background(), "ana@medisupply.co", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = p.Authenticate(context.Background(), "nobody@medisupply.co", "s3cret!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseLocalUsers(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	p := NewLocalProvider([]byte("k"), time.Minute)
	require.NoError(t, ParseLocalUsers(p, "admin@x.co:admin:"+string(hash)+" ; ;"))
	_, err = p.Authenticate(context.Background(), "admin@x.co", "pw")
	assert.NoError(t, err)

	assert.Error(t, ParseLocalUsers(p, "bad-entry"))
	assert.Error(t, ParseLocalUsers(p, "a@x.co:root:"+string(hash)))
}

func TestLocalUserIDsAreStable(t *testing.T) {
	a := NewLocalProvider(nil, time.Minute)
	b := NewLocalProvider(nil, time.Minute)
	a.AddHashed("c@x.co", RoleClient, nil)
	b.AddHashed("C@x.co", RoleClient, nil)
	assert.Equal(t, a.users["c@x.co"].user.ID, b.users["c@x.co"].user.ID)
}
