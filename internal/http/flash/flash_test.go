package flash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medisupply.com/portal/pkg/view"
)

func TestEncodeDecodeKeepsKeyAndArgs(t *testing.T) {
	c := NewCodec([]byte("secret"), "portal_flash", false)
	v, err := c.Encode(view.NewFlash(view.FlashSuccess, "orders.cancelled", "id", "o-1"))
	require.NoError(t, err)

	f, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, view.FlashSuccess, f.Kind)
	assert.Equal(t, "orders.cancelled", f.Key)
	assert.Equal(t, []string{"id", "o-1"}, f.Args)
}

func TestDecodeRejectsTampering(t *testing.T) {
	c := NewCodec([]byte("secret"), "portal_flash", false)
	other := NewCodec([]byte("other"), "portal_flash", false)
	v, err := other.Encode(view.NewFlash(view.FlashInfo, "login.loggedOut"))
	require.NoError(t, err)

	for _, bad := range []string{v, "", "nodot", "a.b.c", v + "x"} {
		_, err := c.Decode(bad)
		assert.ErrorIs(t, err, ErrInvalid, bad)
	}
}

func TestDecodeRejectsEmptyKeyAndOddArgs(t *testing.T) {
	c := NewCodec([]byte("secret"), "portal_flash", false)
	for _, f := range []view.Flash{
		{Kind: view.FlashInfo},
		{Kind: view.FlashInfo, Key: "k", Args: []string{"name"}},
	} {
		v, err := c.Encode(f)
		require.NoError(t, err)
		_, err = c.Decode(v)
		assert.ErrorIs(t, err, ErrInvalid)
	}
}

func TestCookieMaxAge(t *testing.T) {
	c := NewCodec([]byte("secret"), "portal_flash", false)
	assert.Equal(t, 120, c.CookieMaxAge())
	c.TTL = 0
	assert.Equal(t, 120, c.CookieMaxAge())
}
