package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidErr("bad", nil), http.StatusBadRequest},
		{UnauthorizedErr("login"), http.StatusUnauthorized},
		{ForbiddenErr("no"), http.StatusForbidden},
		{NotFoundErr("missing"), http.StatusNotFound},
		{ConflictErr("dup"), http.StatusConflict},
		{UnavailableErr("down", errors.New("dial")), http.StatusBadGateway},
		{Wrap(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestPublicMessageThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create order: %w", ConflictErr("Order already exists."))

	assert.Equal(t, "Order already exists.", PublicMessage(err))
	assert.True(t, IsKind(err, Conflict))
	assert.Equal(t, defaultPublicMsg, PublicMessage(errors.New("x")))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil))
}
