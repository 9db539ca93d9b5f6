package suppliers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medisupply.com/portal/internal/backend"
	"medisupply.com/portal/internal/shared/apperr"
)

func newService(t *testing.T, h http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewService(backend.New(backend.Config{Service: "providers", BaseURL: srv.URL + "/providers"}), nil)
}

func TestCreateSupplierPostsToBase(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/providers", r.URL.Path)
		var req CreateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "900123456", req.NIT)
		_, _ = io.WriteString(w, `{"message":"created","provider":{"provider_id":"p1","name":"Farma SAS"}}`)
	})

	resp, err := s.CreateSupplier(context.Background(), CreateRequest{Name: "Farma SAS", NIT: "900123456"})
	require.NoError(t, err)
	assert.Equal(t, "p1", resp.Provider.ProviderID)
}

func TestCreateBulkSupplierFailure(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/providers/bulk", r.URL.Path)
		http.Error(w, "invalid file", http.StatusUnprocessableEntity)
	})

	_, err := s.CreateBulkSupplier(context.Background(), "s.csv", strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Invalid))
}
