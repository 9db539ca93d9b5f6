package customers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
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
	return NewService(backend.New(backend.Config{Service: "clients", BaseURL: srv.URL}), nil)
}

func TestGetAll(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		_, _ = io.WriteString(w, `[{"client_id":"c1","name":"Clinica Norte","country":"CO","level":"II"}]`)
	})

	got := s.GetAll(context.Background())
	require.Len(t, got, 1)
	assert.Equal(t, "Clinica Norte", got[0].Name)
}

func TestGetAllFallsBackToEmpty(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	got := s.GetAll(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetAllNullBodyIsEmpty(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `null`)
	})
	assert.Equal(t, []InstitutionalClient{}, s.GetAll(context.Background()))
}

func TestCreateInstitutionalClient(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var req CreateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "IV", req.Level)
		_, _ = io.WriteString(w, `{"mssg":"created","vendor":{"client_id":"c9","name":"Hospital Sur"}}`)
	})

	resp, err := s.CreateInstitutionalClient(context.Background(), CreateRequest{Name: "Hospital Sur", Level: "IV"})
	require.NoError(t, err)
	assert.Equal(t, "created", resp.Message)
	assert.Equal(t, "c9", resp.Client.ClientID)
}

func TestCreateInstitutionalClientConflict(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"tax id exists"}`, http.StatusConflict)
	})

	_, err := s.CreateInstitutionalClient(context.Background(), CreateRequest{Name: "x"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Conflict))
}

func TestByID(t *testing.T) {
	m := ByID([]InstitutionalClient{{ClientID: "a", Name: "A"}, {ClientID: "b", Name: "B"}})
	assert.Equal(t, "B", m["b"].Name)
	_, ok := m["z"]
	assert.False(t, ok)
}
