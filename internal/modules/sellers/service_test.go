package sellers

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
	"medisupply.com/portal/internal/modules/customers"
)

func newService(t *testing.T, h http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewService(backend.New(backend.Config{Service: "vendors", BaseURL: srv.URL}), nil)
}

func TestVendorInstitutionsDecodeBothShapes(t *testing.T) {
	var vs []Vendor
	err := json.Unmarshal([]byte(`[
		{"vendor_id":"v1","name":"Ana","institutions":["Clinica A","Clinica B"]},
		{"vendor_id":"v2","name":"Luis","institutions":[{"name":"Hospital C"}]},
		{"vendor_id":"v3","name":"Eva"}
	]`), &vs)
	require.NoError(t, err)

	assert.Equal(t, []string{"Clinica A", "Clinica B"}, vs[0].Institutions)
	assert.Equal(t, []string{"Hospital C"}, vs[1].Institutions)
	assert.Empty(t, vs[2].Institutions)
	assert.Equal(t, "Luis", vs[1].Name)
}

func TestGetVendorsFallsBack(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.Equal(t, []Vendor{}, s.GetVendors(context.Background()))
}

func TestGetMyClients(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v-1/clients", r.URL.Path)
		_, _ = io.WriteString(w, `[{"client_id":"c1","name":"Clinica Norte"}]`)
	})

	got := s.GetMyClients(context.Background(), "v-1")
	assert.Equal(t, []customers.InstitutionalClient{{ClientID: "c1", Name: "Clinica Norte"}}, got)
	assert.Equal(t, []customers.InstitutionalClient{}, s.GetMyClients(context.Background(), ""))
}

func TestGetVendorReport(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v-1/report":
			_, _ = io.WriteString(w, `{"vendor_id":"v-1","total_sales":1200.5,"target_value":1000,"remaining_to_goal":0,"sold_products":[{"id":"p1","name":"Gasas","quantity":40}]}`)
		default:
			http.NotFound(w, r)
		}
	})

	rep := s.GetVendorReport(context.Background(), "v-1")
	require.NotNil(t, rep)
	assert.Equal(t, "1200.5", rep.TotalSales.String())
	assert.True(t, rep.GoalReached())
	assert.Len(t, rep.SoldProducts, 1)

	assert.Nil(t, s.GetVendorReport(context.Background(), "v-2"))
}

func TestRegisterSeller(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/", r.URL.Path)
		_, _ = io.WriteString(w, `{"mssg":"ok","vendor":{"vendor_id":"v9","name":"Ana","email":"ana@x.co","institutions":["Clinica A"]}}`)
	})

	resp, err := s.RegisterSeller(context.Background(), RegisterSellerRequest{Name: "Ana", Email: "ana@x.co"})
	require.NoError(t, err)
	assert.Equal(t, "v9", resp.Vendor.VendorID)
	assert.Equal(t, []string{"Clinica A"}, resp.Vendor.Institutions)
}
