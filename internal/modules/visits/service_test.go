package visits

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
	"medisupply.com/portal/internal/shared/apperr"
)

type stubDirectory []customers.InstitutionalClient

func (d stubDirectory) GetAll(context.Context) []customers.InstitutionalClient { return d }

const visitsJSON = `[
 {"visit_id":"v3","client_id":"c1","visit_datetime":"2025-10-20T15:30:00Z","contact_name":"Dra. Ruiz"},
 {"visit_id":"v1","client_id":"c2","visit_datetime":"2025-10-20T08:00:00.000Z","bucket_data":[{"key":"media/a-foto.jpg","url":"/uploads/media/a-foto.jpg"}]},
 {"visit_id":"v2","client_id":"c9","visit_datetime":"2025-10-21T09:00:00Z"},
 {"visit_id":"v4","client_id":"c1","visit_datetime":"garbage"}
]`

func newService(t *testing.T, dir Directory, h http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewService(backend.New(backend.Config{Service: "vendors", BaseURL: srv.URL}), dir, nil)
}

func TestSearchFiltersSortsAndJoins(t *testing.T) {
	dir := stubDirectory{
		{ClientID: "c1", Name: "Clinica Norte", Country: "CO", Location: "Bogota"},
		{ClientID: "c2", Name: "Hospital Sur"},
	}
	s := newService(t, dir, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/visits/", r.URL.Path)
		_, _ = io.WriteString(w, visitsJSON)
	})

	res, err := s.Search(context.Background(), "2025-10-20")
	require.NoError(t, err)
	require.Equal(t, 2, res.Total)

	assert.Equal(t, "v1", res.Visits[0].VisitID)
	assert.Equal(t, "Hospital Sur", res.Visits[0].Institution.Name)
	assert.Equal(t, "N/A", res.Visits[0].Institution.Country)
	assert.Len(t, res.Visits[0].MediaItems, 1)

	assert.Equal(t, "v3", res.Visits[1].VisitID)
	assert.Equal(t, "Bogota", res.Visits[1].Institution.Location)
	assert.NotNil(t, res.Visits[1].MediaItems)
}

func TestSearchUnknownInstitution(t *testing.T) {
	s := newService(t, stubDirectory{}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, visitsJSON)
	})

	res, err := s.Search(context.Background(), "2025-10-21T23:00:00Z")
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	inst := res.Visits[0].Institution
	assert.Equal(t, Institution{ID: "c9", Name: "N/A", Country: "N/A", Location: "N/A"}, inst)
}

func TestSearchBackendFailureIsEmpty(t *testing.T) {
	s := newService(t, stubDirectory{}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	res, err := s.Search(context.Background(), "2025-10-20")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, res.Visits)
}

func TestSearchRejectsBadDate(t *testing.T) {
	s := newService(t, stubDirectory{}, func(w http.ResponseWriter, r *http.Request) {})
	_, err := s.Search(context.Background(), "yesterday")
	assert.True(t, apperr.IsKind(err, apperr.Invalid))
}

func TestCreateNormalisesDate(t *testing.T) {
	s := newService(t, stubDirectory{}, func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2025-10-20T14:05:00.000Z", req.VisitDatetime)
		assert.NotNil(t, req.BucketData)
		_, _ = io.WriteString(w, `{"visit_id":"v10"}`)
	})

	v, err := s.Create(context.Background(), CreateRequest{ClientID: "c1", VisitDatetime: "2025-10-20T14:05"})
	require.NoError(t, err)
	assert.Equal(t, "v10", v.VisitID)
}
