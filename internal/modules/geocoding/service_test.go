package geocoding

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medisupply.com/portal/internal/backend"
)

func newService(t *testing.T, h http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := backend.New(backend.Config{Service: serviceName, BaseURL: srv.URL, Anonymous: true})
	return NewService(c, "pk.test", 100, nil)
}

func TestGeocodeAddress(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Calle 100 #15-20, Bogota.json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "pk.test", q.Get("access_token"))
		assert.Equal(t, "CO", q.Get("country"))
		assert.Equal(t, "1", q.Get("limit"))
		assert.Equal(t, "address,place", q.Get("types"))
		_, _ = io.WriteString(w, `{"type":"FeatureCollection","features":[{"center":[-74.05,4.68],"place_name":"Calle 100, Bogota"}]}`)
	})

	res := s.GeocodeAddress(context.Background(), "Calle 100 #15-20, Bogota")
	require.NotNil(t, res)
	assert.Equal(t, -74.05, res.Longitude)
	assert.Equal(t, 4.68, res.Latitude)
	assert.Equal(t, "Calle 100, Bogota", res.PlaceName)
}

func TestGeocodeNoFeatures(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"type":"FeatureCollection","features":[]}`)
	})
	assert.Nil(t, s.GeocodeAddress(context.Background(), "nowhere"))
}

func TestGeocodeFailureIsNil(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	assert.Nil(t, s.GeocodeAddress(context.Background(), "Calle 1"))
	assert.Nil(t, s.GeocodeAddress(context.Background(), "  "))
}

func TestGeocodeStopsKeepsOrder(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/A.json" {
			_, _ = io.WriteString(w, `{"features":[{"center":[1,2],"place_name":"A"}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"features":[]}`)
	})

	stops := s.GeocodeStops(context.Background(), []Stop{{OrderID: "o1", Address: "A"}, {OrderID: "o2", Address: "B"}})
	require.Len(t, stops, 2)
	assert.Equal(t, "A", stops[0].Result.PlaceName)
	assert.Nil(t, stops[1].Result)
	assert.Equal(t, "o2", stops[1].OrderID)
}
