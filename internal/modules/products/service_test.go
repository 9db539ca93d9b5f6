package products

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medisupply.com/portal/internal/backend"
)

const catalogJSON = `[
 {"sku":"e236","name":"Producto 17","product_type":"Medicamento","batch":"L017","unit_value":3.1,"stock":17},
 {"sku":"q1w2","name":"Insulina Rapida","product_type":"Medicamento","batch":"L056","unit_value":45,"stock":75}
]`

func newService(t *testing.T, h http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewService(backend.New(backend.Config{Service: "products", BaseURL: srv.URL}), nil)
}

func TestGetProducts(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		_, _ = io.WriteString(w, catalogJSON)
	})

	got := s.GetProducts(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, "3.1", got[0].UnitValue.String())
}

func TestBlankSearchEqualsFullList(t *testing.T) {
	var paths []string
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = io.WriteString(w, catalogJSON)
	})

	got := s.SearchProducts(context.Background(), "   ")
	assert.Len(t, got, 2)
	assert.Equal(t, []string{"/"}, paths)
}

func TestSearchProductsSendsTrimmedQuery(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "insulina", r.URL.Query().Get("q"))
		_, _ = io.WriteString(w, `[{"sku":"q1w2","name":"Insulina Rapida"}]`)
	})

	got := s.SearchProducts(context.Background(), " insulina ")
	require.Len(t, got, 1)
	assert.Equal(t, "q1w2", got[0].SKU)
}

func TestSearchFailureFallsBackToEmpty(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	got := s.SearchProducts(context.Background(), "x")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestInventorySearchFilters(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "L017", q.Get("batch"))
		assert.Equal(t, "Bodega Norte", q.Get("warehouse_name"))
		assert.False(t, q.Has("status"))
		_, _ = io.WriteString(w, `[]`)
	})

	got := s.Search(context.Background(), InventoryFilters{Batch: "L017", WarehouseName: "Bodega Norte"})
	assert.Empty(t, got)
}

func TestGetProductBySKU(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/e236":
			_, _ = io.WriteString(w, `{"sku":"e236","name":"Producto 17","stock":17}`)
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	p := s.GetProductBySKU(ctx, "e236")
	require.NotNil(t, p)
	assert.Equal(t, 17, p.Stock)

	assert.Nil(t, s.GetProductBySKU(ctx, "missing"))
	assert.Nil(t, s.GetProductBySKU(ctx, "broken"))
	assert.Nil(t, s.GetProductBySKU(ctx, ""))
}

func TestCreateBulkProduct(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bulk", r.URL.Path)
		_, _ = io.WriteString(w, `{"created":2}`)
	})

	res, err := s.CreateBulkProduct(context.Background(), "p.csv", strings.NewReader("sku\n1\n2\n"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, res["created"])
}
