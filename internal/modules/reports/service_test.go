package reports

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medisupply.com/portal/internal/backend"
	"medisupply.com/portal/internal/shared/apperr"
)

func newService(t *testing.T, h http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	s := NewService(backend.New(backend.Config{Service: "vendors", BaseURL: srv.URL}), nil)
	s.now = func() time.Time { return time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestFiltersQueryOmitsEmpty(t *testing.T) {
	q := Filters{VendorID: "v1", Region: "North"}.Query()
	assert.Equal(t, "region=North&vendorId=v1", q.Encode())
	assert.Empty(t, Filters{}.Query())
}

func TestGetSellerReport(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports", r.URL.Path)
		assert.Equal(t, "2025-01-01", r.URL.Query().Get("startDate"))
		_, _ = io.WriteString(w, `{"vendorId":"v1","totalSales":500,"goalCompletion":62.5,"topProducts":[{"productId":"p","unitsSold":3}],"salesByMonth":[{"month":"Jan","year":2025,"amount":500}]}`)
	})

	rep := s.GetSellerReport(context.Background(), Filters{StartDate: "2025-01-01"})
	require.NotNil(t, rep)
	assert.Equal(t, 62.5, rep.GoalCompletion)
	assert.Equal(t, "500", rep.SalesByMonth[0].Amount.String())
}

func TestReportFallbacks(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	ctx := context.Background()

	assert.Nil(t, s.GetSellerReport(ctx, Filters{}))
	assert.Equal(t, []SellerDetailRow{}, s.GetSellerDetails(ctx, Filters{}))
	opts := s.GetFilterOptions(ctx)
	assert.NotNil(t, opts.Vendors)
	assert.Empty(t, opts.Regions)

	_, err := s.ExportPDF(ctx, Filters{})
	assert.True(t, apperr.IsKind(err, apperr.Unavailable))
}

func TestExportExcel(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports/export/excel", r.URL.Path)
		assert.Equal(t, "v1", r.URL.Query().Get("vendorId"))
		_, _ = w.Write([]byte("PK\x03\x04"))
	})

	exp, err := s.ExportExcel(context.Background(), Filters{VendorID: "v1"})
	require.NoError(t, err)
	assert.Equal(t, "seller-report-2025-11-03.xlsx", exp.Filename)
	assert.Equal(t, []byte("PK\x03\x04"), exp.Body)
	assert.NotEmpty(t, exp.ContentType)
}
