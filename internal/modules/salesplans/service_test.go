package salesplans

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medisupply.com/portal/internal/backend"
	"medisupply.com/portal/internal/shared/apperr"
)

func TestCreateSalesPlan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sales_plan/", r.URL.Path)
		_, _ = io.WriteString(w, `{"message":"ok","plan":{"plan_id":"sp1","period":"Q1-2025"}}`)
	}))
	defer srv.Close()
	s := NewService(backend.New(backend.Config{Service: "vendors", BaseURL: srv.URL}), nil)

	resp, err := s.CreateSalesPlan(context.Background(), CreateRequest{
		VendorID: "v1",
		Period:   "Q1-2025",
		Region:   "South America",
		Products: []ProductTarget{{ProductID: "p1", TargetUnits: 10, TargetValue: decimal.NewFromInt(500)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "sp1", resp.Plan.PlanID)
}

func TestCreateSalesPlanValidation(t *testing.T) {
	s := NewService(backend.New(backend.Config{Service: "vendors", BaseURL: "http://127.0.0.1:0"}), nil)

	_, err := s.CreateSalesPlan(context.Background(), CreateRequest{})
	assert.ErrorIs(t, err, ErrNoProducts)

	_, err = s.CreateSalesPlan(context.Background(), CreateRequest{Products: []ProductTarget{{ProductID: "p1"}}})
	assert.True(t, apperr.IsKind(err, apperr.Invalid))
}
