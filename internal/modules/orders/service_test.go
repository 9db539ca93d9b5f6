package orders

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
	return NewService(backend.New(backend.Config{Service: "orders", BaseURL: srv.URL}), nil)
}

func TestGetOrdersByCustomerID(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/client/c-42", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":"o1","order_status":"PENDING","products":[{"id":"p","amount":3},{"id":"q","amount":2}]}]`)
	})

	got := s.GetOrdersByCustomerID(context.Background(), "c-42")
	require.Len(t, got, 1)
	assert.Equal(t, StatusPending, got[0].OrderStatus)
	assert.Equal(t, 5, got[0].Units())
}

func TestGetOrdersByCustomerIDFallsBack(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	got := s.GetOrdersByCustomerID(context.Background(), "c-42")
	assert.Equal(t, []Order{}, got)
	assert.Equal(t, []Order{}, s.GetOrdersByCustomerID(context.Background(), " "))
}

func TestGetOrderByID(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/orders/o1" {
			_, _ = io.WriteString(w, `{"id":"o1","city":"Bogota"}`)
			return
		}
		http.NotFound(w, r)
	})

	o := s.GetOrderByID(context.Background(), "o1")
	require.NotNil(t, o)
	assert.Equal(t, "Bogota", o.City)
	assert.Nil(t, s.GetOrderByID(context.Background(), "nope"))
}

func TestCreateOrderDefaultsToPending(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/", r.URL.Path)
		var req OrderRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, StatusPending, req.OrderStatus)
		_, _ = io.WriteString(w, `{"id":"o7","message":"Order created"}`)
	})

	resp, err := s.CreateOrder(context.Background(), OrderRequest{
		Priority: PriorityHigh,
		Products: []OrderProduct{{ID: "sku1", Amount: 2, IDWarehouse: "w1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "o7", resp.ID)
}

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	_, err := s.CreateOrder(context.Background(), OrderRequest{})
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCancelOrderPatchesStatus(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/orders/o1/status", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"status":"CANCELLED"}`, string(b))
		_, _ = io.WriteString(w, `{"id":"o1","order_status":"CANCELLED"}`)
	})

	o, err := s.CancelOrder(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, o.OrderStatus)
}

func TestUpdateOrderStatusErrors(t *testing.T) {
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad", http.StatusBadRequest)
	})

	_, err := s.UpdateOrderStatus(context.Background(), "o1", "LOST")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	_, err = s.UpdateOrderStatus(context.Background(), "o1", StatusShipped)
	assert.True(t, apperr.IsKind(err, apperr.Invalid))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusConfirmed, StatusCancelled))
	assert.False(t, CanTransition(StatusShipped, StatusCancelled))
	assert.True(t, CanTransition(StatusShipped, StatusDelivered))
	assert.False(t, CanTransition(StatusPending, StatusDelivered))
}
