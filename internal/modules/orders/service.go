package orders

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"medisupply.com/portal/internal/backend"
)

const serviceName = "orders"

// Service talks to the orders microservice.
type Service struct {
	client *backend.Client
	logger *slog.Logger
}

func NewService(client *backend.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// GetOrdersByCustomerID lists the orders placed for one client.
func (s *Service) GetOrdersByCustomerID(ctx context.Context, customerID string) []Order {
	if strings.TrimSpace(customerID) == "" {
		return []Order{}
	}
	var out []Order
	err := s.client.Get(ctx, "/client/"+url.PathEscape(customerID), nil, &out)
	return orEmpty(backend.Or(ctx, s.logger, serviceName, "GetOrdersByCustomerID", out, err, nil))
}

func (s *Service) GetOrders(ctx context.Context) []Order {
	var out []Order
	err := s.client.Get(ctx, "/orders", nil, &out)
	return orEmpty(backend.Or(ctx, s.logger, serviceName, "GetOrders", out, err, nil))
}

// GetOrderByID returns nil when the order is unknown or the call fails.
func (s *Service) GetOrderByID(ctx context.Context, id string) *Order {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	var out Order
	err := s.client.Get(ctx, "/orders/"+url.PathEscape(id), nil, &out)
	if backend.IsStatus(err, http.StatusNotFound) || (err == nil && out.ID == "") {
		return nil
	}
	return backend.Or(ctx, s.logger, serviceName, "GetOrderByID", &out, err, nil)
}

func (s *Service) CreateOrder(ctx context.Context, req OrderRequest) (OrderResponse, error) {
	if len(req.Products) == 0 {
		return OrderResponse{}, ErrCartEmpty
	}
	if req.OrderStatus == "" {
		req.OrderStatus = StatusPending
	}
	var out OrderResponse
	if err := s.client.Post(ctx, "/orders/", req, &out); err != nil {
		return OrderResponse{}, backend.CommandError("The order could not be created.", err)
	}
	return out, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status Status) (*Order, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	var out Order
	body := map[string]Status{"status": status}
	if err := s.client.Patch(ctx, "/orders/"+url.PathEscape(id)+"/status", body, &out); err != nil {
		return nil, backend.CommandError("The order status could not be updated.", err)
	}
	return &out, nil
}

func (s *Service) CancelOrder(ctx context.Context, id string) (*Order, error) {
	return s.UpdateOrderStatus(ctx, id, StatusCancelled)
}

func orEmpty(v []Order) []Order {
	if v == nil {
		return []Order{}
	}
	return v
}
