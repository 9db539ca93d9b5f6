package sellers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"medisupply.com/portal/internal/backend"
	"medisupply.com/portal/internal/modules/customers"
)

const serviceName = "sellers"

// Service talks to the vendor microservice.
type Service struct {
	client *backend.Client
	logger *slog.Logger
}

func NewService(client *backend.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

func (s *Service) RegisterSeller(ctx context.Context, req RegisterSellerRequest) (RegisterSellerResponse, error) {
	var out RegisterSellerResponse
	if err := s.client.Post(ctx, "/", req, &out); err != nil {
		return RegisterSellerResponse{}, backend.CommandError("The seller could not be registered.", err)
	}
	return out, nil
}

func (s *Service) GetVendors(ctx context.Context) []Vendor {
	var out []Vendor
	err := s.client.Get(ctx, "/", nil, &out)
	out = backend.Or(ctx, s.logger, serviceName, "GetVendors", out, err, nil)
	if out == nil {
		return []Vendor{}
	}
	return out
}

// GetMyClients lists the institutions assigned to a vendor.
func (s *Service) GetMyClients(ctx context.Context, vendorID string) []customers.InstitutionalClient {
	if strings.TrimSpace(vendorID) == "" {
		return []customers.InstitutionalClient{}
	}
	var out []customers.InstitutionalClient
	err := s.client.Get(ctx, "/"+url.PathEscape(vendorID)+"/clients", nil, &out)
	out = backend.Or(ctx, s.logger, serviceName, "GetMyClients", out, err, nil)
	if out == nil {
		return []customers.InstitutionalClient{}
	}
	return out
}

// GetVendorReport returns nil when no report exists or the call fails.
func (s *Service) GetVendorReport(ctx context.Context, vendorID string) *SellerReport {
	if strings.TrimSpace(vendorID) == "" {
		return nil
	}
	var out SellerReport
	err := s.client.Get(ctx, "/"+url.PathEscape(vendorID)+"/report", nil, &out)
	if backend.IsStatus(err, http.StatusNotFound) {
		return nil
	}
	return backend.Or(ctx, s.logger, serviceName, "GetVendorReport", &out, err, nil)
}
