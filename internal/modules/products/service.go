package products

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"medisupply.com/portal/internal/backend"
)

const serviceName = "products"

// Service talks to the product microservice.
type Service struct {
	client *backend.Client
	logger *slog.Logger
}

func NewService(client *backend.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

func (s *Service) GetProducts(ctx context.Context) []Product {
	var out []Product
	err := s.client.Get(ctx, "/", nil, &out)
	return orEmpty(backend.Or(ctx, s.logger, serviceName, "GetProducts", out, err, nil))
}

// SearchProducts matches name, type, sku or batch. A blank query lists the
// whole catalog.
func (s *Service) SearchProducts(ctx context.Context, query string) []Product {
	q := strings.TrimSpace(query)
	if q == "" {
		return s.GetProducts(ctx)
	}
	var out []Product
	err := s.client.Get(ctx, "/search", url.Values{"q": {q}}, &out)
	return orEmpty(backend.Or(ctx, s.logger, serviceName, "SearchProducts", out, err, nil))
}

// Search lists the inventory narrowed by filters.
func (s *Service) Search(ctx context.Context, f InventoryFilters) []Product {
	if f.IsZero() {
		return s.GetProducts(ctx)
	}
	q := url.Values{}
	set := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			q.Set(k, v)
		}
	}
	set("product_name", f.ProductName)
	set("batch", f.Batch)
	set("status", f.Status)
	set("warehouse_name", f.WarehouseName)

	var out []Product
	err := s.client.Get(ctx, "/", q, &out)
	return orEmpty(backend.Or(ctx, s.logger, serviceName, "Search", out, err, nil))
}

// GetProductBySKU returns nil when the product does not exist or the call fails.
func (s *Service) GetProductBySKU(ctx context.Context, sku string) *Product {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil
	}
	var out Product
	err := s.client.Get(ctx, "/"+url.PathEscape(sku), nil, &out)
	if backend.IsStatus(err, http.StatusNotFound) {
		return nil
	}
	if err == nil && out.SKU == "" {
		return nil
	}
	return backend.Or(ctx, s.logger, serviceName, "GetProductBySKU", &out, err, nil)
}

// BulkResult is the product service's reply to a bulk upload.
type BulkResult map[string]any

// CreateBulkProduct uploads a CSV/XLSX file of products.
func (s *Service) CreateBulkProduct(ctx context.Context, filename string, file io.Reader) (BulkResult, error) {
	var out BulkResult
	if err := s.client.Upload(ctx, "/bulk", "file", filename, file, &out); err != nil {
		return nil, backend.CommandError("The product file could not be uploaded.", err)
	}
	return out, nil
}

func orEmpty(v []Product) []Product {
	if v == nil {
		return []Product{}
	}
	return v
}
