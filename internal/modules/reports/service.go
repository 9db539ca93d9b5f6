package reports

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"medisupply.com/portal/internal/backend"
)

const serviceName = "reports"

// Service reads seller performance reports from the vendor microservice.
type Service struct {
	client *backend.Client
	logger *slog.Logger
	now    func() time.Time
}

func NewService(client *backend.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger, now: time.Now}
}

// GetSellerReport returns nil when the report cannot be loaded.
func (s *Service) GetSellerReport(ctx context.Context, f Filters) *SellerReport {
	var out SellerReport
	err := s.client.Get(ctx, "/reports", f.Query(), &out)
	return backend.Or(ctx, s.logger, serviceName, "GetSellerReport", &out, err, nil)
}

// GetFilterOptions returns empty option lists on failure.
func (s *Service) GetFilterOptions(ctx context.Context) FilterOptions {
	var out FilterOptions
	err := s.client.Get(ctx, "/reports/filters", nil, &out)
	out = backend.Or(ctx, s.logger, serviceName, "GetFilterOptions", out, err, FilterOptions{})
	if out.Vendors == nil {
		out.Vendors = []FilterOption{}
	}
	if out.Regions == nil {
		out.Regions = []FilterOption{}
	}
	if out.Products == nil {
		out.Products = []FilterOption{}
	}
	return out
}

func (s *Service) GetSellerDetails(ctx context.Context, f Filters) []SellerDetailRow {
	var out []SellerDetailRow
	err := s.client.Get(ctx, "/reports/details", f.Query(), &out)
	out = backend.Or(ctx, s.logger, serviceName, "GetSellerDetails", out, err, nil)
	if out == nil {
		return []SellerDetailRow{}
	}
	return out
}

func (s *Service) ExportPDF(ctx context.Context, f Filters) (Export, error) {
	return s.export(ctx, f, "pdf", "application/pdf")
}

func (s *Service) ExportExcel(ctx context.Context, f Filters) (Export, error) {
	return s.export(ctx, f, "excel", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (s *Service) export(ctx context.Context, f Filters, kind, defaultType string) (Export, error) {
	body, ct, err := s.client.GetBytes(ctx, "/reports/export/"+kind, f.Query())
	if err != nil {
		return Export{}, backend.CommandError("The report could not be exported.", err)
	}
	if ct == "" || ct == "application/octet-stream" {
		ct = defaultType
	}
	ext := "pdf"
	if kind == "excel" {
		ext = "xlsx"
	}
	return Export{
		Filename:    fmt.Sprintf("seller-report-%s.%s", s.now().Format("2006-01-02"), ext),
		ContentType: ct,
		Body:        body,
	}, nil
}
