package suppliers

import (
	"context"
	"io"
	"log/slog"

	"medisupply.com/portal/internal/backend"
)

// Service talks to the provider microservice.
type Service struct {
	client *backend.Client
	logger *slog.Logger
}

func NewService(client *backend.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

func (s *Service) CreateSupplier(ctx context.Context, req CreateRequest) (CreateResponse, error) {
	var out CreateResponse
	if err := s.client.Post(ctx, "", req, &out); err != nil {
		return CreateResponse{}, backend.CommandError("The supplier could not be registered.", err)
	}
	return out, nil
}

// CreateBulkSupplier uploads a file of suppliers.
func (s *Service) CreateBulkSupplier(ctx context.Context, filename string, file io.Reader) (map[string]any, error) {
	var out map[string]any
	if err := s.client.Upload(ctx, "/bulk", "file", filename, file, &out); err != nil {
		return nil, backend.CommandError("The supplier file could not be uploaded.", err)
	}
	return out, nil
}
