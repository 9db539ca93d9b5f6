package customers

import (
	"context"
	"log/slog"

	"medisupply.com/portal/internal/backend"
)

const serviceName = "customers"

// Service talks to the client microservice.
type Service struct {
	client *backend.Client
	logger *slog.Logger
}

func NewService(client *backend.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// GetAll lists every institution; an empty list on failure.
func (s *Service) GetAll(ctx context.Context) []InstitutionalClient {
	var out []InstitutionalClient
	err := s.client.Get(ctx, "/", nil, &out)
	return nonNil(backend.Or(ctx, s.logger, serviceName, "GetAll", out, err, []InstitutionalClient{}))
}

// ByID indexes institutions by client id.
func ByID(list []InstitutionalClient) map[string]InstitutionalClient {
	m := make(map[string]InstitutionalClient, len(list))
	for _, c := range list {
		m[c.ClientID] = c
	}
	return m
}

func (s *Service) CreateInstitutionalClient(ctx context.Context, req CreateRequest) (CreateResponse, error) {
	var out CreateResponse
	if err := s.client.Post(ctx, "", req, &out); err != nil {
		return CreateResponse{}, backend.CommandError("The institution could not be registered.", err)
	}
	return out, nil
}

func nonNil(v []InstitutionalClient) []InstitutionalClient {
	if v == nil {
		return []InstitutionalClient{}
	}
	return v
}
