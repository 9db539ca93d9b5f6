package salesplans

import (
	"context"
	"errors"
	"log/slog"

	"medisupply.com/portal/internal/backend"
	"medisupply.com/portal/internal/shared/apperr"
)

var ErrNoProducts = errors.New("sales plan has no products")

// Service creates sales plans through the vendor microservice.
type Service struct {
	client *backend.Client
	logger *slog.Logger
}

func NewService(client *backend.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

func (s *Service) CreateSalesPlan(ctx context.Context, req CreateRequest) (CreateResponse, error) {
	if len(req.Products) == 0 {
		return CreateResponse{}, &apperr.AppError{
			Kind:      apperr.Invalid,
			PublicMsg: "Add at least one product to the plan.",
			Err:       ErrNoProducts,
		}
	}
	for _, p := range req.Products {
		if p.TargetUnits <= 0 || !p.TargetValue.IsPositive() {
			return CreateResponse{}, apperr.InvalidErr("Product targets must be greater than zero.", map[string]string{"products": p.ProductID})
		}
	}
	var out CreateResponse
	if err := s.client.Post(ctx, "/sales_plan/", req, &out); err != nil {
		return CreateResponse{}, backend.CommandError("The sales plan could not be created.", err)
	}
	return out, nil
}
