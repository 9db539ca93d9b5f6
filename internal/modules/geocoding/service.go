// Package geocoding resolves delivery addresses to coordinates with the
// Mapbox geocoding API.
package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"medisupply.com/portal/internal/backend"
)

const (
	serviceName = "geocoding"
	DefaultURL  = "https://api.mapbox.com/geocoding/v5/mapbox.places"
)

type Result struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	PlaceName string  `json:"placeName"`
}

type Service struct {
	client  *backend.Client
	token   string
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewService limits outbound lookups to rps requests per second.
func NewService(client *backend.Client, token string, rps int, logger *slog.Logger) *Service {
	if rps <= 0 {
		rps = 5
	}
	return &Service{
		client:  client,
		token:   token,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		logger:  logger,
	}
}

// GeocodeAddress returns the best match for address in Colombia, or nil when
// nothing matches or the lookup fails.
func (s *Service) GeocodeAddress(ctx context.Context, address string) *Result {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil
	}
	res, err := s.lookup(ctx, address)
	return backend.Or(ctx, s.logger, serviceName, "GeocodeAddress", res, err, nil)
}

func (s *Service) lookup(ctx context.Context, address string) (*Result, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("geocoding: rate limit: %w", err)
	}
	q := url.Values{
		"access_token": {s.token},
		"country":      {"CO"},
		"limit":        {"1"},
		"types":        {"address,place"},
	}
	body, _, err := s.client.GetBytes(ctx, "/"+url.PathEscape(address)+".json", q)
	if err != nil {
		return nil, err
	}
	feature := gjson.GetBytes(body, "features.0")
	if !feature.Exists() {
		return nil, nil
	}
	center := feature.Get("center").Array()
	if len(center) < 2 {
		return nil, fmt.Errorf("geocoding: feature without center")
	}
	return &Result{
		Longitude: center[0].Float(),
		Latitude:  center[1].Float(),
		PlaceName: feature.Get("place_name").String(),
	}, nil
}

// Stop is one geocoded delivery address on a route.
type Stop struct {
	OrderID string
	Address string
	Result  *Result
}

// GeocodeStops geocodes each address in order. Addresses that cannot be
// resolved keep a nil Result.
func (s *Service) GeocodeStops(ctx context.Context, stops []Stop) []Stop {
	out := make([]Stop, len(stops))
	for i, st := range stops {
		st.Result = s.GeocodeAddress(ctx, st.Address)
		out[i] = st
	}
	return out
}
