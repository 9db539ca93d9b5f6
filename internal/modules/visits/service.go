package visits

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"medisupply.com/portal/internal/backend"
	"medisupply.com/portal/internal/modules/customers"
	"medisupply.com/portal/internal/shared/apperr"
	"medisupply.com/portal/internal/shared/dates"
)

const (
	serviceName = "visits"
	unknown     = "N/A"
)

// Directory lists institutions for the visit join.
type Directory interface {
	GetAll(ctx context.Context) []customers.InstitutionalClient
}

type Service struct {
	client    *backend.Client
	directory Directory
	logger    *slog.Logger
}

func NewService(client *backend.Client, directory Directory, logger *slog.Logger) *Service {
	return &Service{client: client, directory: directory, logger: logger}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (RawVisit, error) {
	iso, err := dates.NormalizeISO(req.VisitDatetime)
	if err != nil {
		return RawVisit{}, apperr.InvalidErr("Enter a valid visit date.", map[string]string{"visit_datetime": "invalid"})
	}
	req.VisitDatetime = iso
	if req.BucketData == nil {
		req.BucketData = []MediaItem{}
	}

	var out RawVisit
	if err := s.client.Post(ctx, "/visits/", req, &out); err != nil {
		return RawVisit{}, backend.CommandError("The visit could not be registered.", err)
	}
	return out, nil
}

// Search returns the visits on the UTC calendar day of date, oldest first,
// each joined with its institution.
func (s *Service) Search(ctx context.Context, date string) (SearchResult, error) {
	day, err := dates.Day(date)
	if err != nil {
		return SearchResult{}, apperr.InvalidErr("Enter a valid date.", map[string]string{"date": "invalid"})
	}

	var all []RawVisit
	fetchErr := s.client.Get(ctx, "/visits/", nil, &all)
	all = backend.Or(ctx, s.logger, serviceName, "Search", all, fetchErr, nil)

	type dated struct {
		v  RawVisit
		at time.Time
	}
	var onDay []dated
	for _, v := range all {
		at, err := dates.Parse(v.VisitDatetime)
		if err != nil || at.Format(dates.DayLayout) != day {
			continue
		}
		onDay = append(onDay, dated{v, at})
	}
	sort.SliceStable(onDay, func(i, j int) bool { return onDay[i].at.Before(onDay[j].at) })

	items := make([]Item, 0, len(onDay))
	if len(onDay) > 0 {
		byID := customers.ByID(s.directory.GetAll(ctx))
		for _, d := range onDay {
			items = append(items, toItem(d.v, byID))
		}
	}
	return SearchResult{Total: len(items), Visits: items}, nil
}

func toItem(v RawVisit, byID map[string]customers.InstitutionalClient) Item {
	c, ok := byID[v.ClientID]
	inst := Institution{ID: v.ClientID, Name: unknown, Country: unknown, Location: unknown}
	if ok {
		inst.Name = orUnknown(c.Name)
		inst.Country = orUnknown(c.Country)
		inst.Location = orUnknown(c.Location)
	}
	media := v.BucketData
	if media == nil {
		media = []MediaItem{}
	}
	return Item{
		VisitID:      v.VisitID,
		Institution:  inst,
		VisitedAt:    v.VisitDatetime,
		Observations: v.Observations,
		ContactName:  v.ContactName,
		MediaItems:   media,
	}
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}
