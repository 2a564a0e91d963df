package analytics

import (
	"context"
	"math"
	"time"

	"venuebook/internal/payments"
	"venuebook/internal/shared/constants"
	"venuebook/internal/shared/pagination"
	"venuebook/internal/shared/utils/response"
	"venuebook/internal/users"
	"venuebook/pkg/cache"
)

const (
	defaultRevenueMonths = 6
	maxRevenueMonths     = 24
	defaultTopVenues     = 10
	maxTopVenues         = 50
)

type UserList = response.Page[users.User]

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Revenue(ctx context.Context, months int) (*RevenueReport, error)
	TopVenues(ctx context.Context, limit int) ([]VenuePerformance, error)

	Users(ctx context.Context, q pagination.Query, f UserQuery) (*UserList, error)
	Reconciliation(ctx context.Context, q pagination.Query) (*payments.PaymentList, error)
}

type service struct {
	repo     Repository
	users    users.Repository
	payments payments.Repository
	cache    cache.Service
	now      func() time.Time
}

func NewService(repo Repository, userRepo users.Repository, paymentRepo payments.Repository, cacheService cache.Service) Service {
	return &service{
		repo:     repo,
		users:    userRepo,
		payments: paymentRepo,
		cache:    cacheService,
		now:      time.Now,
	}
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var dashboard Dashboard
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_ANALYTICS_DASHBOARD, constants.TTL_ANALYTICS, func() (interface{}, error) {
		return s.repo.Dashboard(ctx, s.now().UTC())
	}, &dashboard)
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// monthStart returns the first instant of the month months-1 before now
func monthStart(now time.Time, months int) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()-time.Month(months-1), 1, 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// fillMonths returns one entry per month from start, zeroing months with no payments
func fillMonths(start time.Time, months int, rows []MonthlyRevenue) []MonthlyRevenue {
	byMonth := make(map[string]MonthlyRevenue, len(rows))
	for _, row := range rows {
		byMonth[row.Month] = row
	}

	series := make([]MonthlyRevenue, 0, months)
	for i := 0; i < months; i++ {
		key := start.AddDate(0, i, 0).Format("2006-01")
		row, ok := byMonth[key]
		if !ok {
			row = MonthlyRevenue{Month: key}
		}
		row.Net = round2(row.Gross - row.Refunded)
		series = append(series, row)
	}
	return series
}

func (s *service) Revenue(ctx context.Context, months int) (*RevenueReport, error) {
	if months <= 0 || months > maxRevenueMonths {
		months = defaultRevenueMonths
	}

	var report RevenueReport
	err := s.cache.GetOrSet(ctx, constants.BuildAnalyticsRevenueKey(months), constants.TTL_ANALYTICS, func() (interface{}, error) {
		from := monthStart(s.now(), months)

		rows, err := s.repo.MonthlyRevenue(ctx, from)
		if err != nil {
			return nil, err
		}
		byMethod, err := s.repo.RevenueByMethod(ctx, from)
		if err != nil {
			return nil, err
		}

		out := &RevenueReport{
			Months:   months,
			From:     from,
			Series:   fillMonths(from, months, rows),
			ByMethod: byMethod,
		}
		for _, m := range out.Series {
			out.Total += m.Net
		}
		out.Total = round2(out.Total)
		return out, nil
	}, &report)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *service) TopVenues(ctx context.Context, limit int) ([]VenuePerformance, error) {
	if limit <= 0 || limit > maxTopVenues {
		limit = defaultTopVenues
	}

	var venues []VenuePerformance
	err := s.cache.GetOrSet(ctx, constants.BuildAnalyticsTopVenuesKey(limit), constants.TTL_ANALYTICS, func() (interface{}, error) {
		return s.repo.TopVenues(ctx, limit)
	}, &venues)
	if err != nil {
		return nil, err
	}
	return venues, nil
}

func (s *service) Users(ctx context.Context, q pagination.Query, f UserQuery) (*UserList, error) {
	q.Normalize()
	items, total, err := s.users.List(ctx, q, users.Filter{IsActive: f.IsActive})
	if err != nil {
		return nil, err
	}
	page := response.NewPage(items, q.Page, q.Limit, total)
	return &page, nil
}

// Reconciliation lists captured payments that never became a booking
func (s *service) Reconciliation(ctx context.Context, q pagination.Query) (*payments.PaymentList, error) {
	q.Normalize()
	flagged := true
	items, total, err := s.payments.List(ctx, q, payments.Filters{NeedsReconciliation: &flagged}, nil)
	if err != nil {
		return nil, err
	}
	page := response.NewPage(items, q.Page, q.Limit, total)
	return &page, nil
}
