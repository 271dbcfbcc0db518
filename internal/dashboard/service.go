package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meridian-crm/meridian-crm/internal/documents"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Stats is the aggregate the dashboard page renders.
type Stats struct {
	Period           string         `json:"period"`
	Leads            map[string]int `json:"leads"`
	Quotations       map[string]int `json:"quotations"`
	ProformaInvoices map[string]int `json:"proforma_invoices"`
	SOA              map[string]int `json:"soa"`
	QuotationValue   float64        `json:"quotation_value"`
	PIValue          float64        `json:"pi_value"`
	SOAValue         float64        `json:"soa_value"`
	TotalParties     int            `json:"total_parties"`
	TotalItems       int            `json:"total_items"`
	GeneratedAt      time.Time      `json:"generated_at"`
}

type Service struct {
	repo  Repository
	cache *Cache
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// GetStats assembles the dashboard aggregate, fanning the count queries out
// in parallel. Results are cached per period and user scope.
func (s *Service) GetStats(ctx context.Context, period string, from, to *time.Time, user *shared.UserContext) (*Stats, error) {
	rng, err := shared.ResolvePeriod(period, from, to, time.Now())
	if err != nil {
		return nil, fmt.Errorf("resolve period: %w", err)
	}

	var createdBy *int64
	scope := "all"
	if user != nil && !user.IsAdmin() {
		createdBy = &user.UserID
		scope = strconv.FormatInt(user.UserID, 10)
	}

	key, err := s.cache.BuildKey(ctx, "dashboard", "stats", period, scope, rng.From.Format("20060102"), rng.To.Format("20060102"))
	if err != nil {
		return nil, err
	}

	var stats Stats
	err = s.cache.FetchJSON(ctx, key, &stats, func(ctx context.Context) (interface{}, error) {
		return s.loadStats(ctx, period, rng, createdBy)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *Service) loadStats(ctx context.Context, period string, rng shared.DateRange, createdBy *int64) (*Stats, error) {
	stats := &Stats{Period: period, GeneratedAt: time.Now()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := s.repo.CountLeadsByStatus(ctx, rng, createdBy)
		stats.Leads = counts
		return err
	})
	g.Go(func() error {
		counts, err := s.repo.CountDocumentsByStatus(ctx, documents.KindQuotation, rng, createdBy)
		stats.Quotations = counts
		return err
	})
	g.Go(func() error {
		counts, err := s.repo.CountDocumentsByStatus(ctx, documents.KindProformaInvoice, rng, createdBy)
		stats.ProformaInvoices = counts
		return err
	})
	g.Go(func() error {
		counts, err := s.repo.CountDocumentsByStatus(ctx, documents.KindSOA, rng, createdBy)
		stats.SOA = counts
		return err
	})
	g.Go(func() error {
		value, err := s.repo.DocumentValue(ctx, documents.KindQuotation, rng, createdBy)
		stats.QuotationValue = value
		return err
	})
	g.Go(func() error {
		value, err := s.repo.DocumentValue(ctx, documents.KindProformaInvoice, rng, createdBy)
		stats.PIValue = value
		return err
	})
	g.Go(func() error {
		value, err := s.repo.DocumentValue(ctx, documents.KindSOA, rng, createdBy)
		stats.SOAValue = value
		return err
	})
	g.Go(func() error {
		count, err := s.repo.CountParties(ctx)
		stats.TotalParties = count
		return err
	})
	g.Go(func() error {
		count, err := s.repo.CountItems(ctx)
		stats.TotalItems = count
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard stats: %w", err)
	}
	return stats, nil
}

// RecentActivity returns the latest entries of the document action log.
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]Activity, error) {
	return s.repo.RecentActivity(ctx, limit)
}

// Invalidate bumps the cache version after document writes.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}
