package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/meridian-crm/meridian-crm/internal/documents"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Query is the common filter for period-scoped reports.
type Query struct {
	Kind   documents.Kind
	Period string
	From   *time.Time
	To     *time.Time
}

func (q Query) resolve() (documents.Kind, shared.DateRange, error) {
	kind := q.Kind
	if kind == "" {
		kind = documents.KindQuotation
	}
	rng, err := shared.ResolvePeriod(q.Period, q.From, q.To, time.Now())
	if err != nil {
		return "", shared.DateRange{}, fmt.Errorf("resolve period: %w", err)
	}
	return kind, rng, nil
}

func (s *Service) ItemSales(ctx context.Context, q Query) ([]ItemSales, error) {
	kind, rng, err := q.resolve()
	if err != nil {
		return nil, err
	}
	return s.repo.ItemSales(ctx, kind, rng)
}

func (s *Service) PartySales(ctx context.Context, q Query) ([]PartySales, error) {
	kind, rng, err := q.resolve()
	if err != nil {
		return nil, err
	}
	return s.repo.PartySales(ctx, kind, rng)
}

func (s *Service) UserSales(ctx context.Context, q Query) ([]UserSales, error) {
	kind, rng, err := q.resolve()
	if err != nil {
		return nil, err
	}
	return s.repo.UserSales(ctx, kind, rng)
}

func (s *Service) LeadConversion(ctx context.Context, q Query) (*LeadConversion, error) {
	_, rng, err := q.resolve()
	if err != nil {
		return nil, err
	}
	return s.repo.LeadConversion(ctx, rng)
}

func (s *Service) PendingLeads(ctx context.Context) ([]PendingLead, error) {
	return s.repo.PendingLeads(ctx)
}

func (s *Service) QuotationAging(ctx context.Context) ([]QuotationAging, error) {
	return s.repo.QuotationAging(ctx)
}

func (s *Service) GSTSummary(ctx context.Context, q Query) ([]GSTSummary, error) {
	kind, rng, err := q.resolve()
	if err != nil {
		return nil, err
	}
	return s.repo.GSTSummary(ctx, kind, rng)
}
