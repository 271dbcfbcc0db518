package settings

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (*Settings, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Update(ctx context.Context, req UpdateSettingsRequest) (*Settings, error) {
	updates := make(map[string]interface{})
	if req.CompanyName != nil {
		updates["company_name"] = *req.CompanyName
	}
	if req.QuotationPrefix != nil {
		updates["quotation_prefix"] = *req.QuotationPrefix
	}
	if req.PIPrefix != nil {
		updates["pi_prefix"] = *req.PIPrefix
	}
	if req.SOAPrefix != nil {
		updates["soa_prefix"] = *req.SOAPrefix
	}
	if req.PaymentTerms != nil {
		updates["payment_terms"] = *req.PaymentTerms
	}
	if req.DeliveryTerms != nil {
		updates["delivery_terms"] = *req.DeliveryTerms
	}
	if req.TermsAndConditions != nil {
		updates["terms_and_conditions"] = *req.TermsAndConditions
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, updates); err != nil {
			return nil, fmt.Errorf("update settings: %w", err)
		}
	}
	return s.repo.Get(ctx)
}
