package leads

import (
	"context"
	"errors"
	"fmt"

	"github.com/meridian-crm/meridian-crm/internal/documents"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// ErrAlreadyConverted rejects a second conversion of the same lead.
var ErrAlreadyConverted = errors.New("lead already converted")

// DocumentService is the slice of the documents service a lead conversion
// needs.
type DocumentService interface {
	ConvertLead(ctx context.Context, leadID int64, partyName string, actor shared.UserContext) (*documents.Document, error)
}

type Service struct {
	repo Repository
	docs DocumentService
}

func NewService(repo Repository, docs DocumentService) *Service {
	return &Service{repo: repo, docs: docs}
}

func (s *Service) Create(ctx context.Context, req CreateLeadRequest, createdBy int64) (*Lead, error) {
	lead := Lead{
		PartyName:     req.PartyName,
		ContactPerson: req.ContactPerson,
		Mobile:        req.Mobile,
		Email:         req.Email,
		Source:        req.Source,
		Requirement:   req.Requirement,
		Status:        LeadStatusOpen,
		FollowUpDate:  req.FollowUpDate,
		Remarks:       req.Remarks,
		CreatedBy:     createdBy,
	}

	id, err := s.repo.Create(ctx, lead)
	if err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateLeadRequest) (*Lead, error) {
	updates := make(map[string]interface{})
	if req.PartyName != nil {
		updates["party_name"] = *req.PartyName
	}
	if req.ContactPerson != nil {
		updates["contact_person"] = *req.ContactPerson
	}
	if req.Mobile != nil {
		updates["mobile"] = *req.Mobile
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Source != nil {
		updates["source"] = *req.Source
	}
	if req.Requirement != nil {
		updates["requirement"] = *req.Requirement
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.FollowUpDate != nil {
		updates["follow_up_date"] = *req.FollowUpDate
	}
	if req.Remarks != nil {
		updates["remarks"] = *req.Remarks
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update lead: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

// ConvertToQuotation opens an empty draft quotation carrying the lead's
// party name and marks the lead converted. Converting twice is rejected.
func (s *Service) ConvertToQuotation(ctx context.Context, id int64, actor shared.UserContext) (*documents.Document, error) {
	lead, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	if lead.Status == LeadStatusConverted {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyConverted, lead.PartyName)
	}

	doc, err := s.docs.ConvertLead(ctx, lead.ID, lead.PartyName, actor)
	if err != nil {
		return nil, fmt.Errorf("convert lead: %w", err)
	}

	if err := s.repo.Update(ctx, id, map[string]interface{}{"status": LeadStatusConverted}); err != nil {
		return nil, fmt.Errorf("mark lead converted: %w", err)
	}
	return doc, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Lead, error) {
	return s.repo.Get(ctx, id)
}

// List scopes non-admin users to their own leads.
func (s *Service) List(ctx context.Context, req ListLeadsRequest, user *shared.UserContext) ([]Lead, int, error) {
	if user != nil && !user.IsAdmin() {
		req.CreatedBy = &user.UserID
	}
	return s.repo.List(ctx, req)
}
