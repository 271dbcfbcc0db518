package parties

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

func (s *Service) Create(ctx context.Context, req CreatePartyRequest, createdBy int64) (*Party, error) {
	party := Party{
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Pincode:       req.Pincode,
		GSTNumber:     req.GSTNumber,
		ContactPerson: req.ContactPerson,
		Mobile:        req.Mobile,
		Email:         req.Email,
		Status:        PartyStatusActive,
		CreatedBy:     createdBy,
	}

	id, err := s.repo.Create(ctx, party)
	if err != nil {
		return nil, fmt.Errorf("create party: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdatePartyRequest) (*Party, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.Pincode != nil {
		updates["pincode"] = *req.Pincode
	}
	if req.GSTNumber != nil {
		updates["gst_number"] = *req.GSTNumber
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
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update party: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

// Duplicate copies an existing party into a new Active record.
func (s *Service) Duplicate(ctx context.Context, id int64, createdBy int64) (*Party, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get party: %w", err)
	}

	copyParty := *existing
	copyParty.Name = existing.Name + " (Copy)"
	copyParty.Status = PartyStatusActive
	copyParty.CreatedBy = createdBy

	newID, err := s.repo.Create(ctx, copyParty)
	if err != nil {
		return nil, fmt.Errorf("duplicate party: %w", err)
	}
	return s.repo.Get(ctx, newID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Party, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListPartiesRequest) ([]Party, int, error) {
	return s.repo.List(ctx, req)
}
