package items

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

func (s *Service) Create(ctx context.Context, req CreateItemRequest, createdBy int64) (*Item, error) {
	item := Item{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		UOM:         req.UOM,
		Rate:        req.Rate,
		HSN:         req.HSN,
		GSTPercent:  req.GSTPercent,
		Brand:       req.Brand,
		Category:    req.Category,
		CreatedBy:   createdBy,
	}

	id, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateItemRequest) (*Item, error) {
	updates := make(map[string]interface{})
	if req.Code != nil {
		updates["code"] = *req.Code
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.UOM != nil {
		updates["uom"] = *req.UOM
	}
	if req.Rate != nil {
		updates["rate"] = *req.Rate
	}
	if req.HSN != nil {
		updates["hsn"] = *req.HSN
	}
	if req.GSTPercent != nil {
		updates["gst_percent"] = *req.GSTPercent
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update item: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

// Duplicate copies an existing item under a suffixed code.
func (s *Service) Duplicate(ctx context.Context, id int64, createdBy int64) (*Item, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	copyItem := *existing
	copyItem.Code = existing.Code + "-COPY"
	copyItem.CreatedBy = createdBy

	newID, err := s.repo.Create(ctx, copyItem)
	if err != nil {
		return nil, fmt.Errorf("duplicate item: %w", err)
	}
	return s.repo.Get(ctx, newID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Item, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListItemsRequest) ([]Item, int, error) {
	return s.repo.List(ctx, req)
}
