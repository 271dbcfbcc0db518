package documents

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/meridian-crm/meridian-crm/internal/masterdata/items"
	"github.com/meridian-crm/meridian-crm/internal/masterdata/parties"
	"github.com/meridian-crm/meridian-crm/internal/settings"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

var (
	// ErrLocked rejects mutations of a locked document.
	ErrLocked = errors.New("document is locked")
	// ErrInvalidConversion rejects conversions outside the allowed graph.
	ErrInvalidConversion = errors.New("invalid conversion")
	// ErrInvalidStatus rejects a status that does not belong to the kind.
	ErrInvalidStatus = errors.New("invalid status")
)

const (
	actionCreated    = "CREATED"
	actionUpdated    = "UPDATED"
	actionDeleted    = "DELETED"
	actionLocked     = "LOCKED"
	actionDuplicated = "DUPLICATED"
)

type Service struct {
	repo         Repository
	partyRepo    parties.Repository
	itemRepo     items.Repository
	settingsRepo settings.Repository
	tax          TaxResolver
	audit        *shared.DocumentLogger
}

func NewService(repo Repository, partyRepo parties.Repository, itemRepo items.Repository, settingsRepo settings.Repository, tax TaxResolver, audit *shared.DocumentLogger) *Service {
	return &Service{
		repo:         repo,
		partyRepo:    partyRepo,
		itemRepo:     itemRepo,
		settingsRepo: settingsRepo,
		tax:          tax,
		audit:        audit,
	}
}

func (s *Service) Create(ctx context.Context, kind Kind, req CreateDocumentRequest, actor shared.UserContext) (*Document, error) {
	if kind != KindQuotation && kind != KindProformaInvoice && kind != KindSOA {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	party, err := s.partyRepo.Get(ctx, req.PartyID)
	if err != nil {
		return nil, fmt.Errorf("verify party: %w", err)
	}

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	lines, err := s.buildLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	taxType := s.tax.Resolve(party.GSTNumber)
	totals := CalculateTotals(lines, taxType)

	docDate := req.DocDate
	if docDate.IsZero() {
		docDate = time.Now()
	}

	doc := Document{
		Kind:                kind,
		PartyID:             party.ID,
		PartyName:           party.Name,
		DocDate:             docDate,
		Status:              DefaultStatus(kind),
		TaxType:             taxType,
		Subtotal:            totals.Subtotal,
		TaxTotal:            totals.TaxTotal,
		GrandTotal:          totals.GrandTotal,
		ValidityDays:        req.ValidityDays,
		PaymentTerms:        fallback(req.PaymentTerms, cfg.PaymentTerms),
		DeliveryTerms:       fallback(req.DeliveryTerms, cfg.DeliveryTerms),
		TermsAndConditions:  fallback(req.TermsAndConditions, cfg.TermsAndConditions),
		Remarks:             req.Remarks,
		PartyConfirmationID: req.PartyConfirmationID,
		CreatedBy:           actor.UserID,
	}

	id, err := s.persistNew(ctx, doc, lines, numberPrefix(cfg, kind), creatorSuffix(actor.Name))
	if err != nil {
		return nil, err
	}
	s.record(ctx, actor.UserID, actionCreated, id, map[string]any{"kind": kind})
	return s.repo.Get(ctx, id)
}

// persistNew reserves a document number and inserts the header and lines in
// one transaction. The number carries the creator's suffix so the team can
// see at a glance whose document it is.
func (s *Service) persistNew(ctx context.Context, doc Document, lines []DocumentLine, prefix, suffix string) (int64, error) {
	var id int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		seq, err := repo.NextNumber(ctx, doc.Kind)
		if err != nil {
			return fmt.Errorf("next document number: %w", err)
		}
		doc.DocNumber = fmt.Sprintf("%s%04d/%s", prefix, seq, suffix)

		id, err = repo.Create(ctx, doc)
		if err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := repo.ReplaceLines(ctx, id, lines); err != nil {
			return fmt.Errorf("insert document lines: %w", err)
		}
		return nil
	})
	return id, err
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateDocumentRequest, userID int64) (*Document, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if existing.IsLocked {
		return nil, fmt.Errorf("%w: %s cannot be edited", ErrLocked, existing.DocNumber)
	}

	updates := make(map[string]interface{})

	if req.PartyID != nil && *req.PartyID != existing.PartyID {
		party, err := s.partyRepo.Get(ctx, *req.PartyID)
		if err != nil {
			return nil, fmt.Errorf("verify party: %w", err)
		}
		updates["party_id"] = party.ID
		updates["party_name"] = party.Name
		updates["tax_type"] = s.tax.Resolve(party.GSTNumber)
	}
	if req.DocDate != nil {
		updates["doc_date"] = *req.DocDate
	}
	if req.Status != nil {
		if !ValidStatus(existing.Kind, *req.Status) {
			return nil, fmt.Errorf("%w: %q for %s", ErrInvalidStatus, *req.Status, existing.Kind)
		}
		updates["status"] = *req.Status
	}
	if req.ValidityDays != nil {
		updates["validity_days"] = *req.ValidityDays
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
	if req.Remarks != nil {
		updates["remarks"] = *req.Remarks
	}
	if req.PartyConfirmationID != nil {
		updates["party_confirmation_id"] = *req.PartyConfirmationID
	}

	var lines []DocumentLine
	if req.Lines != nil {
		lines, err = s.buildLines(ctx, *req.Lines)
		if err != nil {
			return nil, err
		}
		taxType := existing.TaxType
		if v, ok := updates["tax_type"]; ok {
			taxType = v.(TaxType)
		}
		totals := CalculateTotals(lines, taxType)
		updates["subtotal"] = totals.Subtotal
		updates["tax_total"] = totals.TaxTotal
		updates["grand_total"] = totals.GrandTotal
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if len(updates) > 0 {
			if err := repo.Update(ctx, id, updates); err != nil {
				return err
			}
		}
		if req.Lines != nil {
			if err := repo.ReplaceLines(ctx, id, lines); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}

	s.record(ctx, userID, actionUpdated, id, map[string]any{"kind": existing.Kind})
	return s.repo.Get(ctx, id)
}

// UpdateStatus moves a document through its workflow pipeline. The status
// pipeline is independent of the lock flag, so locked documents still
// accept it.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string, userID int64) (*Document, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if !ValidStatus(existing.Kind, status) {
		return nil, fmt.Errorf("%w: %q for %s", ErrInvalidStatus, status, existing.Kind)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	s.record(ctx, userID, actionUpdated, id, map[string]any{"status": status})
	return s.repo.Get(ctx, id)
}

// Lock freezes a document. Locking an already-locked document is a no-op,
// and there is no way back to the editable state.
func (s *Service) Lock(ctx context.Context, id int64, userID int64) (*Document, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if existing.IsLocked {
		return existing, nil
	}

	if err := s.repo.SetLocked(ctx, id); err != nil {
		return nil, fmt.Errorf("lock document: %w", err)
	}
	s.record(ctx, userID, actionLocked, id, map[string]any{"doc_number": existing.DocNumber})
	return s.repo.Get(ctx, id)
}

// Duplicate copies a document into a fresh unlocked draft: new number,
// today's date, the kind's default status, same party and lines.
func (s *Service) Duplicate(ctx context.Context, id int64, actor shared.UserContext) (*Document, error) {
	src, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	doc := *src
	doc.ID = 0
	doc.IsLocked = false
	doc.Status = DefaultStatus(src.Kind)
	doc.DocDate = time.Now()
	doc.SourceDocumentID = nil
	doc.SourceLeadID = nil
	doc.CreatedBy = actor.UserID

	newID, err := s.persistNew(ctx, doc, copyLines(src.Lines), numberPrefix(cfg, src.Kind), creatorSuffix(actor.Name))
	if err != nil {
		return nil, err
	}
	s.record(ctx, actor.UserID, actionDuplicated, newID, map[string]any{"source_id": src.ID})
	return s.repo.Get(ctx, newID)
}

// Convert creates a new draft of the target kind carrying the party and
// lines of the source. The source document is left untouched: it is not
// locked, and its status does not change.
func (s *Service) Convert(ctx context.Context, id int64, target Kind, actor shared.UserContext) (*Document, error) {
	src, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if !CanConvert(src.Kind, target) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidConversion, src.Kind, target)
	}

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	sourceID := src.ID
	doc := *src
	doc.ID = 0
	doc.Kind = target
	doc.IsLocked = false
	doc.Status = DefaultStatus(target)
	doc.DocDate = time.Now()
	doc.SourceDocumentID = &sourceID
	doc.SourceLeadID = nil
	doc.CreatedBy = actor.UserID

	newID, err := s.persistNew(ctx, doc, copyLines(src.Lines), numberPrefix(cfg, target), creatorSuffix(actor.Name))
	if err != nil {
		return nil, err
	}
	s.record(ctx, actor.UserID, "CREATED_FROM_"+src.Kind.SequenceKey(), newID, map[string]any{"source_id": src.ID})
	return s.repo.Get(ctx, newID)
}

// ConvertLead opens a quotation for a lead that has no party master record
// yet. The quotation starts empty, with the lead's free-text party name and
// inter-state tax until a real party is attached.
func (s *Service) ConvertLead(ctx context.Context, leadID int64, partyName string, actor shared.UserContext) (*Document, error) {
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	doc := Document{
		Kind:               KindQuotation,
		PartyName:          partyName,
		DocDate:            time.Now(),
		Status:             DefaultStatus(KindQuotation),
		TaxType:            TaxTypeIGST,
		PaymentTerms:       cfg.PaymentTerms,
		DeliveryTerms:      cfg.DeliveryTerms,
		TermsAndConditions: cfg.TermsAndConditions,
		SourceLeadID:       &leadID,
		CreatedBy:          actor.UserID,
	}

	id, err := s.persistNew(ctx, doc, nil, cfg.QuotationPrefix, creatorSuffix(actor.Name))
	if err != nil {
		return nil, err
	}
	s.record(ctx, actor.UserID, "CREATED_FROM_LEAD", id, map[string]any{"lead_id": leadID})
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}
	if existing.IsLocked {
		return fmt.Errorf("%w: %s cannot be deleted", ErrLocked, existing.DocNumber)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	s.record(ctx, userID, actionDeleted, id, map[string]any{"doc_number": existing.DocNumber})
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Document, error) {
	return s.repo.Get(ctx, id)
}

// List applies role scoping before hitting the repository: non-admin users
// only ever see their own documents.
func (s *Service) List(ctx context.Context, req ListDocumentsRequest, user *shared.UserContext) ([]DocumentWithDetails, int, error) {
	if user != nil && !user.IsAdmin() {
		req.CreatedBy = &user.UserID
	}
	return s.repo.List(ctx, req)
}

// buildLines turns line requests into calculated snapshot lines. A request
// naming an item pulls the catalog snapshot first, then request values win
// wherever the caller supplied one.
func (s *Service) buildLines(ctx context.Context, reqs []LineRequest) ([]DocumentLine, error) {
	lines := make([]DocumentLine, 0, len(reqs))
	for i, lr := range reqs {
		var line DocumentLine
		if lr.ItemID != nil {
			item, err := s.itemRepo.Get(ctx, *lr.ItemID)
			if err != nil {
				return nil, fmt.Errorf("snapshot item %d: %w", *lr.ItemID, err)
			}
			line = SnapshotLine(*item)
		}

		if lr.ItemCode != "" {
			line.ItemCode = lr.ItemCode
		}
		if lr.ItemName != "" {
			line.ItemName = lr.ItemName
		}
		if lr.Description != "" {
			line.Description = lr.Description
		}
		if lr.HSN != "" {
			line.HSN = lr.HSN
		}
		if lr.UOM != "" {
			line.UOM = lr.UOM
		}
		if lr.Rate.Value() > 0 {
			line.Rate = lr.Rate.Value()
		}
		// A supplied quantity wins even when it is zero; only an absent
		// quantity falls back to 1.
		switch {
		case lr.Quantity != nil:
			line.Quantity = lr.Quantity.Value()
		case line.Quantity <= 0:
			line.Quantity = 1
		}
		line.DiscountPercent = lr.DiscountPercent.Value()
		if lr.GSTPercent.Value() > 0 {
			line.GSTPercent = lr.GSTPercent.Value()
		}

		line.LineOrder = lr.LineOrder
		if line.LineOrder == 0 {
			line.LineOrder = i + 1
		}

		CalculateLine(&line)
		lines = append(lines, line)
	}
	return lines, nil
}

func copyLines(src []DocumentLine) []DocumentLine {
	lines := make([]DocumentLine, 0, len(src))
	for _, line := range src {
		line.ID = 0
		line.DocumentID = 0
		lines = append(lines, line)
	}
	return lines
}

func (s *Service) record(ctx context.Context, actorID int64, action string, docID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.DocumentLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "document",
		EntityID: strconv.FormatInt(docID, 10),
		Meta:     meta,
	})
}

// creatorSuffix is the uppercased first four characters of the creator's
// name, carried in every document number.
func creatorSuffix(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "USER"
	}
	runes := []rune(strings.ToUpper(name))
	if len(runes) > 4 {
		runes = runes[:4]
	}
	return string(runes)
}

func numberPrefix(cfg *settings.Settings, kind Kind) string {
	switch kind {
	case KindProformaInvoice:
		return cfg.PIPrefix
	case KindSOA:
		return cfg.SOAPrefix
	}
	return cfg.QuotationPrefix
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
