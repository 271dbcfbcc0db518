package documents

import (
	"context"
	"testing"
	"time"

	"github.com/meridian-crm/meridian-crm/internal/masterdata/items"
	"github.com/meridian-crm/meridian-crm/internal/masterdata/parties"
	"github.com/meridian-crm/meridian-crm/internal/settings"
	"github.com/meridian-crm/meridian-crm/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// MOCK REPOSITORIES
// ============================================================================

type mockRepository struct {
	docs      map[int64]*Document
	lines     map[int64][]DocumentLine
	nextID    int64
	sequences map[string]int64

	listRequests []ListDocumentsRequest
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		docs:      make(map[int64]*Document),
		lines:     make(map[int64][]DocumentLine),
		sequences: make(map[string]int64),
		nextID:    1,
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, m)
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *doc
	copied.Lines = m.lines[id]
	return &copied, nil
}

func (m *mockRepository) List(ctx context.Context, req ListDocumentsRequest) ([]DocumentWithDetails, int, error) {
	m.listRequests = append(m.listRequests, req)
	var result []DocumentWithDetails
	for _, doc := range m.docs {
		if doc.Kind != req.Kind {
			continue
		}
		if req.CreatedBy != nil && doc.CreatedBy != *req.CreatedBy {
			continue
		}
		result = append(result, DocumentWithDetails{Document: *doc})
	}
	return result, len(result), nil
}

func (m *mockRepository) Create(ctx context.Context, doc Document) (int64, error) {
	id := m.nextID
	m.nextID++
	doc.ID = id
	doc.CreatedAt = time.Now()
	m.docs[id] = &doc
	return id, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	doc, ok := m.docs[id]
	if !ok {
		return ErrNotFound
	}
	if v, ok := updates["status"]; ok {
		doc.Status = v.(string)
	}
	if v, ok := updates["party_id"]; ok {
		doc.PartyID = v.(int64)
	}
	if v, ok := updates["party_name"]; ok {
		doc.PartyName = v.(string)
	}
	if v, ok := updates["tax_type"]; ok {
		doc.TaxType = v.(TaxType)
	}
	if v, ok := updates["subtotal"]; ok {
		doc.Subtotal = v.(float64)
	}
	if v, ok := updates["tax_total"]; ok {
		doc.TaxTotal = v.(float64)
	}
	if v, ok := updates["grand_total"]; ok {
		doc.GrandTotal = v.(float64)
	}
	if v, ok := updates["remarks"]; ok {
		doc.Remarks = v.(string)
	}
	return nil
}

func (m *mockRepository) ReplaceLines(ctx context.Context, documentID int64, lines []DocumentLine) error {
	m.lines[documentID] = lines
	return nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	doc, ok := m.docs[id]
	if !ok {
		return ErrNotFound
	}
	doc.Status = status
	return nil
}

func (m *mockRepository) SetLocked(ctx context.Context, id int64) error {
	doc, ok := m.docs[id]
	if !ok {
		return ErrNotFound
	}
	doc.IsLocked = true
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.docs[id]; !ok {
		return ErrNotFound
	}
	delete(m.docs, id)
	delete(m.lines, id)
	return nil
}

func (m *mockRepository) NextNumber(ctx context.Context, kind Kind) (int64, error) {
	m.sequences[kind.SequenceKey()]++
	return m.sequences[kind.SequenceKey()], nil
}

type mockPartyRepo struct {
	parties map[int64]*parties.Party
}

func (m *mockPartyRepo) WithTx(ctx context.Context, fn func(context.Context, parties.Repository) error) error {
	return fn(ctx, m)
}

func (m *mockPartyRepo) Get(ctx context.Context, id int64) (*parties.Party, error) {
	p, ok := m.parties[id]
	if !ok {
		return nil, parties.ErrNotFound
	}
	return p, nil
}

func (m *mockPartyRepo) List(ctx context.Context, req parties.ListPartiesRequest) ([]parties.Party, int, error) {
	return nil, 0, nil
}

func (m *mockPartyRepo) Create(ctx context.Context, party parties.Party) (int64, error) {
	return 0, nil
}

func (m *mockPartyRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	return nil
}

func (m *mockPartyRepo) Delete(ctx context.Context, id int64) error { return nil }

type mockItemRepo struct {
	items map[int64]*items.Item
}

func (m *mockItemRepo) WithTx(ctx context.Context, fn func(context.Context, items.Repository) error) error {
	return fn(ctx, m)
}

func (m *mockItemRepo) Get(ctx context.Context, id int64) (*items.Item, error) {
	i, ok := m.items[id]
	if !ok {
		return nil, items.ErrNotFound
	}
	return i, nil
}

func (m *mockItemRepo) List(ctx context.Context, req items.ListItemsRequest) ([]items.Item, int, error) {
	return nil, 0, nil
}

func (m *mockItemRepo) Create(ctx context.Context, item items.Item) (int64, error) { return 0, nil }

func (m *mockItemRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	return nil
}

func (m *mockItemRepo) Delete(ctx context.Context, id int64) error { return nil }

type mockSettingsRepo struct {
	cfg settings.Settings
}

func (m *mockSettingsRepo) Get(ctx context.Context) (*settings.Settings, error) {
	cfg := m.cfg
	return &cfg, nil
}

func (m *mockSettingsRepo) Update(ctx context.Context, updates map[string]interface{}) error {
	return nil
}

// ============================================================================
// TEST SETUP
// ============================================================================

var (
	ravi  = shared.UserContext{UserID: 5, Name: "Ravi Kulkarni", Role: shared.RoleSales}
	priya = shared.UserContext{UserID: 9, Name: "Priya Nair", Role: shared.RoleSales}
)

func newTestService() (*Service, *mockRepository) {
	repo := newMockRepository()
	partyRepo := &mockPartyRepo{parties: map[int64]*parties.Party{
		1: {ID: 1, Name: "Sharma Industries", GSTNumber: "27AAPFU0939F1ZV"},
		2: {ID: 2, Name: "Mysuru Pumps", GSTNumber: "29AAPFU0939F1ZV"},
		3: {ID: 3, Name: "No GST Traders"},
	}}
	itemRepo := &mockItemRepo{items: map[int64]*items.Item{
		10: {ID: 10, Code: "PMP-100", Name: "Centrifugal Pump", UOM: "Nos", Rate: 1000, HSN: "8413", GSTPercent: 18},
	}}
	settingsRepo := &mockSettingsRepo{cfg: settings.Settings{
		QuotationPrefix: "QTN-",
		PIPrefix:        "PI-",
		SOAPrefix:       "SOA-",
		PaymentTerms:    "30 days net",
	}}

	svc := NewService(repo, partyRepo, itemRepo, settingsRepo, NewTaxResolver("27"), nil)
	return svc, repo
}

func twoQtyLine() []LineRequest {
	return []LineRequest{{ItemID: ptr(int64(10)), Quantity: flex(2), DiscountPercent: 10}}
}

func ptr[T any](v T) *T { return &v }

func flex(v float64) *FlexFloat {
	f := FlexFloat(v)
	return &f
}

// ============================================================================
// TESTS
// ============================================================================

func TestCreateQuotation(t *testing.T) {
	svc, _ := newTestService()

	doc, err := svc.Create(context.Background(), KindQuotation, CreateDocumentRequest{
		PartyID: 1,
		Lines:   twoQtyLine(),
	}, ravi)
	require.NoError(t, err)

	assert.Equal(t, "QTN-0001/RAVI", doc.DocNumber)
	assert.Equal(t, "Sharma Industries", doc.PartyName)
	assert.Equal(t, TaxTypeCGSTSGST, doc.TaxType)
	assert.False(t, doc.IsLocked)
	assert.Equal(t, "", doc.Status)
	assert.Equal(t, "30 days net", doc.PaymentTerms)

	require.Len(t, doc.Lines, 1)
	assert.InDelta(t, 1800, doc.Lines[0].TaxableValue, 0.001)
	assert.InDelta(t, 324, doc.Lines[0].TaxAmount, 0.001)
	assert.InDelta(t, 2124, doc.GrandTotal, 0.001)
}

func TestCreateResolvesInterStateTax(t *testing.T) {
	svc, _ := newTestService()

	doc, err := svc.Create(context.Background(), KindQuotation, CreateDocumentRequest{PartyID: 2, Lines: twoQtyLine()}, ravi)
	require.NoError(t, err)
	assert.Equal(t, TaxTypeIGST, doc.TaxType)
	// Same amounts either way; only the split label changes.
	assert.InDelta(t, 2124, doc.GrandTotal, 0.001)
}

func TestCreateMissingGSTNumberDefaultsToIGST(t *testing.T) {
	svc, _ := newTestService()

	doc, err := svc.Create(context.Background(), KindQuotation, CreateDocumentRequest{PartyID: 3, Lines: twoQtyLine()}, ravi)
	require.NoError(t, err)
	assert.Equal(t, TaxTypeIGST, doc.TaxType)
}

func TestCreateRejectsLeadKind(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), KindLead, CreateDocumentRequest{PartyID: 1}, ravi)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestCreateNumberingPerKind(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	q1, err := svc.Create(ctx, KindQuotation, CreateDocumentRequest{PartyID: 1}, ravi)
	require.NoError(t, err)
	q2, err := svc.Create(ctx, KindQuotation, CreateDocumentRequest{PartyID: 1}, priya)
	require.NoError(t, err)
	pi, err := svc.Create(ctx, KindProformaInvoice, CreateDocumentRequest{PartyID: 1}, ravi)
	require.NoError(t, err)

	assert.Equal(t, "QTN-0001/RAVI", q1.DocNumber)
	assert.Equal(t, "QTN-0002/PRIY", q2.DocNumber)
	assert.Equal(t, "PI-0001/RAVI", pi.DocNumber)
	assert.Equal(t, StatusPISubmitted, pi.Status)
}

func TestCreateBlankNameFallsBackToGenericSuffix(t *testing.T) {
	svc, _ := newTestService()

	doc, err := svc.Create(context.Background(), KindQuotation, CreateDocumentRequest{PartyID: 1}, shared.UserContext{UserID: 5})
	require.NoError(t, err)
	assert.Equal(t, "QTN-0001/USER", doc.DocNumber)
}

func TestCreateZeroQuantityYieldsZeroTotals(t *testing.T) {
	svc, _ := newTestService()

	doc, err := svc.Create(context.Background(), KindQuotation, CreateDocumentRequest{
		PartyID: 1,
		Lines:   []LineRequest{{ItemName: "Placeholder", Rate: 1000, Quantity: flex(0), GSTPercent: 18}},
	}, ravi)
	require.NoError(t, err)

	require.Len(t, doc.Lines, 1)
	assert.Zero(t, doc.Lines[0].Quantity)
	assert.Zero(t, doc.Lines[0].TaxableValue)
	assert.Zero(t, doc.Lines[0].TaxAmount)
	assert.Zero(t, doc.GrandTotal)
}

func TestCreateOmittedQuantityDefaultsToOne(t *testing.T) {
	svc, _ := newTestService()

	doc, err := svc.Create(context.Background(), KindQuotation, CreateDocumentRequest{
		PartyID: 1,
		Lines:   []LineRequest{{ItemName: "Custom", Rate: 500, GSTPercent: 18}},
	}, ravi)
	require.NoError(t, err)

	require.Len(t, doc.Lines, 1)
	assert.InDelta(t, 1, doc.Lines[0].Quantity, 0.001)
	assert.InDelta(t, 500, doc.Lines[0].TaxableValue, 0.001)
}

func TestUpdateLockedDocumentRejected(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, KindQuotation, CreateDocumentRequest{PartyID: 1, Lines: twoQtyLine()}, ravi)
	require.NoError(t, err)
	repo.docs[doc.ID].IsLocked = true

	_, err = svc.Update(ctx, doc.ID, UpdateDocumentRequest{Remarks: ptr("changed")}, 5)
	assert.ErrorIs(t, err, ErrLocked)
}

func TestUpdateRecalculatesTotals(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, KindQuotation, CreateDocumentRequest{PartyID: 1, Lines: twoQtyLine()}, ravi)
	require.NoError(t, err)

	newLines := []LineRequest{{ItemName: "Custom", Rate: 500, Quantity: flex(1), GSTPercent: 18}}
	updated, err := svc.Update(ctx, doc.ID, UpdateDocumentRequest{Lines: &newLines}, 5)
	require.NoError(t, err)

	assert.InDelta(t, 500, updated.Subtotal, 0.001)
	assert.InDelta(t, 90, updated.TaxTotal, 0.001)
	assert.InDelta(t, 590, updated.GrandTotal, 0.001)
}

func TestUpdateInvalidStatusRejected(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, KindQuotation, CreateDocumentRequest{PartyID: 1}, ravi)
	require.NoError(t, err)

	_, err = svc.Update(ctx, doc.ID, UpdateDocumentRequest{Status: ptr(StatusPIPaymentRecd)}, 5)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestLockIsOneWayAndIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, KindQuotation, CreateDocumentRequest{PartyID: 1, Lines: twoQtyLine()}, ravi)
	require.NoError(t, err)

	locked, err := svc.Lock(ctx, doc.ID, 5)
	require.NoError(t, err)
	assert.True(t, locked.IsLocked)

	// Locking again succeeds without changing anything.
	again, err := svc.Lock(ctx, doc.ID, 5)
	require.NoError(t, err)
	assert.True(t, again.IsLocked)

	// Locked documents still accept status changes.
	moved, err := svc.UpdateStatus(ctx, doc.ID, StatusQuotationSuccessful, 5)
	require.NoError(t, err)
	assert.Equal(t, StatusQuotationSuccessful, moved.Status)
	assert.True(t, moved.IsLocked)
}

func TestDuplicateResetsLockAndStatus(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, KindQuotation, CreateDocumentRequest{PartyID: 1, Lines: twoQtyLine()}, ravi)
	require.NoError(t, err)
	_, err = svc.Lock(ctx, doc.ID, 5)
	require.NoError(t, err)
	repo.docs[doc.ID].Status = StatusQuotationSuccessful

	dup, err := svc.Duplicate(ctx, doc.ID, priya)
	require.NoError(t, err)

	assert.NotEqual(t, doc.ID, dup.ID)
	assert.Equal(t, "QTN-0002/PRIY", dup.DocNumber)
	assert.False(t, dup.IsLocked)
	assert.Equal(t, "", dup.Status)
	assert.Equal(t, int64(9), dup.CreatedBy)
	assert.Equal(t, doc.PartyName, dup.PartyName)
	require.Len(t, dup.Lines, 1)
	assert.InDelta(t, doc.GrandTotal, dup.GrandTotal, 0.001)
}

func TestConvertQuotationToPI(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, KindQuotation, CreateDocumentRequest{PartyID: 1, Lines: twoQtyLine()}, ravi)
	require.NoError(t, err)

	pi, err := svc.Convert(ctx, doc.ID, KindProformaInvoice, ravi)
	require.NoError(t, err)

	assert.Equal(t, KindProformaInvoice, pi.Kind)
	assert.Equal(t, "PI-0001/RAVI", pi.DocNumber)
	assert.Equal(t, StatusPISubmitted, pi.Status)
	assert.False(t, pi.IsLocked)
	require.NotNil(t, pi.SourceDocumentID)
	assert.Equal(t, doc.ID, *pi.SourceDocumentID)
	assert.Equal(t, doc.PartyName, pi.PartyName)
	assert.InDelta(t, doc.GrandTotal, pi.GrandTotal, 0.001)

	// The source stays exactly as it was: unlocked, same status.
	src := repo.docs[doc.ID]
	assert.False(t, src.IsLocked)
	assert.Equal(t, doc.Status, src.Status)
}

func TestConvertOutsideGraphRejected(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, KindQuotation, CreateDocumentRequest{PartyID: 1}, ravi)
	require.NoError(t, err)

	_, err = svc.Convert(ctx, doc.ID, KindQuotation, ravi)
	assert.ErrorIs(t, err, ErrInvalidConversion)
}

func TestConvertLead(t *testing.T) {
	svc, _ := newTestService()

	doc, err := svc.ConvertLead(context.Background(), 44, "Prospect Pvt Ltd", ravi)
	require.NoError(t, err)

	assert.Equal(t, KindQuotation, doc.Kind)
	assert.Equal(t, "QTN-0001/RAVI", doc.DocNumber)
	assert.Equal(t, "Prospect Pvt Ltd", doc.PartyName)
	assert.Equal(t, TaxTypeIGST, doc.TaxType)
	assert.Empty(t, doc.Lines)
	require.NotNil(t, doc.SourceLeadID)
	assert.Equal(t, int64(44), *doc.SourceLeadID)
}

func TestDeleteLockedDocumentRejected(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, KindQuotation, CreateDocumentRequest{PartyID: 1}, ravi)
	require.NoError(t, err)
	_, err = svc.Lock(ctx, doc.ID, 5)
	require.NoError(t, err)

	err = svc.Delete(ctx, doc.ID, 5)
	assert.ErrorIs(t, err, ErrLocked)

	// Unlocked documents delete fine.
	other, err := svc.Create(ctx, KindQuotation, CreateDocumentRequest{PartyID: 1}, ravi)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, other.ID, 5))
	_, err = svc.Get(ctx, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteConvertedSourceAllowed(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, KindQuotation, CreateDocumentRequest{PartyID: 1, Lines: twoQtyLine()}, ravi)
	require.NoError(t, err)
	pi, err := svc.Convert(ctx, doc.ID, KindProformaInvoice, ravi)
	require.NoError(t, err)

	// An unlocked source deletes even after conversion; the target survives.
	require.NoError(t, svc.Delete(ctx, doc.ID, 5))
	_, err = svc.Get(ctx, doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, repo.docs, pi.ID)
}

func TestListScopesNonAdminToOwnDocuments(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, _, err := svc.List(ctx, ListDocumentsRequest{Kind: KindQuotation}, &shared.UserContext{UserID: 7, Role: shared.RoleSales})
	require.NoError(t, err)
	require.Len(t, repo.listRequests, 1)
	require.NotNil(t, repo.listRequests[0].CreatedBy)
	assert.Equal(t, int64(7), *repo.listRequests[0].CreatedBy)

	_, _, err = svc.List(ctx, ListDocumentsRequest{Kind: KindQuotation}, &shared.UserContext{UserID: 7, Role: shared.RoleAdmin})
	require.NoError(t, err)
	assert.Nil(t, repo.listRequests[1].CreatedBy)
}

func TestCreateUnknownPartyRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), KindQuotation, CreateDocumentRequest{PartyID: 99}, ravi)
	assert.ErrorIs(t, err, parties.ErrNotFound)
}
