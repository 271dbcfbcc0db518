package items

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	items  map[int64]Item
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{items: make(map[int64]Item), nextID: 1}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, m)
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Item, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (m *mockRepository) List(ctx context.Context, req ListItemsRequest) ([]Item, int, error) {
	var result []Item
	for id := int64(1); id < m.nextID; id++ {
		if item, ok := m.items[id]; ok {
			result = append(result, item)
		}
	}
	return result, len(result), nil
}

func (m *mockRepository) Create(ctx context.Context, item Item) (int64, error) {
	item.ID = m.nextID
	m.items[m.nextID] = item
	m.nextID++
	return item.ID, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func TestImportCSVNormalizesRows(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	input := strings.Join([]string{
		"item_code,item_name,description,uom,rate,hsn,gst_percent,brand,category",
		"pmp-100,Centrifugal Pump,1HP monoblock,Nos,12500,8413,18,crompton,pumps",
		"vlv-050,Gate Valve,,,not-a-number,8481,abc,,",
	}, "\n")

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(input), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)

	first, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "PMP-100", first.Code)
	assert.Equal(t, "Crompton", first.Brand)
	assert.Equal(t, "Pumps", first.Category)
	assert.Equal(t, 12500.0, first.Rate)
	assert.Equal(t, int64(7), first.CreatedBy)

	second, err := repo.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "VLV-050", second.Code)
	assert.Equal(t, "Nos", second.UOM, "blank uom falls back")
	assert.Zero(t, second.Rate, "unparseable rate coerces to zero")
	assert.Zero(t, second.GSTPercent, "unparseable gst coerces to zero")
}

func TestImportCSVSkipsRowsWithoutCode(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	input := strings.Join([]string{
		"item_code,item_name",
		",Nameless",
		"OK-1,Named",
	}, "\n")

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(input), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "empty item_code")
}

func TestImportCSVRejectsMissingCodeColumn(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("name,rate\nPump,100"), 1)
	require.Error(t, err)
}

func TestExportCSVRoundTrip(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := repo.Create(context.Background(), Item{
		Code: "PMP-100", Name: "Centrifugal Pump", UOM: "Nos",
		Rate: 12500, HSN: "8413", GSTPercent: 18, Brand: "Crompton", Category: "Pumps",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "item_code,item_name")
	assert.Contains(t, out, "PMP-100,Centrifugal Pump")
	assert.Contains(t, out, "12500.00")
}
