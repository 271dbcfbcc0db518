package leads

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/meridian-crm/meridian-crm/internal/settings"
	"github.com/meridian-crm/meridian-crm/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSettingsRepo struct {
	cfg settings.Settings
}

func (f *fixedSettingsRepo) Get(ctx context.Context) (*settings.Settings, error) {
	copied := f.cfg
	return &copied, nil
}

func (f *fixedSettingsRepo) Update(ctx context.Context, updates map[string]interface{}) error {
	return nil
}

func TestRenderLeadSummary(t *testing.T) {
	var postedHTML string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		postedHTML = string(body)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	renderer := NewPDFRenderer(report.NewClient(srv.URL), &fixedSettingsRepo{cfg: settings.Settings{CompanyName: "Meridian Traders"}})

	followUp := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	lead := &Lead{
		ID:            7,
		PartyName:     "Acme Industries",
		ContactPerson: "Ravi Kulkarni",
		Mobile:        "9876543210",
		Source:        "Referral",
		Requirement:   "200 units of SKU-1",
		Status:        LeadStatusOpen,
		FollowUpDate:  &followUp,
		CreatedAt:     time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	pdf, err := renderer.Render(context.Background(), lead)
	require.NoError(t, err)
	assert.Contains(t, string(pdf), "%PDF")

	assert.Contains(t, postedHTML, "Meridian Traders")
	assert.Contains(t, postedHTML, "LEAD INFORMATION")
	assert.Contains(t, postedHTML, "Acme Industries")
	assert.Contains(t, postedHTML, "Ravi Kulkarni")
	assert.Contains(t, postedHTML, "200 units of SKU-1")
	assert.Contains(t, postedHTML, "10 Apr 2025")
}
