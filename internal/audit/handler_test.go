package audit

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meridian-crm/meridian-crm/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	entries   []Entry
	lastLimit int
}

func (m *mockRepository) List(ctx context.Context, limit, offset int) ([]Entry, error) {
	m.lastLimit = limit
	if offset >= len(m.entries) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.entries) {
		end = len(m.entries)
	}
	return m.entries[offset:end], nil
}

func newTestRouter(repo Repository) chi.Router {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func doList(t *testing.T, r chi.Router, user *shared.UserContext, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(shared.ContextWithUser(req.Context(), user))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListLogsAdminOnly(t *testing.T) {
	router := newTestRouter(&mockRepository{})

	rec := doList(t, router, &shared.UserContext{UserID: 5, Role: shared.RoleSales}, "/logs")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doList(t, router, &shared.UserContext{UserID: 1, Role: shared.RoleAdmin}, "/logs")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListLogsReturnsEntries(t *testing.T) {
	repo := &mockRepository{entries: []Entry{
		{ID: 2, ActorID: 1, ActorName: "Priya Nair", Action: "update", Entity: "document", EntityID: "14", OccurredAt: time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)},
		{ID: 1, ActorID: 5, ActorName: "Ravi Kulkarni", Action: "create", Entity: "lead", EntityID: "7", OccurredAt: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)},
	}}
	router := newTestRouter(repo)

	rec := doList(t, router, &shared.UserContext{UserID: 1, Role: shared.RoleAdmin}, "/logs")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Logs  []Entry `json:"logs"`
		Total int     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Logs, 2)
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, "Priya Nair", body.Logs[0].ActorName)
	assert.Equal(t, "create", body.Logs[1].Action)
}

func TestListLogsClampsLimit(t *testing.T) {
	repo := &mockRepository{}
	router := newTestRouter(repo)

	rec := doList(t, router, &shared.UserContext{UserID: 1, Role: shared.RoleAdmin}, "/logs?limit=5000")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, maxPageSize, repo.lastLimit)

	rec = doList(t, router, &shared.UserContext{UserID: 1, Role: shared.RoleAdmin}, "/logs?limit=25")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 25, repo.lastLimit)
}
