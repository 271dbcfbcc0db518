package audit

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/meridian-crm/meridian-crm/internal/platform/httpx"
)

const maxPageSize = 1000

type Handler struct {
	logger *slog.Logger
	repo   Repository
}

func NewHandler(logger *slog.Logger, repo Repository) *Handler {
	return &Handler{logger: logger, repo: repo}
}

// List returns the activity trail, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := maxPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxPageSize {
			limit = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}

	entries, err := h.repo.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("list activity logs failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"logs": entries, "total": len(entries)})
}
