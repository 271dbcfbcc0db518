package leads

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/meridian-crm/meridian-crm/internal/platform/httpx"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	pdf      *PDFRenderer
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, pdf *PDFRenderer) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		pdf:      pdf,
		validate: validator.New(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListLeadsRequest{Limit: 1000}
	q := r.URL.Query()

	if v := q.Get("search"); v != "" {
		req.Search = &v
	}
	if v := q.Get("status"); v != "" {
		status := LeadStatus(v)
		req.Status = &status
	}

	var from, to *time.Time
	if v := q.Get("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = &t
		}
	}
	if v := q.Get("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			to = &t
		}
	}
	dateRange, err := shared.ResolvePeriod(q.Get("period"), from, to, time.Now())
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if !dateRange.From.IsZero() {
		req.DateFrom = &dateRange.From
	}
	if !dateRange.To.IsZero() {
		req.DateTo = &dateRange.To
	}

	result, total, err := h.service.List(r.Context(), req, shared.UserFromContext(r.Context()))
	if err != nil {
		h.logger.Error("list leads failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"leads": result, "total": total})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.leadID(w, r)
	if !ok {
		return
	}
	lead, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, mapErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, lead)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	lead, err := h.service.Create(r.Context(), req, currentUserID(r))
	if err != nil {
		h.logger.Error("create lead failed", slog.Any("error", err))
		httpx.RespondError(w, mapErr(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, lead)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.leadID(w, r)
	if !ok {
		return
	}

	var req UpdateLeadRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	lead, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update lead failed", slog.Any("error", err))
		httpx.RespondError(w, mapErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, lead)
}

func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	id, ok := h.leadID(w, r)
	if !ok {
		return
	}
	doc, err := h.service.ConvertToQuotation(r.Context(), id, currentUser(r))
	if err != nil {
		httpx.RespondError(w, mapErr(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, doc)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.leadID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, mapErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Lead deleted successfully"})
}

func (h *Handler) RenderPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := h.leadID(w, r)
	if !ok {
		return
	}
	lead, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, mapErr(err))
		return
	}

	pdf, err := h.pdf.Render(r.Context(), lead)
	if err != nil {
		h.logger.Error("render lead pdf failed", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="lead-%d.pdf"`, lead.ID))
	_, _ = w.Write(pdf)
}

func (h *Handler) leadID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid lead id", httpx.ErrValidation))
		return 0, false
	}
	return id, true
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fmt.Errorf("%w: lead", httpx.ErrNotFound)
	case errors.Is(err, ErrAlreadyConverted):
		return fmt.Errorf("%w: %v", httpx.ErrInvalidTransition, err)
	}
	return err
}

func currentUserID(r *http.Request) int64 {
	return currentUser(r).UserID
}

func currentUser(r *http.Request) shared.UserContext {
	if user := shared.UserFromContext(r.Context()); user != nil {
		return *user
	}
	return shared.UserContext{}
}
