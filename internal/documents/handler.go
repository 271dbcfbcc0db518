package documents

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/meridian-crm/meridian-crm/internal/masterdata/items"
	"github.com/meridian-crm/meridian-crm/internal/masterdata/parties"
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

func (h *Handler) list(kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := ListDocumentsRequest{Kind: kind, Limit: 1000}
		q := r.URL.Query()

		if v := q.Get("party_id"); v != "" {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil {
				req.PartyID = &id
			}
		}
		if v := q.Get("status"); v != "" {
			req.Status = &v
		}
		if v := q.Get("search"); v != "" {
			req.Search = &v
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
			h.logger.Error("list documents failed", slog.String("kind", string(kind)), slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"documents": result, "total": total})
	}
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.docID(w, r)
	if !ok {
		return
	}
	doc, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, mapErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) create(kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateDocumentRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
			return
		}
		if err := h.validate.Struct(req); err != nil {
			httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
			return
		}

		doc, err := h.service.Create(r.Context(), kind, req, currentUser(r))
		if err != nil {
			h.logger.Error("create document failed", slog.String("kind", string(kind)), slog.Any("error", err))
			httpx.RespondError(w, mapErr(err))
			return
		}
		httpx.JSON(w, http.StatusCreated, doc)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.docID(w, r)
	if !ok {
		return
	}

	var req UpdateDocumentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	doc, err := h.service.Update(r.Context(), id, req, currentUserID(r))
	if err != nil {
		h.logger.Error("update document failed", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, mapErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.docID(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	doc, err := h.service.UpdateStatus(r.Context(), id, req.Status, currentUserID(r))
	if err != nil {
		httpx.RespondError(w, mapErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) lock(w http.ResponseWriter, r *http.Request) {
	id, ok := h.docID(w, r)
	if !ok {
		return
	}
	doc, err := h.service.Lock(r.Context(), id, currentUserID(r))
	if err != nil {
		httpx.RespondError(w, mapErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) duplicate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.docID(w, r)
	if !ok {
		return
	}
	doc, err := h.service.Duplicate(r.Context(), id, currentUser(r))
	if err != nil {
		httpx.RespondError(w, mapErr(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, doc)
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	id, ok := h.docID(w, r)
	if !ok {
		return
	}
	target, err := kindFromSlug(chi.URLParam(r, "target"))
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	doc, err := h.service.Convert(r.Context(), id, target, currentUser(r))
	if err != nil {
		httpx.RespondError(w, mapErr(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, doc)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.docID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id, currentUserID(r)); err != nil {
		httpx.RespondError(w, mapErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Document deleted successfully"})
}

func (h *Handler) renderPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := h.docID(w, r)
	if !ok {
		return
	}
	doc, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, mapErr(err))
		return
	}

	pdf, err := h.pdf.Render(r.Context(), doc)
	if err != nil {
		h.logger.Error("render pdf failed", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, doc.DocNumber))
	_, _ = w.Write(pdf)
}

func (h *Handler) docID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid document id", httpx.ErrValidation))
		return 0, false
	}
	return id, true
}

// kindFromSlug parses the URL form of a kind (hyphenated, as in
// /convert/proforma-invoice).
func kindFromSlug(slug string) (Kind, error) {
	switch slug {
	case "quotation":
		return KindQuotation, nil
	case "proforma-invoice":
		return KindProformaInvoice, nil
	case "soa":
		return KindSOA, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, slug)
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, parties.ErrNotFound), errors.Is(err, items.ErrNotFound):
		return fmt.Errorf("%w: %v", httpx.ErrNotFound, err)
	case errors.Is(err, ErrLocked), errors.Is(err, ErrInvalidConversion):
		return fmt.Errorf("%w: %v", httpx.ErrInvalidTransition, err)
	case errors.Is(err, ErrUnknownKind), errors.Is(err, ErrInvalidStatus):
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
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
