package reports

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/meridian-crm/meridian-crm/internal/documents"
	"github.com/meridian-crm/meridian-crm/internal/platform/httpx"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) query(r *http.Request) Query {
	q := r.URL.Query()
	query := Query{Period: q.Get("period")}

	if v := q.Get("kind"); v != "" {
		if kind, err := documents.ParseKind(v); err == nil {
			query.Kind = kind
		}
	}
	if v := q.Get("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			query.From = &t
		}
	}
	if v := q.Get("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			query.To = &t
		}
	}
	return query
}

func wantsCSV(r *http.Request) bool {
	return r.URL.Query().Get("format") == "csv"
}

func csvHeaders(w http.ResponseWriter, name string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, name))
}

func (h *Handler) respondErr(w http.ResponseWriter, name string, err error) {
	if errors.Is(err, shared.ErrInvalidPeriod) {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	h.logger.Error("report failed", slog.String("report", name), slog.Any("error", err))
	httpx.RespondError(w, err)
}

func (h *Handler) ItemSales(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ItemSales(r.Context(), h.query(r))
	if err != nil {
		h.respondErr(w, "item_sales", err)
		return
	}
	if wantsCSV(r) {
		csvHeaders(w, "item_sales")
		_ = writeItemSalesCSV(w, rows)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (h *Handler) PartySales(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.PartySales(r.Context(), h.query(r))
	if err != nil {
		h.respondErr(w, "party_sales", err)
		return
	}
	if wantsCSV(r) {
		csvHeaders(w, "party_sales")
		_ = writePartySalesCSV(w, rows)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (h *Handler) UserSales(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.UserSales(r.Context(), h.query(r))
	if err != nil {
		h.respondErr(w, "user_sales", err)
		return
	}
	if wantsCSV(r) {
		csvHeaders(w, "user_sales")
		_ = writeUserSalesCSV(w, rows)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (h *Handler) LeadConversion(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.LeadConversion(r.Context(), h.query(r))
	if err != nil {
		h.respondErr(w, "lead_conversion", err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) PendingLeads(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.PendingLeads(r.Context())
	if err != nil {
		h.respondErr(w, "pending_leads", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (h *Handler) QuotationAging(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.QuotationAging(r.Context())
	if err != nil {
		h.respondErr(w, "quotation_aging", err)
		return
	}
	if wantsCSV(r) {
		csvHeaders(w, "quotation_aging")
		_ = writeQuotationAgingCSV(w, rows)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (h *Handler) GSTSummary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.GSTSummary(r.Context(), h.query(r))
	if err != nil {
		h.respondErr(w, "gst_summary", err)
		return
	}
	if wantsCSV(r) {
		csvHeaders(w, "gst_summary")
		_ = writeGSTSummaryCSV(w, rows)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"rows": rows})
}
