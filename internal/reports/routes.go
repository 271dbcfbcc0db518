package reports

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/item-sales", h.ItemSales)
		r.Get("/party-sales", h.PartySales)
		r.Get("/user-sales", h.UserSales)
		r.Get("/lead-conversion", h.LeadConversion)
		r.Get("/pending-leads", h.PendingLeads)
		r.Get("/quotation-aging", h.QuotationAging)
		r.Get("/gst-summary", h.GSTSummary)
	})
}
