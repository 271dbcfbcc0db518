package documents

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	h.mountKind(r, "/quotations", KindQuotation)
	h.mountKind(r, "/proforma-invoices", KindProformaInvoice)
	h.mountKind(r, "/soa", KindSOA)
}

func (h *Handler) mountKind(r chi.Router, prefix string, kind Kind) {
	r.Route(prefix, func(r chi.Router) {
		r.Get("/", h.list(kind))
		r.Post("/", h.create(kind))
		r.Get("/{id}", h.show)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
		r.Patch("/{id}/status", h.updateStatus)
		r.Post("/{id}/lock", h.lock)
		r.Post("/{id}/duplicate", h.duplicate)
		r.Post("/{id}/convert/{target}", h.convert)
		r.Get("/{id}/pdf", h.renderPDF)
	})
}
