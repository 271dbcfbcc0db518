package parties

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/parties", h.List)
	r.Post("/parties", h.Create)
	r.Get("/parties/export/csv", h.ExportCSV)
	r.Post("/parties/upload/csv", h.ImportCSV)
	r.Get("/parties/{id}", h.Show)
	r.Put("/parties/{id}", h.Update)
	r.Delete("/parties/{id}", h.Delete)
	r.Post("/parties/{id}/duplicate", h.Duplicate)
}
