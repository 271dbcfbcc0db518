package items

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/items", h.List)
	r.Post("/items", h.Create)
	r.Get("/items/export/csv", h.ExportCSV)
	r.Post("/items/upload/csv", h.ImportCSV)
	r.Get("/items/{id}", h.Show)
	r.Put("/items/{id}", h.Update)
	r.Delete("/items/{id}", h.Delete)
	r.Post("/items/{id}/duplicate", h.Duplicate)
}
