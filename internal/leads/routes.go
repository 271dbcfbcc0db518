package leads

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/leads", h.List)
	r.Post("/leads", h.Create)
	r.Get("/leads/{id}", h.Show)
	r.Get("/leads/{id}/pdf", h.RenderPDF)
	r.Put("/leads/{id}", h.Update)
	r.Delete("/leads/{id}", h.Delete)
	r.Post("/leads/{id}/convert", h.Convert)
}
