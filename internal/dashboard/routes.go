package dashboard

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard/stats", h.Stats)
	r.Get("/dashboard/activity", h.Activity)
}
