package audit

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-crm/meridian-crm/internal/auth"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.With(auth.RequireAdmin).Get("/logs", h.List)
}
