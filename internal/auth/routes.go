package auth

import "github.com/go-chi/chi/v5"

// MountPublicRoutes registers the endpoints that work without a token.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/forgot-password", h.ForgotPassword)
	r.Post("/auth/reset-password", h.ResetPassword)
}

// MountProtectedRoutes registers the endpoints that require a valid token.
func (h *Handler) MountProtectedRoutes(r chi.Router) {
	r.Get("/auth/me", h.Me)
	r.With(RequireAdmin).Get("/users", h.ListUsers)
	r.With(RequireAdmin).Put("/users/{id}/status", h.UpdateUserStatus)
}
