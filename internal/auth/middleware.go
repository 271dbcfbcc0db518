package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/meridian-crm/meridian-crm/internal/platform/httpx"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// RequireAuth validates the bearer token and stores the user in the
// request context. Requests without a valid token get a 401.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			httpx.RespondError(w, fmt.Errorf("%w: bearer token required", httpx.ErrUnauthorized))
			return
		}

		user, err := s.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrUnauthorized, err))
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.ContextWithUser(r.Context(), user)))
	})
}

// RequireAdmin gates admin-only routes. Must run after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := shared.UserFromContext(r.Context())
		if !user.IsAdmin() {
			httpx.RespondError(w, fmt.Errorf("%w: admin role required", httpx.ErrForbidden))
			return
		}
		next.ServeHTTP(w, r)
	})
}
