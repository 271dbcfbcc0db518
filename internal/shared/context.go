package shared

import "context"

type contextKey string

const userContextKey contextKey = "meridian.user"

// UserRole enumerates the two roles the application knows about.
type UserRole string

const (
	RoleAdmin UserRole = "Admin"
	RoleSales UserRole = "Sales User"
)

// UserContext carries the authenticated user through a request.
type UserContext struct {
	UserID int64
	Name   string
	Email  string
	Role   UserRole
}

// IsAdmin reports whether the user may see other users' documents.
func (u *UserContext) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ContextWithUser stores the authenticated user in the context.
func ContextWithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the authenticated user, or nil.
func UserFromContext(ctx context.Context) *UserContext {
	user, _ := ctx.Value(userContextKey).(*UserContext)
	return user
}
