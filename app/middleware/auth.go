package appMiddleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/FACorreiaa/realestate-ads/internal/types"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated caller attached to a request context. It
// lives only for the request.
type Principal struct {
	UserID  uuid.UUID
	Subject string
	Role    types.Role
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return p.UserID, true
}

func GetUserRoleFromContext(ctx context.Context) (types.Role, bool) {
	p, ok := PrincipalFromContext(ctx)
	return p.Role, ok
}
