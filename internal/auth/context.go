package auth

import (
	"context"

	"github.com/dom/tutoring-scheduler/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

// ContextResolver resolves the principal placed on the request context by
// the HTTP authentication middleware.
type ContextResolver struct{}

func (ContextResolver) CurrentPrincipal(ctx context.Context) (domain.Principal, bool) {
	return PrincipalFromContext(ctx)
}
