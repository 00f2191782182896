package auth

import (
	"context"

	"github.com/jbweber/homelab/stagerad/internal/domain"
)

type callerKey struct{}

// WithCaller returns a context carrying the authenticated caller
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the caller stored by WithCaller
func CallerFromContext(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(domain.Caller)
	return caller, ok
}

// ContextIdentityProvider resolves the caller placed on the request context by Authenticator
type ContextIdentityProvider struct{}

// CurrentCaller returns the request's caller or ErrUnauthenticated
func (ContextIdentityProvider) CurrentCaller(ctx context.Context) (domain.Caller, error) {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return domain.Caller{}, ErrUnauthenticated
	}
	return caller, nil
}
