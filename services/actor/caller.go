package actor

import (
	"context"

	"homeserve/models"
)

// Caller is the authenticated identity a remote call is made on behalf of.
type Caller struct {
	Principal models.Principal
	Token     string
}

type callerKey struct{}

// WithCaller attaches the caller identity to ctx.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFrom returns the identity attached by WithCaller.
func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok && c.Principal != ""
}
