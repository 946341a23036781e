// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// PartyKey is the context key for the acting party DID.
// Exported so it can be used consistently across packages.
type PartyKey struct{}

// WithPartyDID returns a context with the acting party DID embedded.
func WithPartyDID(ctx context.Context, did string) context.Context {
	return context.WithValue(ctx, PartyKey{}, did)
}

// PartyFromContext returns the acting party DID from context, or empty string if not set.
func PartyFromContext(ctx context.Context) string {
	if v := ctx.Value(PartyKey{}); v != nil {
		return v.(string)
	}
	return ""
}
