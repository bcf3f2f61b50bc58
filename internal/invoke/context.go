package invoke

import "context"

// identityContextKey is a custom type to avoid context key collisions
type identityContextKey string

const clientIdentityKey identityContextKey = "client_identity"

// LocalIdentity is used when no transport-level identity exists, e.g.
// stdio sessions where the caller is the local process owner.
const LocalIdentity = "local"

// WithClientIdentity tags the context with the rate-limiting identity.
func WithClientIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, clientIdentityKey, identity)
}

// ClientIdentityFrom returns the identity from the context, defaulting
// to LocalIdentity when none was set.
func ClientIdentityFrom(ctx context.Context) string {
	if identity, ok := ctx.Value(clientIdentityKey).(string); ok && identity != "" {
		return identity
	}
	return LocalIdentity
}
