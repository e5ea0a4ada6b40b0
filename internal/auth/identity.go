package auth

import "context"

// Identity is the minimal authenticated reference handed to downstream
// modules after the access token is decoded.
type Identity struct {
	Username string `json:"username"`
	UserID   int64  `json:"user_id"`
}

// RequireOwner is the ownership guard applied by every mutating board
// endpoint: only the resource's original author may touch it.
func (i Identity) RequireOwner(authorID int64) error {
	if i.UserID != authorID {
		return ErrForbidden
	}
	return nil
}

type identityKey struct{}

// WithIdentity stores the authenticated identity on the request context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom retrieves the identity set by the auth middleware.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
