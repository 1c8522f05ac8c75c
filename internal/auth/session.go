// Package auth resolves the caller's session from an HS256 token and
// carries it through request contexts. Only a boolean admin flag is modeled.
package auth

import "context"

// Session identifies the caller. The zero value is an anonymous, non-admin session.
type Session struct {
	User    string
	IsAdmin bool
}

// Anonymous reports whether no user is signed in.
func (s Session) Anonymous() bool {
	return s.User == ""
}

type contextKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session in ctx, or an anonymous session.
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(contextKey{}).(Session); ok {
		return s
	}
	return Session{}
}
