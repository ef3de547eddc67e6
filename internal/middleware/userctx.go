package middleware

import "context"

type userKey struct{}

// UserCtx is the identity the session gate attaches to a request.
type UserCtx struct {
	UserID string
}

func WithUser(ctx context.Context, u UserCtx) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func FromCtx(ctx context.Context) UserCtx {
	if v := ctx.Value(userKey{}); v != nil {
		if u, ok := v.(UserCtx); ok {
			return u
		}
	}
	return UserCtx{}
}

// LoggedIn reports whether the request carries a verified session.
func LoggedIn(ctx context.Context) bool { return FromCtx(ctx).UserID != "" }
