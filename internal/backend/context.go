package backend

import "context"

type ctxKey int

const (
	accessTokenKey ctxKey = iota
	requestIDKey
)

// WithAccessToken attaches the session access token; every request built from
// the returned context carries it as a bearer token.
func WithAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, accessTokenKey, token)
}

func AccessToken(ctx context.Context) string {
	s, _ := ctx.Value(accessTokenKey).(string)
	return s
}

// WithRequestID propagates the inbound request id to backend calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) string {
	s, _ := ctx.Value(requestIDKey).(string)
	return s
}
