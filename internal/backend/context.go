package backend

import "context"

type accessTokenKey struct{}

// WithAccessToken attaches the signed-in user's token so drivers that enforce
// row-level security can act on the user's behalf.
func WithAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, accessTokenKey{}, token)
}

func AccessToken(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}
