package httpapi

import (
	"context"

	"github.com/riskibarqy/football-portal/internal/domain/user"
)

type contextKey string

const (
	principalContextKey contextKey = "auth_principal"
	tokenContextKey     contextKey = "auth_token"
)

func withPrincipal(ctx context.Context, p user.Principal, token string) context.Context {
	ctx = context.WithValue(ctx, principalContextKey, p)
	return context.WithValue(ctx, tokenContextKey, token)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}
