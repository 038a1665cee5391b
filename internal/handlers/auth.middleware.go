package handlers

import (
	"context"
	"strings"

	"github.com/acolin/asso-ledger/internal/model"
	xhttp "github.com/acolin/asso-ledger/pkg/xhttp"
)

const actorKey = "actor"

type Authenticator interface {
	Verify(token string) (model.Actor, error)
}

type WriteLimiter interface {
	Allow(ctx context.Context, profileID int64) error
}

// RequireAuth verifies the bearer token and stashes the Actor on the request
// so handlers can pass it explicitly into services.
func RequireAuth(auth Authenticator, next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		header := string(ctx.Request.Header.Peek("Authorization"))
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(ctx, 401, "missing bearer token")
			return
		}
		actor, err := auth.Verify(token)
		if err != nil {
			writeError(ctx, 401, "invalid session")
			return
		}
		ctx.SetUserValue(actorKey, actor)
		next(ctx)
	}
}

// RateLimitWrites counts the request against the caller's write quota before
// letting it through. Wrap mutating routes only; reads stay unthrottled.
func RateLimitWrites(limiter WriteLimiter, next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		a := actor(ctx)
		if err := limiter.Allow(ctx, a.ProfileID); err != nil {
			writeServiceError(ctx, err)
			return
		}
		next(ctx)
	}
}

// actor returns the identity RequireAuth stored. Routes registered without
// RequireAuth get the zero Actor, whose empty role passes no permission
// check.
func actor(ctx *xhttp.RequestCtx) model.Actor {
	a, _ := ctx.UserValue(actorKey).(model.Actor)
	return a
}
