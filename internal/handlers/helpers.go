package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/internal/model"
	xhttp "github.com/acolin/asso-ledger/pkg/xhttp"
)

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		writeError(ctx, 400, err.Error())
	case errors.Is(err, apperr.ErrPermission):
		writeError(ctx, 403, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		writeError(ctx, 404, err.Error())
	case errors.Is(err, apperr.ErrRateLimited):
		writeError(ctx, 429, err.Error())
	case errors.Is(err, apperr.ErrIntegrity):
		writeError(ctx, 500, "ledger integrity violation, contact an administrator")
	default:
		writeError(ctx, 500, "internal error")
	}
}

func pathInt64(ctx *xhttp.RequestCtx, name string) (int64, error) {
	v, _ := ctx.UserValue(name).(string)
	return strconv.ParseInt(v, 10, 64)
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func parseTime(s string) (time.Time, error) {
	// Accept RFC3339 or YYYY-MM-DD
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// parseAccount reads kind/id query params into an AccountRef.
// kind=association needs no id; artist and project do.
func parseAccount(kind, id string) (*model.AccountRef, error) {
	if kind == "" {
		return nil, nil
	}
	ref := model.AccountRef{Kind: model.AccountKind(kind)}
	if id != "" {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return nil, err
		}
		ref.ID = n
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return &ref, nil
}
