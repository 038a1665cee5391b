package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/acolin/asso-ledger/internal/model"
	xhttp "github.com/acolin/asso-ledger/pkg/xhttp"
)

type EntryService interface {
	Create(ctx context.Context, actor model.Actor, p model.EntryCreateRequest) (*model.Entry, error)
	Update(ctx context.Context, actor model.Actor, id int64, p model.EntryUpdateRequest) (*model.Entry, error)
	Delete(ctx context.Context, actor model.Actor, id int64) error
	Get(ctx context.Context, id int64) (*model.Entry, error)
	List(ctx context.Context, f model.EntryFilter) ([]*model.Entry, int64, error)
}

type EntryHandler struct {
	svc EntryService
}

func NewEntryHandler(entryService EntryService) *EntryHandler {
	return &EntryHandler{
		svc: entryService,
	}
}

func RegisterEntryRoutes(e *xhttp.RouterGroup, h *EntryHandler, auth Authenticator, limiter WriteLimiter) {
	e.GET("/entries", RequireAuth(auth, h.ListEntries))
	e.GET("/entries/{id}", RequireAuth(auth, h.GetEntry))
	e.POST("/entries", RequireAuth(auth, RateLimitWrites(limiter, h.CreateEntry)))
	e.PUT("/entries/{id}", RequireAuth(auth, RateLimitWrites(limiter, h.UpdateEntry)))
	e.DELETE("/entries/{id}", RequireAuth(auth, RateLimitWrites(limiter, h.DeleteEntry)))
}

type entryRequest struct {
	Date        string           `json:"date"`
	Description string           `json:"description"`
	Credit      decimal.Decimal  `json:"credit"`
	Debit       decimal.Decimal  `json:"debit"`
	Account     model.AccountRef `json:"account"`
	Category    model.Category   `json:"category"`
	PayeeHint   string           `json:"payee_hint"`
}

func (r entryRequest) toModel() (model.EntryCreateRequest, error) {
	date, err := parseTime(r.Date)
	if err != nil {
		return model.EntryCreateRequest{}, err
	}
	return model.EntryCreateRequest{
		Date:        date,
		Description: r.Description,
		Credit:      r.Credit,
		Debit:       r.Debit,
		Account:     r.Account,
		Category:    r.Category,
		PayeeHint:   r.PayeeHint,
	}, nil
}

type entryListResponse struct {
	Items []*model.Entry `json:"items"`
	Total int64          `json:"total"`
}

func (h *EntryHandler) CreateEntry(ctx *xhttp.RequestCtx) {
	var req entryRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	p, err := req.toModel()
	if err != nil {
		writeError(ctx, 400, "invalid date: "+err.Error())
		return
	}
	entry, err := h.svc.Create(ctx, actor(ctx), p)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, entry)
}

func (h *EntryHandler) UpdateEntry(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	var req entryRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	p, err := req.toModel()
	if err != nil {
		writeError(ctx, 400, "invalid date: "+err.Error())
		return
	}
	entry, err := h.svc.Update(ctx, actor(ctx), id, p)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, entry)
}

func (h *EntryHandler) DeleteEntry(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	if err := h.svc.Delete(ctx, actor(ctx), id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Response.SetStatusCode(204)
}

func (h *EntryHandler) GetEntry(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	entry, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, entry)
}

func (h *EntryHandler) ListEntries(ctx *xhttp.RequestCtx) {
	var f model.EntryFilter

	account, err := parseAccount(query(ctx, "kind"), query(ctx, "account_id"))
	if err != nil {
		writeError(ctx, 400, "invalid account filter")
		return
	}
	f.Account = account

	if v := query(ctx, "category"); v != "" {
		c := model.Category(v)
		f.Category = &c
	}
	if v := query(ctx, "from"); v != "" {
		if t, e := parseTime(v); e == nil {
			f.From = &t
		}
	}
	if v := query(ctx, "to"); v != "" {
		if t, e := parseTime(v); e == nil {
			f.To = &t
		}
	}
	if v := query(ctx, "limit"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Limit = n
		}
	}
	if v := query(ctx, "offset"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Offset = n
		}
	}
	if strings.EqualFold(query(ctx, "order"), "desc") {
		f.Desc = true
	}

	items, total, err := h.svc.List(ctx, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, entryListResponse{Items: items, Total: total})
}
