package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/acolin/asso-ledger/internal/model"
	xhttp "github.com/acolin/asso-ledger/pkg/xhttp"
)

type TransferService interface {
	Create(ctx context.Context, actor model.Actor, p model.TransferCreateRequest) (*model.Transfer, error)
	Update(ctx context.Context, actor model.Actor, id int64, p model.TransferCreateRequest) (*model.Transfer, error)
	Delete(ctx context.Context, actor model.Actor, id int64) error
	Get(ctx context.Context, id int64) (*model.Transfer, error)
	List(ctx context.Context) ([]*model.Transfer, error)
}

type TransferHandler struct {
	svc TransferService
}

func NewTransferHandler(transferService TransferService) *TransferHandler {
	return &TransferHandler{
		svc: transferService,
	}
}

func RegisterTransferRoutes(e *xhttp.RouterGroup, h *TransferHandler, auth Authenticator, limiter WriteLimiter) {
	e.GET("/transfers", RequireAuth(auth, h.ListTransfers))
	e.GET("/transfers/{id}", RequireAuth(auth, h.GetTransfer))
	e.POST("/transfers", RequireAuth(auth, RateLimitWrites(limiter, h.CreateTransfer)))
	e.PUT("/transfers/{id}", RequireAuth(auth, RateLimitWrites(limiter, h.UpdateTransfer)))
	e.DELETE("/transfers/{id}", RequireAuth(auth, RateLimitWrites(limiter, h.DeleteTransfer)))
}

type transferRequest struct {
	Date        string           `json:"date"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	Source      model.AccountRef `json:"source"`
	Destination model.AccountRef `json:"destination"`
}

func (r transferRequest) toModel() (model.TransferCreateRequest, error) {
	date, err := parseTime(r.Date)
	if err != nil {
		return model.TransferCreateRequest{}, err
	}
	return model.TransferCreateRequest{
		Date:        date,
		Amount:      r.Amount,
		Description: r.Description,
		Source:      r.Source,
		Destination: r.Destination,
	}, nil
}

type transferListResponse struct {
	Items []*model.Transfer `json:"items"`
}

func (h *TransferHandler) CreateTransfer(ctx *xhttp.RequestCtx) {
	var req transferRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	p, err := req.toModel()
	if err != nil {
		writeError(ctx, 400, "invalid date: "+err.Error())
		return
	}
	transfer, err := h.svc.Create(ctx, actor(ctx), p)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, transfer)
}

func (h *TransferHandler) UpdateTransfer(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	var req transferRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	p, err := req.toModel()
	if err != nil {
		writeError(ctx, 400, "invalid date: "+err.Error())
		return
	}
	transfer, err := h.svc.Update(ctx, actor(ctx), id, p)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, transfer)
}

func (h *TransferHandler) DeleteTransfer(ctx *xhttp.RequestCtx) {
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

func (h *TransferHandler) GetTransfer(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	transfer, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, transfer)
}

func (h *TransferHandler) ListTransfers(ctx *xhttp.RequestCtx) {
	items, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, transferListResponse{Items: items})
}
