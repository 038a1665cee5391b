package handlers

import (
	"context"
	"io"

	"github.com/acolin/asso-ledger/internal/model"
	xhttp "github.com/acolin/asso-ledger/pkg/xhttp"
)

type InvoiceService interface {
	Upload(ctx context.Context, actor model.Actor, entryID int64, fileName, contentType string, data []byte) (*model.Invoice, error)
	SignedURL(ctx context.Context, id int64) (string, error)
	List(ctx context.Context, entryID *int64) ([]*model.Invoice, error)
	Delete(ctx context.Context, actor model.Actor, id int64) error
}

type InvoiceHandler struct {
	svc InvoiceService
}

func NewInvoiceHandler(invoiceService InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		svc: invoiceService,
	}
}

func RegisterInvoiceRoutes(e *xhttp.RouterGroup, h *InvoiceHandler, auth Authenticator, limiter WriteLimiter) {
	e.POST("/entries/{id}/invoices", RequireAuth(auth, RateLimitWrites(limiter, h.UploadInvoice)))
	e.GET("/entries/{id}/invoices", RequireAuth(auth, h.ListEntryInvoices))
	e.GET("/invoices", RequireAuth(auth, h.ListInvoices))
	e.GET("/invoices/{id}/url", RequireAuth(auth, h.GetInvoiceURL))
	e.DELETE("/invoices/{id}", RequireAuth(auth, RateLimitWrites(limiter, h.DeleteInvoice)))
}

// UploadInvoice accepts a multipart form with one "file" part.
func (h *InvoiceHandler) UploadInvoice(ctx *xhttp.RequestCtx) {
	entryID, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid entry id")
		return
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		writeError(ctx, 400, "missing file part")
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(ctx, 400, "unreadable file part")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		writeError(ctx, 400, "unreadable file part")
		return
	}

	invoice, err := h.svc.Upload(ctx, actor(ctx), entryID, fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, invoice)
}

func (h *InvoiceHandler) ListEntryInvoices(ctx *xhttp.RequestCtx) {
	entryID, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid entry id")
		return
	}
	items, err := h.svc.List(ctx, &entryID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]any{"items": items})
}

func (h *InvoiceHandler) ListInvoices(ctx *xhttp.RequestCtx) {
	items, err := h.svc.List(ctx, nil)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]any{"items": items})
}

func (h *InvoiceHandler) GetInvoiceURL(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	url, err := h.svc.SignedURL(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]string{"url": url})
}

func (h *InvoiceHandler) DeleteInvoice(ctx *xhttp.RequestCtx) {
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
