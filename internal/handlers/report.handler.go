package handlers

import (
	"context"
	"strconv"

	"github.com/acolin/asso-ledger/internal/model"
	xhttp "github.com/acolin/asso-ledger/pkg/xhttp"
)

type ReportService interface {
	Balance(ctx context.Context, f model.ReportFilter) ([]model.BalanceLine, error)
}

type ReportHandler struct {
	svc ReportService
}

func NewReportHandler(reportService ReportService) *ReportHandler {
	return &ReportHandler{
		svc: reportService,
	}
}

func RegisterReportRoutes(e *xhttp.RouterGroup, h *ReportHandler, auth Authenticator) {
	e.GET("/reports/balance", RequireAuth(auth, h.GetBalance))
}

func (h *ReportHandler) GetBalance(ctx *xhttp.RequestCtx) {
	var f model.ReportFilter

	f.Granularity = model.ReportGranularity(query(ctx, "granularity"))
	if v := query(ctx, "year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(ctx, 400, "invalid year")
			return
		}
		f.Year = n
	}
	account, err := parseAccount(query(ctx, "kind"), query(ctx, "account_id"))
	if err != nil {
		writeError(ctx, 400, "invalid account filter")
		return
	}
	f.Account = account

	lines, err := h.svc.Balance(ctx, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]any{"lines": lines})
}
