package handlers

import (
	"context"

	xhttp "github.com/acolin/asso-ledger/pkg/xhttp"
)

type HealthService interface {
	Get(ctx context.Context) error
}

type HealthHandler struct {
	svc HealthService
}

func NewHealthHandler(healthService HealthService) *HealthHandler {
	return &HealthHandler{
		svc: healthService,
	}
}

func RegisterHealthRoutes(e *xhttp.RouterGroup, h *HealthHandler) {
	e.GET("/healthz", h.GetHealth)
}

func (h *HealthHandler) GetHealth(ctx *xhttp.RequestCtx) {
	if err := h.svc.Get(ctx); err != nil {
		writeError(ctx, 503, "unhealthy")
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": "ok"})
}
