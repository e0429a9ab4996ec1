package handlers

import (
	"context"
	"sort"

	"github.com/fasthttp/router"
	xhttp "github.com/nimasrn/resto-manager/pkg/http"
)

// HealthCheck reports whether one dependency is usable.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
}

func RegisterHealthRoutes(e *router.Group, h *HealthHandler) {
	e.GET("/health", h.GetHealth)
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{
		checks: checks,
	}
}

type healthResponse struct {
	Status string            `json:"status"`
	Failed map[string]string `json:"failed,omitempty"`
}

func (h *HealthHandler) GetHealth(ctx *xhttp.RequestCtx) {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := healthResponse{Status: "ok"}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			if resp.Failed == nil {
				resp.Failed = map[string]string{}
			}
			resp.Failed[name] = err.Error()
		}
	}
	if len(resp.Failed) > 0 {
		resp.Status = "degraded"
		writeJSON(ctx, xhttp.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, resp)
}
