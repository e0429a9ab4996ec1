package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/resto-manager/internal/model"
	xhttp "github.com/nimasrn/resto-manager/pkg/http"
)

type SettingsService interface {
	Get(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, in model.Settings) (*model.Settings, error)
	SendTest(ctx context.Context) (bool, error)
}

type SettingsHandler struct {
	svc SettingsService
}

func RegisterSettingsRoutes(e *router.Group, h *SettingsHandler) {
	e.GET("/settings", h.GetSettings)
	e.PUT("/settings", h.SaveSettings)
	e.POST("/settings/test", h.SendTestMessage)
}

func NewSettingsHandler(svc SettingsService) *SettingsHandler {
	return &SettingsHandler{
		svc: svc,
	}
}

type sendTestResponse struct {
	Sent bool `json:"sent"`
}

func (h *SettingsHandler) GetSettings(ctx *xhttp.RequestCtx) {
	settings, err := h.svc.Get(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, settings)
}

func (h *SettingsHandler) SaveSettings(ctx *xhttp.RequestCtx) {
	var req model.Settings
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	settings, err := h.svc.Save(ctx, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, settings)
}

func (h *SettingsHandler) SendTestMessage(ctx *xhttp.RequestCtx) {
	sent, err := h.svc.SendTest(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, sendTestResponse{Sent: sent})
}
