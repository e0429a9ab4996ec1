package handlers

import (
	"context"
	"time"

	"github.com/fasthttp/router"
	"github.com/nimasrn/resto-manager/internal/model"
	xhttp "github.com/nimasrn/resto-manager/pkg/http"
)

type ReservationService interface {
	List(ctx context.Context) ([]*model.Reservation, error)
	Create(ctx context.Context, p model.ReservationCreateRequest) (*model.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error
	Delete(ctx context.Context, id int64) error
}

type ReservationHandler struct {
	svc ReservationService
	loc *time.Location
}

func RegisterReservationRoutes(e *router.Group, h *ReservationHandler) {
	e.GET("/reservations", h.ListReservations)
	e.POST("/reservations", h.CreateReservation)
	e.PATCH("/reservations/{id}/status", h.UpdateReservationStatus)
	e.DELETE("/reservations/{id}", h.DeleteReservation)
}

// NewReservationHandler reads zone-less dates in loc.
func NewReservationHandler(svc ReservationService, loc *time.Location) *ReservationHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ReservationHandler{
		svc: svc,
		loc: loc,
	}
}

type createReservationRequest struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	TableNumber  int    `json:"tableNumber"`
	Guests       int    `json:"guests"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

func (h *ReservationHandler) ListReservations(ctx *xhttp.RequestCtx) {
	items, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, items)
}

func (h *ReservationHandler) CreateReservation(ctx *xhttp.RequestCtx) {
	var req createReservationRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	date, err := parseTime(req.Date, h.loc)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid date: "+req.Date)
		return
	}

	res, err := h.svc.Create(ctx, model.ReservationCreateRequest{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		TableNumber:  req.TableNumber,
		Guests:       req.Guests,
		Date:         date,
		Status:       model.ReservationStatus(req.Status),
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, createdResponse{ID: res.ID})
}

func (h *ReservationHandler) UpdateReservationStatus(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	var req updateStatusRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if err := h.svc.UpdateStatus(ctx, id, model.ReservationStatus(req.Status)); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeNoContent(ctx)
}

func (h *ReservationHandler) DeleteReservation(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeNoContent(ctx)
}
