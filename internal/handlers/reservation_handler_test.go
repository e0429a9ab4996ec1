package handlers

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nimasrn/resto-manager/internal/model"
	"github.com/nimasrn/resto-manager/internal/services"
	xhttp "github.com/nimasrn/resto-manager/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReservationHandler_CreateReservation(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		svc := new(MockReservationService)
		handler := NewReservationHandler(svc, time.UTC)

		want := model.ReservationCreateRequest{
			CustomerName: "Ali",
			Phone:        "+998901234567",
			TableNumber:  3,
			Guests:       4,
			Date:         time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC),
			Status:       model.ReservationStatusPending,
		}
		svc.On("Create", mock.Anything, want).Return(&model.Reservation{ID: 7}, nil)

		body := []byte(`{"customerName":"Ali","phone":"+998901234567","tableNumber":3,"guests":4,"date":"2024-05-01T19:00:00Z","status":"pending"}`)
		ctx := setupTestContext("POST", "/api/v1/reservations", body)
		handler.CreateReservation(ctx)

		assert.Equal(t, xhttp.StatusCreated, ctx.Response.StatusCode())
		var resp createdResponse
		decodeBody(t, ctx, &resp)
		assert.Equal(t, int64(7), resp.ID)
		svc.AssertExpectations(t)
	})

	t.Run("local date-time is read in the handler zone", func(t *testing.T) {
		svc := new(MockReservationService)
		loc := time.FixedZone("UZT", 5*60*60)
		handler := NewReservationHandler(svc, loc)

		svc.On("Create", mock.Anything, mock.MatchedBy(func(p model.ReservationCreateRequest) bool {
			return p.Date.Equal(time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC))
		})).Return(&model.Reservation{ID: 1}, nil)

		body := []byte(`{"customerName":"Ali","phone":"1","tableNumber":1,"guests":2,"date":"2024-05-01T19:00"}`)
		ctx := setupTestContext("POST", "/api/v1/reservations", body)
		handler.CreateReservation(ctx)

		assert.Equal(t, xhttp.StatusCreated, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("local date-time with seconds", func(t *testing.T) {
		svc := new(MockReservationService)
		loc := time.FixedZone("UZT", 5*60*60)
		handler := NewReservationHandler(svc, loc)

		svc.On("Create", mock.Anything, mock.MatchedBy(func(p model.ReservationCreateRequest) bool {
			return p.Date.Equal(time.Date(2024, 5, 1, 14, 0, 30, 0, time.UTC))
		})).Return(&model.Reservation{ID: 2}, nil)

		body := []byte(`{"customerName":"Ali","phone":"1","tableNumber":1,"guests":2,"date":"2024-05-01T19:00:30"}`)
		ctx := setupTestContext("POST", "/api/v1/reservations", body)
		handler.CreateReservation(ctx)

		assert.Equal(t, xhttp.StatusCreated, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		svc := new(MockReservationService)
		handler := NewReservationHandler(svc, time.UTC)

		ctx := setupTestContext("POST", "/api/v1/reservations", []byte(`{`))
		handler.CreateReservation(ctx)

		assert.Equal(t, xhttp.StatusBadRequest, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("invalid date", func(t *testing.T) {
		svc := new(MockReservationService)
		handler := NewReservationHandler(svc, time.UTC)

		ctx := setupTestContext("POST", "/api/v1/reservations", []byte(`{"customerName":"Ali","date":"tomorrow"}`))
		handler.CreateReservation(ctx)

		assert.Equal(t, xhttp.StatusBadRequest, ctx.Response.StatusCode())
		var resp map[string]string
		decodeBody(t, ctx, &resp)
		assert.Contains(t, resp["error"], "invalid date")
	})

	t.Run("validation error", func(t *testing.T) {
		svc := new(MockReservationService)
		handler := NewReservationHandler(svc, time.UTC)

		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: guests must be at least 1", services.ErrValidation))

		ctx := setupTestContext("POST", "/api/v1/reservations", []byte(`{"customerName":"Ali","date":"2024-05-01T19:00:00Z"}`))
		handler.CreateReservation(ctx)

		assert.Equal(t, xhttp.StatusBadRequest, ctx.Response.StatusCode())
	})

	t.Run("duplicate id", func(t *testing.T) {
		svc := new(MockReservationService)
		handler := NewReservationHandler(svc, time.UTC)

		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("create reservation: %w", services.ErrConflict))

		ctx := setupTestContext("POST", "/api/v1/reservations", []byte(`{"date":"2024-05-01T19:00:00Z"}`))
		handler.CreateReservation(ctx)

		assert.Equal(t, xhttp.StatusConflict, ctx.Response.StatusCode())
	})
}

func TestReservationHandler_ListReservations(t *testing.T) {
	t.Run("returns items", func(t *testing.T) {
		svc := new(MockReservationService)
		handler := NewReservationHandler(svc, time.UTC)

		items := []*model.Reservation{
			{ID: 2, CustomerName: "Vali", Status: model.ReservationStatusConfirmed},
			{ID: 1, CustomerName: "Ali", Status: model.ReservationStatusPending},
		}
		svc.On("List", mock.Anything).Return(items, nil)

		ctx := setupTestContext("GET", "/api/v1/reservations", nil)
		handler.ListReservations(ctx)

		assert.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())
		assert.Contains(t, string(ctx.Response.Header.ContentType()), "application/json")
		var resp []model.Reservation
		decodeBody(t, ctx, &resp)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Vali", resp[0].CustomerName)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(MockReservationService)
		handler := NewReservationHandler(svc, time.UTC)

		svc.On("List", mock.Anything).Return(nil, errors.New("disk I/O error"))

		ctx := setupTestContext("GET", "/api/v1/reservations", nil)
		handler.ListReservations(ctx)

		assert.Equal(t, xhttp.StatusInternalServerError, ctx.Response.StatusCode())
		assert.NotContains(t, string(ctx.Response.Body()), "disk")
	})
}

func TestReservationHandler_UpdateReservationStatus(t *testing.T) {
	t.Run("updates", func(t *testing.T) {
		svc := new(MockReservationService)
		handler := NewReservationHandler(svc, time.UTC)

		svc.On("UpdateStatus", mock.Anything, int64(5), model.ReservationStatusCompleted).Return(nil)

		ctx := setupTestContext("PATCH", "/api/v1/reservations/5/status", []byte(`{"status":"completed"}`))
		ctx.SetUserValue("id", "5")
		handler.UpdateReservationStatus(ctx)

		assert.Equal(t, xhttp.StatusNoContent, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := new(MockReservationService)
		handler := NewReservationHandler(svc, time.UTC)

		svc.On("UpdateStatus", mock.Anything, int64(5), model.ReservationStatus("seated")).
			Return(fmt.Errorf("%w: seated", services.ErrInvalidStatus))

		ctx := setupTestContext("PATCH", "/api/v1/reservations/5/status", []byte(`{"status":"seated"}`))
		ctx.SetUserValue("id", "5")
		handler.UpdateReservationStatus(ctx)

		assert.Equal(t, xhttp.StatusBadRequest, ctx.Response.StatusCode())
	})

	t.Run("non numeric id", func(t *testing.T) {
		svc := new(MockReservationService)
		handler := NewReservationHandler(svc, time.UTC)

		ctx := setupTestContext("PATCH", "/api/v1/reservations/abc/status", []byte(`{"status":"completed"}`))
		ctx.SetUserValue("id", "abc")
		handler.UpdateReservationStatus(ctx)

		assert.Equal(t, xhttp.StatusBadRequest, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "UpdateStatus")
	})
}

func TestReservationHandler_DeleteReservation(t *testing.T) {
	svc := new(MockReservationService)
	handler := NewReservationHandler(svc, time.UTC)

	svc.On("Delete", mock.Anything, int64(42)).Return(nil)

	ctx := setupTestContext("DELETE", "/api/v1/reservations/42", nil)
	ctx.SetUserValue("id", "42")
	handler.DeleteReservation(ctx)

	assert.Equal(t, xhttp.StatusNoContent, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}

func TestParseTime(t *testing.T) {
	loc := time.FixedZone("UZT", 5*60*60)
	want := time.Date(2024, 5, 1, 19, 0, 0, 0, loc)

	for _, in := range []string{"2024-05-01T19:00:00+05:00", "2024-05-01T19:00", "2024-05-01T19:00:00"} {
		got, err := parseTime(in, loc)
		assert.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	_, err := parseTime("2024-05-01", loc)
	assert.Error(t, err)
}
