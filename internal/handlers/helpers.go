package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/nimasrn/resto-manager/internal/services"
	xhttp "github.com/nimasrn/resto-manager/pkg/http"
	"github.com/nimasrn/resto-manager/pkg/logger"
)

// localDateTimeLayouts are what a datetime-local input submits, without and
// with a step attribute.
var localDateTimeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

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

// writeServiceError maps service errors onto statuses. Anything unexpected is
// logged and hidden behind a 500.
func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidMonth):
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		writeError(ctx, xhttp.StatusConflict, err.Error())
	default:
		logger.Error("[handlers] request failed", "path", string(ctx.Path()), "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, xhttp.StatusText(xhttp.StatusInternalServerError))
	}
}

func writeNoContent(ctx *xhttp.RequestCtx) {
	ctx.Response.SetStatusCode(xhttp.StatusNoContent)
}

// pathInt64 reads a numeric route parameter.
func pathInt64(ctx *xhttp.RequestCtx, name string) (int64, error) {
	v, _ := ctx.UserValue(name).(string)
	return strconv.ParseInt(v, 10, 64)
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

// parseTime accepts RFC3339, or a zone-less local date-time read in loc.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	for _, layout := range localDateTimeLayouts {
		if t, lerr := time.ParseInLocation(layout, s, loc); lerr == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
