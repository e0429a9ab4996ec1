package offline

import (
	"context"
	"slices"
	"strings"

	xhttp "github.com/nimasrn/resto-manager/pkg/http"
	"github.com/nimasrn/resto-manager/pkg/logger"
	"github.com/valyala/fasthttp"
)

var skipResponseHeaders = []string{"content-length", "transfer-encoding", "connection"}

// Handler serves asset requests through w. Requests w does not intercept are
// proxied to the network through fetcher unchanged. Fetches are bounded by the
// fetcher timeout, not by the server lifetime.
func Handler(w *Worker, fetcher Fetcher) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		req, err := NewRequest(ctx, w)
		if err != nil {
			ctx.Error(xhttp.StatusText(xhttp.StatusBadRequest), xhttp.StatusBadRequest)
			return
		}

		c := context.Background()
		resp, intercepted := w.Handle(c, req)
		if !intercepted {
			resp, err = fetcher.Fetch(c, req)
			if err != nil {
				logger.Warn("[offline] passthrough fetch failed", "url", req.URL, "error", err)
				resp = NetworkError()
			}
		}
		writeResponse(ctx, resp)
	}
}

// NewRequest maps an incoming request onto a Request with an absolute URL.
// Mode and destination come from the Sec-Fetch headers; without them a GET
// accepting HTML is treated as a navigation.
func NewRequest(ctx *xhttp.RequestCtx, w *Worker) (*Request, error) {
	target, err := w.Resolve(string(ctx.RequestURI()))
	if err != nil {
		return nil, err
	}

	req := &Request{
		Method:      string(ctx.Method()),
		URL:         target,
		Mode:        string(ctx.Request.Header.Peek("Sec-Fetch-Mode")),
		Destination: string(ctx.Request.Header.Peek("Sec-Fetch-Dest")),
		Header:      make(map[string]string),
	}
	if req.Mode == "" && req.Method == fasthttp.MethodGet &&
		strings.Contains(string(ctx.Request.Header.Peek("Accept")), "text/html") {
		req.Mode = ModeNavigate
	}
	if req.Destination == "" && req.Mode == ModeNavigate {
		req.Destination = DestinationDocument
	}
	ctx.Request.Header.VisitAll(func(k, v []byte) {
		req.Header[string(k)] = string(v)
	})
	if body := ctx.PostBody(); len(body) > 0 {
		req.Body = append([]byte(nil), body...)
	}
	return req, nil
}

func writeResponse(ctx *xhttp.RequestCtx, resp *Response) {
	if resp == nil || resp.Type == ResponseError {
		ctx.Error(xhttp.StatusText(xhttp.StatusBadGateway), xhttp.StatusBadGateway)
		return
	}
	for k, v := range resp.Header {
		if slices.Contains(skipResponseHeaders, strings.ToLower(k)) {
			continue
		}
		ctx.Response.Header.Set(k, v)
	}
	status := resp.StatusCode
	if status == 0 {
		status = xhttp.StatusOK
	}
	ctx.SetStatusCode(status)
	ctx.SetBody(resp.Body)
}
