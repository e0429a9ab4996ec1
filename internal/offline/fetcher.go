package offline

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// Fetcher performs a request against the network. A returned error means the
// network could not be reached; HTTP error statuses are responses.
type Fetcher interface {
	Fetch(ctx context.Context, req *Request) (*Response, error)
}

// UpstreamFetcher fetches assets from the origin serving the admin frontend.
// Responses from any other host are marked opaque.
type UpstreamFetcher struct {
	client  *fasthttp.Client
	origin  *url.URL
	timeout time.Duration
}

// Cache entries are keyed by URL alone, so bodies are always fetched
// unencoded.
var skipRequestHeaders = []string{"host", "connection", "content-length", "accept-encoding"}

func NewUpstreamFetcher(origin string, timeout time.Duration) (*UpstreamFetcher, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin %q: %w", origin, err)
	}
	return &UpstreamFetcher{
		client: &fasthttp.Client{
			Name:                "resto-manager-offline",
			MaxConnsPerHost:     64,
			MaxIdleConnDuration: time.Minute,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		},
		origin:  u,
		timeout: timeout,
	}, nil
}

func (f *UpstreamFetcher) Fetch(ctx context.Context, req *Request) (*Response, error) {
	target, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("parse request url: %w", err)
	}

	freq := fasthttp.AcquireRequest()
	fresp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(freq)
	defer fasthttp.ReleaseResponse(fresp)

	freq.SetRequestURI(req.URL)
	freq.Header.SetMethod(req.Method)
	for k, v := range req.Header {
		if slices.Contains(skipRequestHeaders, strings.ToLower(k)) {
			continue
		}
		freq.Header.Set(k, v)
	}
	if len(req.Body) > 0 {
		freq.SetBody(req.Body)
	}

	deadline := time.Now().Add(f.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := f.client.DoDeadline(freq, fresp, deadline); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.URL, err)
	}

	resp := &Response{
		Type:       ResponseBasic,
		StatusCode: fresp.StatusCode(),
		Header:     make(map[string]string),
		Body:       append([]byte(nil), fresp.Body()...),
	}
	if !strings.EqualFold(target.Host, f.origin.Host) {
		resp.Type = ResponseOpaque
	}
	fresp.Header.VisitAll(func(k, v []byte) {
		resp.Header[string(k)] = string(v)
	})
	return resp, nil
}
