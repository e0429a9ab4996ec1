package offline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/nimasrn/resto-manager/pkg/logger"
	"github.com/nimasrn/resto-manager/pkg/prom"
	"github.com/valyala/fasthttp"
)

type State int32

const (
	StateParsed State = iota
	StateInstalling
	StateInstalled
	StateActivating
	StateActivated
	StateRedundant
)

func (s State) String() string {
	switch s {
	case StateParsed:
		return "parsed"
	case StateInstalling:
		return "installing"
	case StateInstalled:
		return "installed"
	case StateActivating:
		return "activating"
	case StateActivated:
		return "activated"
	case StateRedundant:
		return "redundant"
	}
	return "unknown"
}

var (
	ErrPrecacheFailed = errors.New("precache failed")
	ErrNotInstalled   = errors.New("worker is not installed")
	ErrShellMissing   = errors.New("shell page is not cached")
)

const (
	strategyNetworkFirst = "network_first"
	strategyCacheFirst   = "cache_first"
)

type Options struct {
	// CacheName names the generation owned by this deployment.
	CacheName string
	// OriginURL is the base every relative path is resolved against.
	OriginURL string
	// Manifest lists the paths precached on install.
	Manifest []string
	// Fallback is the shell page path served when nothing better exists.
	Fallback        string
	ExcludedSchemes []string
}

// Worker is one deployed version of the asset cache. It goes through install
// and activation once, then answers intercepted requests.
type Worker struct {
	opts     Options
	origin   *url.URL
	fallback string
	storage  Storage
	fetcher  Fetcher

	state   atomic.Int32
	claimed atomic.Bool
}

func NewWorker(opts Options, storage Storage, fetcher Fetcher) (*Worker, error) {
	origin, err := url.Parse(opts.OriginURL)
	if err != nil {
		return nil, fmt.Errorf("parse origin %q: %w", opts.OriginURL, err)
	}
	if !origin.IsAbs() {
		return nil, fmt.Errorf("origin %q must be absolute", opts.OriginURL)
	}
	if opts.CacheName == "" {
		return nil, errors.New("cache name is required")
	}

	w := &Worker{
		opts:    opts,
		origin:  origin,
		storage: storage,
		fetcher: fetcher,
	}
	if w.fallback, err = w.Resolve(opts.Fallback); err != nil {
		return nil, err
	}
	return w, nil
}

// Resolve turns a path or URL into the absolute URL used as cache key.
func (w *Worker) Resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", ref, err)
	}
	resolved := w.origin.ResolveReference(u)
	resolved.Fragment = ""
	return resolved.String(), nil
}

func (w *Worker) State() State {
	return State(w.state.Load())
}

// Claimed reports whether the worker intercepts requests.
func (w *Worker) Claimed() bool {
	return w.claimed.Load()
}

func (w *Worker) CacheName() string {
	return w.opts.CacheName
}

// Install fetches every manifest entry and stores them in the worker's
// generation. Nothing is stored unless every fetch returned an OK response;
// on failure the worker becomes redundant.
func (w *Worker) Install(ctx context.Context) error {
	w.state.Store(int32(StateInstalling))

	entries := make(map[string]*Response, len(w.opts.Manifest))
	for _, path := range w.opts.Manifest {
		key, err := w.Resolve(path)
		if err != nil {
			return w.failInstall(err)
		}

		resp, err := w.fetcher.Fetch(ctx, &Request{Method: fasthttp.MethodGet, URL: key})
		if err != nil {
			return w.failInstall(fmt.Errorf("%w: %s: %w", ErrPrecacheFailed, path, err))
		}
		if !resp.OK() {
			return w.failInstall(fmt.Errorf("%w: %s: status %d", ErrPrecacheFailed, path, resp.StatusCode))
		}
		entries[key] = resp.Clone()
	}

	if err := w.storage.PutAll(ctx, w.opts.CacheName, entries); err != nil {
		return w.failInstall(fmt.Errorf("store precache: %w", err))
	}

	w.state.Store(int32(StateInstalled))
	prom.AddOfflineInstall("ok")
	logger.Info("[offline] installed", "cache", w.opts.CacheName, "entries", len(entries))
	return nil
}

func (w *Worker) failInstall(err error) error {
	w.state.Store(int32(StateRedundant))
	prom.AddOfflineInstall("failed")
	logger.Error("[offline] install failed", "cache", w.opts.CacheName, "error", err)
	return err
}

// Activate deletes every other generation and starts intercepting requests.
func (w *Worker) Activate(ctx context.Context) error {
	if w.State() != StateInstalled {
		return ErrNotInstalled
	}
	w.state.Store(int32(StateActivating))

	generations, err := w.storage.Generations(ctx)
	if err != nil {
		return fmt.Errorf("list generations: %w", err)
	}
	for _, name := range generations {
		if name == w.opts.CacheName {
			continue
		}
		if err := w.storage.DeleteGeneration(ctx, name); err != nil {
			return fmt.Errorf("delete generation %s: %w", name, err)
		}
		logger.Info("[offline] stale generation deleted", "cache", name)
	}

	w.state.Store(int32(StateActivated))
	w.claimed.Store(true)
	logger.Info("[offline] activated", "cache", w.opts.CacheName)
	return nil
}

// Start installs and immediately activates the worker without waiting for
// a previous version.
func (w *Worker) Start(ctx context.Context) error {
	if err := w.Install(ctx); err != nil {
		return err
	}
	return w.Activate(ctx)
}

// Check reports whether the worker is intercepting requests with the shell
// page cached in its generation.
func (w *Worker) Check(ctx context.Context) error {
	if !w.Claimed() {
		return fmt.Errorf("%w: state %s", ErrNotInstalled, w.State())
	}
	keys, err := w.storage.Keys(ctx, w.opts.CacheName)
	if err != nil {
		return fmt.Errorf("list cache entries: %w", err)
	}
	if !slices.Contains(keys, w.fallback) {
		return ErrShellMissing
	}
	return nil
}

// Handle answers req from the cache or the network. intercepted is false
// when the request must go to the network untouched.
func (w *Worker) Handle(ctx context.Context, req *Request) (resp *Response, intercepted bool) {
	if w.skip(req) {
		return nil, false
	}
	if req.IsNavigation() {
		return w.networkFirst(ctx, req), true
	}
	return w.cacheFirst(ctx, req), true
}

func (w *Worker) skip(req *Request) bool {
	if !w.Claimed() || req.Method != fasthttp.MethodGet {
		return true
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return true
	}
	return slices.ContainsFunc(w.opts.ExcludedSchemes, func(s string) bool {
		return strings.EqualFold(u.Scheme, s)
	})
}

func (w *Worker) networkFirst(ctx context.Context, req *Request) *Response {
	resp, err := w.fetcher.Fetch(ctx, req)
	if err == nil {
		w.put(ctx, req.URL, resp)
		prom.AddOfflineResponse(strategyNetworkFirst, "network")
		return resp
	}
	logger.Debug("[offline] navigation fetch failed", "url", req.URL, "error", err)

	if cached := w.match(ctx, req.URL); cached != nil {
		prom.AddOfflineResponse(strategyNetworkFirst, "cache")
		return cached
	}
	if shell := w.match(ctx, w.fallback); shell != nil {
		prom.AddOfflineResponse(strategyNetworkFirst, "fallback")
		return shell
	}
	prom.AddOfflineResponse(strategyNetworkFirst, "error")
	return NetworkError()
}

func (w *Worker) cacheFirst(ctx context.Context, req *Request) *Response {
	if cached := w.match(ctx, req.URL); cached != nil {
		prom.AddOfflineResponse(strategyCacheFirst, "cache")
		return cached
	}

	resp, err := w.fetcher.Fetch(ctx, req)
	if err == nil {
		w.put(ctx, req.URL, resp)
		prom.AddOfflineResponse(strategyCacheFirst, "network")
		return resp
	}
	logger.Debug("[offline] fetch failed", "url", req.URL, "error", err)

	if req.Destination == DestinationDocument {
		if shell := w.match(ctx, w.fallback); shell != nil {
			prom.AddOfflineResponse(strategyCacheFirst, "fallback")
			return shell
		}
	}
	prom.AddOfflineResponse(strategyCacheFirst, "error")
	return NetworkError()
}

// put stores a copy of resp. Uncacheable responses are skipped and storage
// failures are only logged: the live response is still returned.
func (w *Worker) put(ctx context.Context, key string, resp *Response) {
	if !cacheable(resp) {
		return
	}
	if err := w.storage.Put(ctx, w.opts.CacheName, key, resp.Clone()); err != nil {
		logger.Warn("[offline] cache put failed", "url", key, "error", err)
	}
}

func (w *Worker) match(ctx context.Context, key string) *Response {
	resp, err := w.storage.Match(ctx, w.opts.CacheName, key)
	if err != nil {
		logger.Warn("[offline] cache match failed", "url", key, "error", err)
		return nil
	}
	return resp
}
