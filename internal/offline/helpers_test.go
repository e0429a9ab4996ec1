package offline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/nimasrn/resto-manager/pkg/redis"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://resto.local/"

var errOffline = errors.New("network unreachable")

// fakeFetcher answers from a fixed table and fails every request while
// offline.
type fakeFetcher struct {
	mu        sync.Mutex
	offline   bool
	responses map[string]*Response
	calls     []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{responses: make(map[string]*Response)}
}

func (f *fakeFetcher) serve(url, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[url] = &Response{
		Type:       ResponseBasic,
		StatusCode: 200,
		Header:     map[string]string{"Content-Type": "text/html"},
		Body:       []byte(body),
	}
}

func (f *fakeFetcher) serveResponse(url string, resp *Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[url] = resp
}

func (f *fakeFetcher) setOffline(offline bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offline = offline
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeFetcher) Fetch(_ context.Context, req *Request) (*Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req.URL)
	if f.offline {
		return nil, errOffline
	}
	if resp, ok := f.responses[req.URL]; ok {
		return resp.Clone(), nil
	}
	return &Response{Type: ResponseBasic, StatusCode: 404, Body: []byte("not found")}, nil
}

var redisSeq int

func setupStorage(t *testing.T) *RedisStorage {
	mr := miniredis.RunT(t)
	redisSeq++
	name := fmt.Sprintf("offline-test-%d", redisSeq)
	rdb, err := redis.NewRedisAdapter(name, "test:", &redis.Options{Addrs: []string{mr.Addr()}})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = redis.CloseRedis(name)
	})
	return NewRedisStorage(rdb)
}

func testOptions() Options {
	return Options{
		CacheName:       "resto-manager-v2",
		OriginURL:       testOrigin,
		Manifest:        []string{"./", "./index.html", "./manifest.json", "./sw.js"},
		Fallback:        "./index.html",
		ExcludedSchemes: []string{"chrome-extension"},
	}
}

// onlineFetcher serves every manifest entry of testOptions.
func onlineFetcher() *fakeFetcher {
	f := newFakeFetcher()
	f.serve(testOrigin, "<html>root</html>")
	f.serve(testOrigin+"index.html", "<html>shell</html>")
	f.serve(testOrigin+"manifest.json", `{"name":"RestoManager"}`)
	f.serve(testOrigin+"sw.js", "// worker")
	return f
}

func setupWorker(t *testing.T) (*Worker, *fakeFetcher, *RedisStorage) {
	storage := setupStorage(t)
	fetcher := onlineFetcher()
	w, err := NewWorker(testOptions(), storage, fetcher)
	require.NoError(t, err)
	return w, fetcher, storage
}
