package notify

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
)

// Connectivity reports whether the network is reachable.
type Connectivity interface {
	Online(ctx context.Context) bool
}

// DialProbe considers the network online when a TCP connection to Addr
// succeeds within Timeout.
type DialProbe struct {
	Addr    string
	Timeout time.Duration
}

func (p DialProbe) Online(ctx context.Context) bool {
	timeout := p.Timeout
	if d, ok := ctx.Deadline(); ok {
		if left := time.Until(d); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return false
	}

	conn, err := fasthttp.DialTimeout(p.Addr, timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
