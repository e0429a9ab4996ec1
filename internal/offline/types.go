package offline

import (
	"maps"
	"slices"

	"github.com/valyala/fasthttp"
)

const (
	ModeNavigate = "navigate"

	DestinationDocument = "document"
)

type ResponseType string

const (
	ResponseBasic ResponseType = "basic"
	// ResponseOpaque marks a cross-origin response. Its status is not
	// inspected before caching.
	ResponseOpaque ResponseType = "opaque"
	ResponseError  ResponseType = "error"
)

// Request is an outgoing asset request as the cache sees it. URL is absolute
// and doubles as the cache key.
type Request struct {
	Method      string
	URL         string
	Mode        string
	Destination string
	Header      map[string]string
	Body        []byte
}

func (r *Request) IsNavigation() bool {
	return r.Mode == ModeNavigate
}

type Response struct {
	Type       ResponseType      `json:"type"`
	StatusCode int               `json:"status"`
	Header     map[string]string `json:"header,omitempty"`
	Body       []byte            `json:"body,omitempty"`
}

// OK reports a non-error response with a 2xx status.
func (r *Response) OK() bool {
	return r != nil && r.Type != ResponseError && r.StatusCode >= fasthttp.StatusOK && r.StatusCode < fasthttp.StatusMultipleChoices
}

func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	return &Response{
		Type:       r.Type,
		StatusCode: r.StatusCode,
		Header:     maps.Clone(r.Header),
		Body:       slices.Clone(r.Body),
	}
}

// NetworkError is the generic failure result handed to the requester when
// neither the network nor the cache can answer.
func NetworkError() *Response {
	return &Response{Type: ResponseError}
}

// cacheable reports whether resp may be written to the cache: present, and
// either OK or opaque.
func cacheable(resp *Response) bool {
	if resp == nil {
		return false
	}
	return resp.OK() || resp.Type == ResponseOpaque
}
