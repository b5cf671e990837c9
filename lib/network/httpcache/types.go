package httpcache

import (
	"net/http"
	"time"
)

type Adapter interface {
	Get(key string) (*Response, bool)
	Set(key string, response *Response, expiration time.Time)
	Remove(key string)
}

// Response is a cached http response. A zero Expiration means the entry
// never expires on its own; the adapter may still evict it.
type Response struct {
	Value      []byte
	StatusCode int
	Header     http.Header
	Expiration time.Time
}
