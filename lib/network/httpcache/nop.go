package httpcache

import "net/http"

// NopClient stands in for Client when caching is turned off.
type NopClient struct {
}

func (NopClient) WrapHandlerFunc(handlerFunc http.HandlerFunc) http.HandlerFunc {
	return handlerFunc
}

func NewNopClient() *NopClient {
	return &NopClient{}
}
