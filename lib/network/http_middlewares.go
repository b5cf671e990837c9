package network

import (
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/middleware/stdlib"
	"github.com/ulule/limiter/drivers/store/memory"

	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/network/httputils"
)

func RecoverMiddleware(logger logging.Logger) mux.MiddlewareFunc {
	if logger == nil {
		logger = log
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", rec)
					}
					httputils.WriteJSONError(w, err)
					logger.Error("recover an panic", "err", err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware throttles clients by ip address. The rule's
// `ByIPAddress` overrides win over `Default`; a rate with `Limit` under 1
// means unlimited. Each rate keeps its own in-memory counter store.
func RateLimitMiddleware(logger logging.Logger, rule common.RateLimitRule) mux.MiddlewareFunc {
	if logger == nil {
		logger = log
	}

	var defaultMiddleware *stdlib.Middleware
	if rule.Default.Limit > 0 {
		defaultMiddleware = stdlib.NewMiddleware(limiter.New(memory.NewStore(), rule.Default))
	}

	byIPAddress := map[string]*stdlib.Middleware{}
	for ip, rate := range rule.ByIPAddress {
		if rate.Limit < 1 { // unlimited
			byIPAddress[ip] = nil
			continue
		}
		byIPAddress[ip] = stdlib.NewMiddleware(limiter.New(memory.NewStore(), rate))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if m, found := byIPAddress[host]; found {
				if m == nil {
					next.ServeHTTP(w, r)
					return
				}
				m.Handler(next).ServeHTTP(w, r)
				return
			}

			if defaultMiddleware == nil {
				next.ServeHTTP(w, r)
				return
			}

			defaultMiddleware.Handler(next).ServeHTTP(w, r)
		})
	}
}
