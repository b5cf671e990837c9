package common

import (
	"time"

	"github.com/ulule/limiter"
)

var (
	// RateLimitAPI is the default rate limit of the public API router.
	RateLimitAPI = limiter.Rate{
		Period: time.Minute,
		Limit:  100,
	}
	// RateLimitNode is the default rate limit of the node router.
	RateLimitNode = limiter.Rate{
		Period: time.Second,
		Limit:  100,
	}
)

// RateLimitRule has the default rate limit and the per-client overrides
// keyed by ip address. An override with `Limit` below 1 means unlimited.
type RateLimitRule struct {
	Default     limiter.Rate
	ByIPAddress map[string]limiter.Rate
}

func NewRateLimitRule(rate limiter.Rate) RateLimitRule {
	return RateLimitRule{
		Default:     rate,
		ByIPAddress: map[string]limiter.Rate{},
	}
}
