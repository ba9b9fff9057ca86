// Package ratelimit provides the per-client limiters used by the HTTP
// middleware: an in-process token bucket and a Redis fixed window shared
// between replicas.
package ratelimit

import "context"

// Limiter decides whether one more request from key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Shutdown()
}
