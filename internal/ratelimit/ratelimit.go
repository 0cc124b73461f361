// Package ratelimit enforces per-client request budgets over a one-minute window.
package ratelimit

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"
)

// Window is the length of every rate-limit window.
const Window = time.Minute

// ErrBackend wraps failures of a shared limiter backend such as Redis.
var ErrBackend = errors.New("rate limiter backend")

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed bool
	// RetryAfter is how long the client should wait; zero when Allowed.
	RetryAfter time.Duration
}

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// ClientIP extracts the real client IP, reading from the rightmost trusted
// proxy position in X-Forwarded-For to prevent spoofing.
func ClientIP(r *http.Request, trustedProxyCount int) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && trustedProxyCount > 0 {
		parts := strings.Split(xff, ",")
		// The rightmost entry added by our infrastructure is at
		// index len(parts) - trustedProxyCount.
		idx := len(parts) - trustedProxyCount
		if idx >= 0 && idx < len(parts) {
			return strings.TrimSpace(parts[idx])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
