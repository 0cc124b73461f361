package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/portfolio/backend/internal/ratelimit"
)

const msgRateLimited = "Muitas requisições. Tente novamente em instantes."

// SecurityHeaders adds security response headers (CSP, X-Frame-Options, etc.)
// The API serves JSON only, so the CSP forbids every resource type.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("X-XSS-Protection", "0")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// RateLimit rejects clients that exceed the limiter's budget with 429.
// If the limiter itself fails the request is let through.
func RateLimit(l ratelimit.Limiter, trustedProxyCount int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ratelimit.ClientIP(r, trustedProxyCount)
			d, err := l.Allow(r.Context(), ip)
			if err != nil {
				slog.WarnContext(r.Context(), "rate limiter unavailable, allowing request", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !d.Allowed {
				ContactSubmissionsTotal.WithLabelValues(outcomeRateLimited).Inc()
				w.Header().Set("Retry-After", retryAfterSeconds(d.RetryAfter))
				writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: msgRateLimited})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(d.Seconds()) + 1
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
