package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/noah-isme/order-totals/internal/common"
)

// Handler throttles requests per key. Limiter failures fail open: an
// unreachable Redis must not take the API down.
type Handler struct {
	Limiter SlidingWindow
	KeyFunc func(*http.Request) string
	Window  time.Duration
	Max     int
	OnError func(error)
}

// Middleware applies the limit and annotates responses with X-RateLimit headers.
func (h Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.KeyFunc == nil {
			next.ServeHTTP(w, r)
			return
		}
		res, err := h.Limiter.Take(r.Context(), h.KeyFunc(r), h.Window, h.Max)
		if err != nil {
			if h.OnError != nil {
				h.OnError(err)
			}
			next.ServeHTTP(w, r)
			return
		}

		hdr := w.Header()
		hdr.Set("X-RateLimit-Limit", strconv.Itoa(max(h.Max, 0)))
		hdr.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		hdr.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			hdr.Set("Retry-After", strconv.Itoa(max(int(time.Until(res.ResetAt).Seconds()), 0)))
			common.JSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
