package security

import (
	"net/http"

	"github.com/noah-isme/order-totals/internal/common"
)

// BodyLimit caps request payload size. Declared lengths over the limit are
// rejected up front; chunked bodies are capped by http.MaxBytesReader and
// fail at read time instead.
type BodyLimit struct {
	Max int64
}

// Middleware enforces the limit on every request carrying a body.
func (b BodyLimit) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.Max <= 0 || r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}
		if r.ContentLength > b.Max {
			common.JSONError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "request body exceeds limit", nil)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, b.Max)
		next.ServeHTTP(w, r)
	})
}
