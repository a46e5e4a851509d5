package security

import (
	"net/http"
	"strconv"
	"strings"
)

// Headers sets response headers for a JSON-only API.
type Headers struct {
	Enable     bool
	HSTSMaxAge int
}

// Middleware attaches the headers to every response. Quotes depend on the
// submitted cart, so responses are marked non-cacheable for shared caches.
// HSTS is sent only for TLS requests, including TLS terminated upstream.
func (h Headers) Middleware(next http.Handler) http.Handler {
	if !h.Enable {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := w.Header()
		headers.Set("X-Content-Type-Options", "nosniff")
		headers.Set("X-Frame-Options", "DENY")
		headers.Set("Referrer-Policy", "no-referrer")
		headers.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		headers.Set("Cache-Control", "no-store")
		if h.HSTSMaxAge > 0 && isTLS(r) {
			headers.Set("Strict-Transport-Security", "max-age="+strconv.Itoa(h.HSTSMaxAge))
		}
		next.ServeHTTP(w, r)
	})
}

func isTLS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https")
}
