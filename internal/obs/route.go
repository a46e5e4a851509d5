package obs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RoutePattern returns the chi pattern that matched r. It is only complete
// after the router has served the request, so middleware calls it once
// next.ServeHTTP returns. Unmatched requests report fallback.
func RoutePattern(r *http.Request, fallback string) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if pattern := rc.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return fallback
}
