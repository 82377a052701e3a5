package providers

import (
	"net/http"
	"strings"
)

// OriginMiddleware rejects cross-site POSTs from origins outside allowed.
// Requests without an Origin header pass. An empty list disables the check.
func OriginMiddleware(allowed []string, next http.Handler) http.Handler {
	if len(allowed) == 0 {
		return next
	}

	origins := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		origins[strings.TrimRight(strings.TrimSpace(o), "/")] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if origin := r.Header.Get("Origin"); origin != "" {
				if _, ok := origins[origin]; !ok {
					WriteError(w, http.StatusForbidden, "Forbidden origin")
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
