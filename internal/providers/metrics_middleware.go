package providers

import (
	"grailhunter/internal/structures"
	"net/http"
	"time"
)

const unmatchedEndpoint = "unmatched"

// statusRecorder keeps the first status sent; a bare Write counts as 200.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

type routeLabels map[string]struct{}

func newRouteLabels(routes []structures.Route) routeLabels {
	known := make(routeLabels, len(routes))
	for _, route := range routes {
		known[route.Url] = struct{}{}
	}
	return known
}

// label keeps scanners probing random paths from growing the label set.
func (l routeLabels) label(path string) string {
	if _, ok := l[path]; ok {
		return path
	}
	return unmatchedEndpoint
}

// MetricsMiddleware records status and latency per registered route. A
// handler that panics is counted as a 500 before the panic continues up.
func MetricsMiddleware(metrics MetricsProviderInterface, routes []structures.Route, next http.Handler) http.Handler {
	labels := newRouteLabels(routes)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			status := rec.status
			if p := recover(); p != nil {
				status = http.StatusInternalServerError
				defer panic(p)
			}
			endpoint := labels.label(r.URL.Path)
			metrics.IncRequestsTotal(endpoint, status)
			metrics.ObserveRequestDuration(endpoint, time.Since(start))
		}()

		next.ServeHTTP(rec, r)
	})
}
