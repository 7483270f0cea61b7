package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"fermentlog-backend/pkg/observability"
)

// RequestMetrics publishes per-route count and latency after the response is
// written. Publication is synchronous: the Lambda environment freezes once
// the response is returned, so a background goroutine would silently lose
// datums. It only costs a PutMetricData call when metrics are enabled.
func RequestMetrics(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}

			metrics.RecordRequest(r.Context(), route, ww.Status(), time.Since(start))
		})
	}
}
