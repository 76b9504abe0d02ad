package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"oceandao.io/gov/lib/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps the wrapped writer usable for event streams.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// MeasureAPIMiddleware records request counts, error counts and latency per
// endpoint into the API metrics.
func MeasureAPIMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			endpoint := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					endpoint = tpl
				}
			}

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			begin := time.Now()
			metrics.API.RequestsInFlight.Add(1)
			next.ServeHTTP(recorder, r)
			metrics.API.RequestsInFlight.Add(-1)

			labels := []string{
				"endpoint", endpoint,
				"method", r.Method,
				"status", strconv.Itoa(recorder.status),
			}
			metrics.API.RequestsTotal.With(labels...).Add(1)
			if recorder.status >= http.StatusBadRequest {
				metrics.API.RequestErrorsTotal.With(labels...).Add(1)
			}
			metrics.API.RequestDurationSeconds.With(labels...).Observe(time.Since(begin).Seconds())
		})
	}
}
