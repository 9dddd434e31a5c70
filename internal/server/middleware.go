// Provides request logging and instrumentation middleware.

package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/inventorysystem/inventory/internal/server/reqctx"
	"github.com/maruel/ksid"
)

// statusWriter records the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// instrument assigns a request ID, logs each request and records its metrics.
//
// The route label is the matched ServeMux pattern, which the mux stores on the
// request it is given.
func instrument(next http.Handler, m *metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := ksid.NewID()
		w.Header().Set("X-Request-ID", id.String())
		r = r.WithContext(reqctx.WithRequestID(r.Context(), id))
		sw := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(sw, r)

		if sw.status == 0 {
			sw.status = http.StatusOK
		}
		d := time.Since(start)
		m.observe(r.Pattern, r.Method, sw.status, d)
		level := slog.LevelInfo
		if sw.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(r.Context(), level, "http",
			"id", id.String(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"dur", d.Round(time.Microsecond),
			"ip", reqctx.GetClientIP(r),
		)
	})
}
