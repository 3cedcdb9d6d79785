package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
)

// requestLogger logs one line per request in the development format
// "METHOD URL STATUS DURATION ms - BYTES".
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				size := "-"
				if n := ww.BytesWritten(); n > 0 {
					size = fmt.Sprint(n)
				}
				elapsed := float64(time.Since(start).Microseconds()) / 1000
				line := fmt.Sprintf("%s %s %d %.3f ms - %s", r.Method, r.URL.RequestURI(), status, elapsed, size)

				fields := []interface{}{"request_id", middleware.GetReqID(r.Context())}
				switch {
				case status >= 500:
					logger.Error(line, fields...)
				case status >= 400:
					logger.Warn(line, fields...)
				default:
					logger.Info(line, fields...)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// limitBody caps the request body; reads past the limit fail with
// *http.MaxBytesError.
func limitBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
