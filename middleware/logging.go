package middleware

import (
	"net/http"
	"time"

	"github.com/Dosada05/tt-championship/logger"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger attaches a logger tagged with the request id to every
// request and logs one line when the response is written.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := log.With("request_id", chiMiddleware.GetReqID(r.Context()))
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(WithLogger(r.Context(), reqLog)))

			reqLog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
