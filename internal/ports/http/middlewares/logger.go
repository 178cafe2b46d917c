package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger logs every completed request. Only the path is logged, never the
// query string: the verify-otp and notice flows carry email addresses and
// user-visible state there.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		t1 := time.Now()
		defer func() {
			logstr := fmt.Sprintf("%s %s - %d %dB in %s",
				r.Method,
				r.URL.Path,
				ww.Status(),
				ww.BytesWritten(),
				time.Since(t1),
			)
			logger := slog.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(t1)),
			)

			switch {
			case ww.Status() >= 500:
				logger.ErrorContext(r.Context(), logstr)
			case ww.Status() >= 400:
				logger.WarnContext(r.Context(), logstr)
			default:
				logger.InfoContext(r.Context(), logstr)
			}
		}()

		next.ServeHTTP(ww, r)
	})
}
