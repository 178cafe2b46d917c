package middlewares

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// OTel traces inbound requests. The handler is built once; span names use
// the request path without the query string, which carries emails here.
func OTel(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "gow-web",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
	)
}
