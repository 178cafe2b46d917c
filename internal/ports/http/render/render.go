// Package render executes the embedded server-side templates. Views stay
// dumb: every decision about what to show is made by the handlers and
// passed in as data.
package render

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/bridges/otelslog"

	gowweb "gitlab.com/garageonwheels/gow-web"
)

var logger = otelslog.NewLogger("gow-web/internal/ports/http/render")

type Renderer struct {
	logger *slog.Logger
	tmpl   *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(gowweb.Templates, "web/templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	return &Renderer{
		logger: logger,
		tmpl:   tmpl,
	}, nil
}

// HTML renders the named template into a buffer first so a template fault
// yields a clean 500 instead of a half-written page.
func (rd *Renderer) HTML(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := rd.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		rd.logger.ErrorContext(r.Context(), "template execution failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
