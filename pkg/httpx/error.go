package httpx

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ARUMANDESU/validation"
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"

	gowweb "gitlab.com/garageonwheels/gow-web"
	"gitlab.com/garageonwheels/gow-web/pkg/errorx"
	"gitlab.com/garageonwheels/gow-web/pkg/otelx"
)

type ErrorHandler struct {
	bundle *i18n.Bundle
	enloc  *i18n.Localizer
}

func NewErrorHandler() *ErrorHandler {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.LoadMessageFileFS(gowweb.Locales, "locales/en.toml")
	bundle.LoadMessageFileFS(gowweb.Locales, "locales/validation.en.toml")

	return &ErrorHandler{
		bundle: bundle,
		enloc:  i18n.NewLocalizer(bundle, "en"),
	}
}

func (h *ErrorHandler) Localizer(lang string) *i18n.Localizer {
	if lang == "" || lang == "en" {
		return h.enloc
	}
	return i18n.NewLocalizer(h.bundle, lang, "en")
}

// FieldErrors flattens err into per-field messages for form redisplay.
// Non-validation errors map to a single non-field message under "".
func (h *ErrorHandler) FieldErrors(lang string, err error) map[string]string {
	localizer := h.Localizer(lang)
	out := make(map[string]string)

	var valErrs validation.Errors
	if errors.As(err, &valErrs) {
		for field, fieldErr := range valErrs {
			if valErr, ok := fieldErr.(validation.Error); ok {
				out[field] = localizeValidation(localizer, valErr)
			} else {
				out[field] = fieldErr.Error()
			}
		}
		return out
	}

	var valErr validation.Error
	if errors.As(err, &valErr) {
		out[""] = localizeValidation(localizer, valErr)
		return out
	}

	var appErr *errorx.I18nError
	if errors.As(err, &appErr) {
		out[""] = appErr.Localize(localizer)
		return out
	}

	out[""] = err.Error()
	return out
}

func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, span trace.Span, err error, msg string) {
	otelx.RecordSpanError(span, err, msg)
	slog.ErrorContext(r.Context(), msg, "error", err.Error())

	lang := r.Header.Get("Accept-Language")
	localizer := h.Localizer(lang)

	var appErr *errorx.I18nError
	if errors.As(err, &appErr) {
		writeError(w, r,
			appErr.Code,
			appErr.Localize(localizer),
			appErr.HTTPStatusCode(),
		)
		return
	}

	var valErrs validation.Errors
	if errors.As(err, &valErrs) {
		var sb strings.Builder
		for field, fieldErr := range valErrs {
			if valErr, ok := fieldErr.(validation.Error); ok {
				sb.WriteString(fmt.Sprintf("%s: %s; ", field, localizeValidation(localizer, valErr)))
			} else {
				sb.WriteString(fmt.Sprintf("%s: %s; ", field, fieldErr.Error()))
			}
		}
		writeError(w, r,
			errorx.CodeValidationFailed,
			sb.String(),
			http.StatusBadRequest,
		)
		return
	}

	var valErr validation.Error
	if errors.As(err, &valErr) {
		writeError(w, r,
			errorx.CodeValidationFailed,
			localizeValidation(localizer, valErr),
			http.StatusBadRequest,
		)
		return
	}

	slog.ErrorContext(r.Context(), "unhandled error", "error", err)
	internalErr := errorx.NewInternalError().WithCause(err)
	writeError(w, r,
		internalErr.Code,
		internalErr.Localize(localizer),
		internalErr.HTTPStatusCode(),
	)
}

func localizeValidation(localizer *i18n.Localizer, valErr validation.Error) string {
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    valErr.Code(),
		TemplateData: valErr.Params(),
	})
	if err != nil {
		return valErr.Error()
	}
	return msg
}

func writeError(w http.ResponseWriter, r *http.Request,
	code errorx.Code,
	message string,
	status int,
) {
	response := Envelope{
		"code":    code,
		"message": message,
		"success": false,
	}

	err := WriteJSON(w, status, response, nil)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to write error response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
