package cmd

import (
	"context"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"gitlab.com/garageonwheels/gow-web/internal/domain/user"
	"gitlab.com/garageonwheels/gow-web/pkg/errorx"
	"gitlab.com/garageonwheels/gow-web/pkg/logging"
	"gitlab.com/garageonwheels/gow-web/pkg/otelx"
)

// ErrInvalidOTP covers every non-success verification outcome; the remote
// API does not distinguish wrong, expired, and already-consumed codes.
var ErrInvalidOTP = &errorx.I18nError{
	MessageKey: "invalid_otp",
	Code:       errorx.CodeInvalid,
	HTTPCode:   http.StatusBadRequest,
}

type VerifyOTP struct {
	Form user.OTPForm
}

type VerifyOTPHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	api    API
}

type VerifyOTPHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	API    API
}

func NewVerifyOTPHandler(args VerifyOTPHandlerArgs) *VerifyOTPHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &VerifyOTPHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		api:    args.API,
	}
}

func (h *VerifyOTPHandler) Handle(ctx context.Context, cmd VerifyOTP) error {
	const op = "cmd.VerifyOTPHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "VerifyOTPHandler.Handle")
	defer span.End()

	cmd.Form.Sanitized()
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(cmd.Form.Email)})

	if err := cmd.Form.Validate(); err != nil {
		otelx.RecordSpanError(span, err, "otp form validation failed")
		return errorx.Wrap(err, op)
	}

	resp, err := h.api.VerifyEmail(ctx, cmd.Form.Email, cmd.Form.OTP)
	if err != nil {
		otelx.RecordSpanError(span, err, "verify email call failed")
		return errorx.Wrap(err, op)
	}

	if !resp.IsSuccess() {
		span.AddEvent("otp rejected")
		return ErrInvalidOTP
	}

	h.logger.InfoContext(ctx, "email verified", "email", logging.RedactEmail(cmd.Form.Email))
	return nil
}
