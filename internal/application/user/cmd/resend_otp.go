package cmd

import (
	"context"
	"log/slog"

	"github.com/ARUMANDESU/validation"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/garageonwheels/gow-web/pkg/errorx"
	"gitlab.com/garageonwheels/gow-web/pkg/logging"
	"gitlab.com/garageonwheels/gow-web/pkg/otelx"
	"gitlab.com/garageonwheels/gow-web/pkg/sanitizex"
	"gitlab.com/garageonwheels/gow-web/pkg/validationx"
)

// ResendOTP re-triggers the verification email. It compensates for a create
// whose follow-up OTP send failed, and covers codes that simply expired.
type ResendOTP struct {
	Email string
}

type ResendOTPHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	api    API
}

type ResendOTPHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	API    API
}

func NewResendOTPHandler(args ResendOTPHandlerArgs) *ResendOTPHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &ResendOTPHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		api:    args.API,
	}
}

func (h *ResendOTPHandler) Handle(ctx context.Context, cmd ResendOTP) error {
	const op = "cmd.ResendOTPHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "ResendOTPHandler.Handle")
	defer span.End()

	cmd.Email = sanitizex.CleanSingleLine(cmd.Email)
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(cmd.Email)})

	if err := validation.Validate(cmd.Email, validationx.EmailRules...); err != nil {
		otelx.RecordSpanError(span, err, "email validation failed")
		return errorx.Wrap(err, op)
	}

	if err := h.api.SendOTP(ctx, cmd.Email); err != nil {
		otelx.RecordSpanError(span, err, "otp resend failed")
		return errorx.Wrap(err, op)
	}

	h.logger.InfoContext(ctx, "otp resent", "email", logging.RedactEmail(cmd.Email))
	return nil
}
