package cmd

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ARUMANDESU/validation"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/garageonwheels/gow-web/internal/domain/user"
	"gitlab.com/garageonwheels/gow-web/pkg/errorx"
	"gitlab.com/garageonwheels/gow-web/pkg/logging"
	"gitlab.com/garageonwheels/gow-web/pkg/otelx"
)

var (
	tracer = otel.Tracer("gow-web/application/user/cmd")
	logger = otelslog.NewLogger("gow-web/application/user/cmd")
)

var errDuplicateEmail = validation.NewError("duplicate_email", "Email Already Exist.")

type Create struct {
	Form      user.RegisterForm
	CreatedBy uuid.UUID
}

type CreateResult struct {
	// Created reports whether the remote API accepted the record (201).
	Created bool
	// OTPSent is false when the post-create OTP trigger failed; the verify
	// page offers a resend in that case.
	OTPSent bool
	// Status is the raw remote status for non-created outcomes.
	Status int
}

type CreateHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	api    API
}

type CreateHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	API    API
}

func NewCreateHandler(args CreateHandlerArgs) *CreateHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &CreateHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		api:    args.API,
	}
}

func (h *CreateHandler) Handle(ctx context.Context, cmd Create) (CreateResult, error) {
	const op = "cmd.CreateHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "CreateHandler.Handle")
	defer span.End()

	cmd.Form.Sanitized()
	otelx.SetSpanAttrs(span, map[string]any{
		"user.email": logging.RedactEmail(cmd.Form.Email),
		"user.role":  cmd.Form.Role,
	})

	if err := cmd.Form.Validate(); err != nil {
		otelx.RecordSpanError(span, err, "form validation failed")
		return CreateResult{}, errorx.Wrap(err, op)
	}

	// Fail fast on duplicates before any submission.
	exists, err := h.api.EmailExists(ctx, cmd.Form.Email)
	if err != nil {
		otelx.RecordSpanError(span, err, "duplicate email check failed")
		return CreateResult{}, errorx.Wrap(err, op)
	}
	if exists {
		span.AddEvent("duplicate email, aborting create")
		return CreateResult{}, validation.Errors{"Email": errDuplicateEmail}
	}

	record := cmd.Form.ToUser()
	record.CreatedBy = cmd.CreatedBy

	resp, err := h.api.CreateUser(ctx, record)
	if err != nil {
		otelx.RecordSpanError(span, err, "create user call failed")
		return CreateResult{}, errorx.Wrap(err, op)
	}

	if resp.StatusCode != http.StatusCreated {
		span.AddEvent("remote api rejected create")
		h.logger.WarnContext(ctx, "user create rejected",
			"status", resp.StatusCode,
			"email", logging.RedactEmail(cmd.Form.Email),
		)
		return CreateResult{Status: resp.StatusCode}, nil
	}

	result := CreateResult{Created: true, OTPSent: true, Status: resp.StatusCode}

	// The create and the OTP send are two separate remote calls; a failed
	// send leaves a created-but-unverified account, compensated by the
	// resend action rather than failing the create.
	if err := h.api.SendOTP(ctx, cmd.Form.Email); err != nil {
		otelx.RecordSpanError(span, err, "otp send failed after create")
		h.logger.ErrorContext(ctx, "otp send failed after create",
			"error", err,
			"email", logging.RedactEmail(cmd.Form.Email),
		)
		result.OTPSent = false
	}

	h.logger.InfoContext(ctx, "user created",
		"email", logging.RedactEmail(cmd.Form.Email),
		"otp_sent", result.OTPSent,
	)
	return result, nil
}
