package cmd

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/garageonwheels/gow-web/internal/domain/user"
	"gitlab.com/garageonwheels/gow-web/pkg/errorx"
	"gitlab.com/garageonwheels/gow-web/pkg/otelx"
)

type ChangePassword struct {
	UserID uuid.UUID
	Form   user.PasswordChangeForm
}

type ChangePasswordResult struct {
	Changed bool
	Status  int
	// Message is the remote API's reason on a 400 response, surfaced
	// verbatim to the form.
	Message string
}

type ChangePasswordHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	api    API
}

type ChangePasswordHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	API    API
}

func NewChangePasswordHandler(args ChangePasswordHandlerArgs) *ChangePasswordHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &ChangePasswordHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		api:    args.API,
	}
}

func (h *ChangePasswordHandler) Handle(ctx context.Context, cmd ChangePassword) (ChangePasswordResult, error) {
	const op = "cmd.ChangePasswordHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "ChangePasswordHandler.Handle")
	defer span.End()

	otelx.SetSpanAttrs(span, map[string]any{"user.id": cmd.UserID})

	if cmd.UserID == uuid.Nil {
		return ChangePasswordResult{}, errorx.Wrap(errorx.NewInvalidRequest(), op)
	}

	cmd.Form.Sanitized()
	if err := cmd.Form.Validate(); err != nil {
		otelx.RecordSpanError(span, err, "password form validation failed")
		return ChangePasswordResult{}, errorx.Wrap(err, op)
	}

	resp, err := h.api.ChangePassword(ctx, cmd.UserID, cmd.Form.OldPassword, cmd.Form.NewPassword)
	if err != nil {
		otelx.RecordSpanError(span, err, "change password call failed")
		return ChangePasswordResult{}, errorx.Wrap(err, op)
	}

	result := ChangePasswordResult{Status: resp.StatusCode}
	switch {
	case resp.IsSuccess():
		result.Changed = true
		h.logger.InfoContext(ctx, "password changed", "user_id", cmd.UserID)
	case resp.StatusCode == http.StatusBadRequest:
		result.Message = string(resp.Body)
		span.AddEvent("remote api rejected password change")
	default:
		span.AddEvent("remote api returned unexpected status")
		h.logger.WarnContext(ctx, "password change rejected",
			"status", resp.StatusCode,
			"user_id", cmd.UserID,
		)
	}

	return result, nil
}
