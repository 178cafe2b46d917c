package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/garageonwheels/gow-web/internal/domain/user"
	"gitlab.com/garageonwheels/gow-web/pkg/errorx"
	"gitlab.com/garageonwheels/gow-web/pkg/logging"
	"gitlab.com/garageonwheels/gow-web/pkg/otelx"
)

type UpdateProfile struct {
	Form      user.ProfileForm
	UpdatedBy uuid.UUID
}

type UpdateProfileHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	api    API
}

type UpdateProfileHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	API    API
}

func NewUpdateProfileHandler(args UpdateProfileHandlerArgs) *UpdateProfileHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &UpdateProfileHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		api:    args.API,
	}
}

func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfile) (UpdateResult, error) {
	const op = "cmd.UpdateProfileHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "UpdateProfileHandler.Handle")
	defer span.End()

	cmd.Form.Sanitized()
	otelx.SetSpanAttrs(span, map[string]any{
		"user.id":    cmd.Form.ID,
		"user.email": logging.RedactEmail(cmd.Form.Email),
	})

	if cmd.Form.ID == uuid.Nil {
		return UpdateResult{}, errorx.Wrap(errorx.NewInvalidRequest(), op)
	}
	if err := cmd.Form.Validate(); err != nil {
		otelx.RecordSpanError(span, err, "form validation failed")
		return UpdateResult{}, errorx.Wrap(err, op)
	}

	record := cmd.Form.ToUser()
	record.UpdatedBy = cmd.UpdatedBy
	record.UpdatedAt = time.Now().UTC()

	resp, err := h.api.UpdateUser(ctx, cmd.Form.ID, record)
	if err != nil {
		otelx.RecordSpanError(span, err, "update profile call failed")
		return UpdateResult{}, errorx.Wrap(err, op)
	}

	if resp.StatusCode != http.StatusNoContent {
		span.AddEvent("remote api rejected profile update")
		return UpdateResult{Status: resp.StatusCode}, nil
	}

	h.logger.InfoContext(ctx, "profile updated", "user_id", cmd.Form.ID)
	return UpdateResult{Updated: true, Status: resp.StatusCode}, nil
}
