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

type Update struct {
	Form      user.RegisterForm
	UpdatedBy uuid.UUID
}

type UpdateResult struct {
	// Updated reports whether the remote API applied the change (204).
	Updated bool
	Status  int
}

type UpdateHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	api    API
}

type UpdateHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	API    API
}

func NewUpdateHandler(args UpdateHandlerArgs) *UpdateHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &UpdateHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		api:    args.API,
	}
}

func (h *UpdateHandler) Handle(ctx context.Context, cmd Update) (UpdateResult, error) {
	const op = "cmd.UpdateHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "UpdateHandler.Handle")
	defer span.End()

	cmd.Form.Sanitized()
	otelx.SetSpanAttrs(span, map[string]any{
		"user.id":    cmd.Form.ID,
		"user.email": logging.RedactEmail(cmd.Form.Email),
	})

	if cmd.Form.ID == uuid.Nil {
		return UpdateResult{}, errorx.Wrap(errorx.NewInvalidRequest(), op)
	}
	if err := cmd.Form.ValidateForUpdate(); err != nil {
		otelx.RecordSpanError(span, err, "form validation failed")
		return UpdateResult{}, errorx.Wrap(err, op)
	}

	record := cmd.Form.ToUser()
	record.ID = cmd.Form.ID
	record.IsEmailVerified = cmd.Form.IsEmailVerified
	record.UpdatedBy = cmd.UpdatedBy
	record.UpdatedAt = time.Now().UTC()

	resp, err := h.api.UpdateUser(ctx, cmd.Form.ID, record)
	if err != nil {
		otelx.RecordSpanError(span, err, "update user call failed")
		return UpdateResult{}, errorx.Wrap(err, op)
	}

	if resp.StatusCode != http.StatusNoContent {
		span.AddEvent("remote api rejected update")
		h.logger.WarnContext(ctx, "user update rejected",
			"status", resp.StatusCode,
			"user_id", cmd.Form.ID,
		)
		return UpdateResult{Status: resp.StatusCode}, nil
	}

	h.logger.InfoContext(ctx, "user updated", "user_id", cmd.Form.ID)
	return UpdateResult{Updated: true, Status: resp.StatusCode}, nil
}
