package cmd

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/garageonwheels/gow-web/pkg/errorx"
	"gitlab.com/garageonwheels/gow-web/pkg/otelx"
)

type Delete struct {
	ID uuid.UUID
}

type DeleteResult struct {
	Deleted bool
	Status  int
}

type DeleteHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	api    API
}

type DeleteHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	API    API
}

func NewDeleteHandler(args DeleteHandlerArgs) *DeleteHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &DeleteHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		api:    args.API,
	}
}

func (h *DeleteHandler) Handle(ctx context.Context, cmd Delete) (DeleteResult, error) {
	const op = "cmd.DeleteHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "DeleteHandler.Handle")
	defer span.End()

	otelx.SetSpanAttrs(span, map[string]any{"user.id": cmd.ID})

	if cmd.ID == uuid.Nil {
		return DeleteResult{}, errorx.Wrap(errorx.NewInvalidRequest(), op)
	}

	resp, err := h.api.DeleteUser(ctx, cmd.ID)
	if err != nil {
		otelx.RecordSpanError(span, err, "delete user call failed")
		return DeleteResult{}, errorx.Wrap(err, op)
	}

	if resp.StatusCode != http.StatusNoContent {
		span.AddEvent("remote api rejected delete")
		h.logger.WarnContext(ctx, "user delete rejected",
			"status", resp.StatusCode,
			"user_id", cmd.ID,
		)
		return DeleteResult{Status: resp.StatusCode}, nil
	}

	h.logger.InfoContext(ctx, "user deleted", "user_id", cmd.ID)
	return DeleteResult{Deleted: true, Status: resp.StatusCode}, nil
}
