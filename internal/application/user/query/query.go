package query

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/garageonwheels/gow-web/internal/domain/user"
	"gitlab.com/garageonwheels/gow-web/internal/domain/valueobject/role"
	"gitlab.com/garageonwheels/gow-web/pkg/errorx"
	"gitlab.com/garageonwheels/gow-web/pkg/otelx"
)

var (
	tracer = otel.Tracer("gow-web/application/user/query")
	logger = otelslog.NewLogger("gow-web/application/user/query")
)

// API is the read-only slice of the remote user API the queries consume.
type API interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
	AllUsers(ctx context.Context) ([]user.User, error)
	AllCustomers(ctx context.Context) ([]user.User, error)
	AllGarageOwners(ctx context.Context) ([]user.User, error)
	UsersByRole(ctx context.Context, r role.Role) ([]user.User, error)
}

type Get struct {
	ID uuid.UUID
}

type GetHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	api    API
}

type GetHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	API    API
}

func NewGetHandler(args GetHandlerArgs) *GetHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &GetHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		api:    args.API,
	}
}

func (h *GetHandler) Handle(ctx context.Context, q Get) (*user.User, error) {
	const op = "query.GetHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "GetHandler.Handle")
	defer span.End()

	otelx.SetSpanAttrs(span, map[string]any{"user.id": q.ID})

	if q.ID == uuid.Nil {
		return nil, errorx.Wrap(errorx.NewInvalidRequest(), op)
	}

	u, err := h.api.GetUser(ctx, q.ID)
	if err != nil {
		otelx.RecordSpanError(span, err, "get user call failed")
		return nil, errorx.Wrap(err, op)
	}
	if u == nil {
		span.AddEvent("user not found")
		return nil, errorx.Wrap(errorx.NewResourceNotFound("User"), op)
	}

	return u, nil
}

// Scope names a listing; each maps onto one remote endpoint.
type Scope string

const (
	ScopeAll          Scope = "all"
	ScopeCustomers    Scope = "customers"
	ScopeGarageOwners Scope = "garageowners"
	ScopeByRole       Scope = "by-role"
)

type List struct {
	Scope Scope
	// Role applies only to ScopeByRole.
	Role role.Role
}

type ListHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	api    API
}

type ListHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	API    API
}

func NewListHandler(args ListHandlerArgs) *ListHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &ListHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		api:    args.API,
	}
}

// Handle fetches one listing. Every scope surfaces remote faults the same
// way; none swallows them into an empty result.
func (h *ListHandler) Handle(ctx context.Context, q List) ([]user.User, error) {
	const op = "query.ListHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "ListHandler.Handle")
	defer span.End()

	otelx.SetSpanAttrs(span, map[string]any{"scope": string(q.Scope), "role": q.Role})

	var (
		users []user.User
		err   error
	)
	switch q.Scope {
	case ScopeAll:
		users, err = h.api.AllUsers(ctx)
	case ScopeCustomers:
		users, err = h.api.AllCustomers(ctx)
	case ScopeGarageOwners:
		users, err = h.api.AllGarageOwners(ctx)
	case ScopeByRole:
		if !role.IsValid(q.Role) {
			return nil, errorx.Wrap(errorx.NewInvalidRequest(), op)
		}
		users, err = h.api.UsersByRole(ctx, q.Role)
	default:
		return nil, errorx.Wrap(errorx.NewInvalidRequest(), op)
	}
	if err != nil {
		otelx.RecordSpanError(span, err, "listing fetch failed")
		return nil, errorx.Wrap(err, op)
	}

	if users == nil {
		users = []user.User{}
	}
	return users, nil
}
