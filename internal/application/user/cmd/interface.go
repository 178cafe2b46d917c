package cmd

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/garageonwheels/gow-web/internal/adapters/garageapi"
	"gitlab.com/garageonwheels/gow-web/internal/domain/user"
)

// API is the slice of the remote user API the command handlers consume.
type API interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, u user.User) (garageapi.Response, error)
	UpdateUser(ctx context.Context, id uuid.UUID, u user.User) (garageapi.Response, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (garageapi.Response, error)
	SendOTP(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, email, otp string) (garageapi.Response, error)
	ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) (garageapi.Response, error)
}
