package ctxs

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/garageonwheels/gow-web/internal/domain/valueobject/role"
)

type ctxKey string

const userKey ctxKey = "sessionUser"

// User is the authenticated caller extracted from the session cookie.
type User struct {
	ID   uuid.UUID
	Role role.Role
}

func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromCtx(ctx context.Context) (*User, bool) {
	val := ctx.Value(userKey)
	if val == nil {
		return nil, false
	}

	user, ok := val.(*User)
	return user, ok
}
