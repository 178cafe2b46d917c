package mocks

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"gitlab.com/garageonwheels/gow-web/internal/adapters/garageapi"
	"gitlab.com/garageonwheels/gow-web/internal/domain/user"
	"gitlab.com/garageonwheels/gow-web/internal/domain/valueobject/role"
)

// GarageAPI is a scriptable in-memory stand-in for the remote user API.
// Zero value behavior: empty listings, no users, no duplicate emails, all
// mutations succeed with their documented success status.
type GarageAPI struct {
	mu    sync.Mutex
	calls map[string]int

	Users          map[uuid.UUID]user.User
	ExistingEmails map[string]bool

	CreateStatus         int
	UpdateStatus         int
	DeleteStatus         int
	VerifyStatus         int
	ChangePasswordStatus int
	ChangePasswordBody   string

	SendOTPErr error
	FailWith   error
}

func NewGarageAPI() *GarageAPI {
	return &GarageAPI{
		calls:                make(map[string]int),
		Users:                make(map[uuid.UUID]user.User),
		ExistingEmails:       make(map[string]bool),
		CreateStatus:         http.StatusCreated,
		UpdateStatus:         http.StatusNoContent,
		DeleteStatus:         http.StatusNoContent,
		VerifyStatus:         http.StatusOK,
		ChangePasswordStatus: http.StatusOK,
	}
}

func (m *GarageAPI) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
}

func (m *GarageAPI) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *GarageAPI) AssertCalls(t *testing.T, op string, want int) *GarageAPI {
	t.Helper()
	require.Equal(t, want, m.Calls(op), "unexpected number of %s calls", op)
	return m
}

func (m *GarageAPI) SeedUser(t *testing.T, u user.User) *GarageAPI {
	t.Helper()
	m.Users[u.ID] = u
	m.ExistingEmails[u.Email] = true
	return m
}

func (m *GarageAPI) GetUser(_ context.Context, id uuid.UUID) (*user.User, error) {
	m.record("GetUser")
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *GarageAPI) list() []user.User {
	users := make([]user.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, u)
	}
	return users
}

func (m *GarageAPI) AllUsers(_ context.Context) ([]user.User, error) {
	m.record("AllUsers")
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return m.list(), nil
}

func (m *GarageAPI) AllCustomers(_ context.Context) ([]user.User, error) {
	m.record("AllCustomers")
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	var out []user.User
	for _, u := range m.list() {
		if u.Role == role.Customer {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *GarageAPI) AllGarageOwners(_ context.Context) ([]user.User, error) {
	m.record("AllGarageOwners")
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	var out []user.User
	for _, u := range m.list() {
		if u.Role == role.GarageOwner {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *GarageAPI) UsersByRole(_ context.Context, r role.Role) ([]user.User, error) {
	m.record("UsersByRole")
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	var out []user.User
	for _, u := range m.list() {
		if u.Role == r {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *GarageAPI) EmailExists(_ context.Context, email string) (bool, error) {
	m.record("EmailExists")
	if m.FailWith != nil {
		return false, m.FailWith
	}
	return m.ExistingEmails[email], nil
}

func (m *GarageAPI) CreateUser(_ context.Context, u user.User) (garageapi.Response, error) {
	m.record("CreateUser")
	if m.FailWith != nil {
		return garageapi.Response{}, m.FailWith
	}
	if m.CreateStatus == http.StatusCreated {
		u.ID = uuid.New()
		m.Users[u.ID] = u
		m.ExistingEmails[u.Email] = true
	}
	return garageapi.Response{StatusCode: m.CreateStatus}, nil
}

func (m *GarageAPI) UpdateUser(_ context.Context, id uuid.UUID, u user.User) (garageapi.Response, error) {
	m.record("UpdateUser")
	if m.FailWith != nil {
		return garageapi.Response{}, m.FailWith
	}
	if m.UpdateStatus == http.StatusNoContent {
		m.Users[id] = u
	}
	return garageapi.Response{StatusCode: m.UpdateStatus}, nil
}

func (m *GarageAPI) DeleteUser(_ context.Context, id uuid.UUID) (garageapi.Response, error) {
	m.record("DeleteUser")
	if m.FailWith != nil {
		return garageapi.Response{}, m.FailWith
	}
	if m.DeleteStatus == http.StatusNoContent {
		delete(m.Users, id)
	}
	return garageapi.Response{StatusCode: m.DeleteStatus}, nil
}

func (m *GarageAPI) SendOTP(_ context.Context, email string) error {
	m.record("SendOTP")
	if m.FailWith != nil {
		return m.FailWith
	}
	return m.SendOTPErr
}

func (m *GarageAPI) VerifyEmail(_ context.Context, email, otp string) (garageapi.Response, error) {
	m.record("VerifyEmail")
	if m.FailWith != nil {
		return garageapi.Response{}, m.FailWith
	}
	return garageapi.Response{StatusCode: m.VerifyStatus}, nil
}

func (m *GarageAPI) ChangePassword(_ context.Context, id uuid.UUID, currentPassword, newPassword string) (garageapi.Response, error) {
	m.record("ChangePassword")
	if m.FailWith != nil {
		return garageapi.Response{}, m.FailWith
	}
	return garageapi.Response{
		StatusCode: m.ChangePasswordStatus,
		Body:       []byte(m.ChangePasswordBody),
	}, nil
}
