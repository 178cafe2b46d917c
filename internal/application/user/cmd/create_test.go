package cmd

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/ARUMANDESU/validation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/garageonwheels/gow-web/internal/domain/user"
	"gitlab.com/garageonwheels/gow-web/internal/domain/valueobject/gender"
	"gitlab.com/garageonwheels/gow-web/internal/domain/valueobject/role"
	"gitlab.com/garageonwheels/gow-web/tests/mocks"
)

type CreateSuite struct {
	Handler *CreateHandler
	MockAPI *mocks.GarageAPI
}

func NewCreateSuite() *CreateSuite {
	mockAPI := mocks.NewGarageAPI()
	return &CreateSuite{
		Handler: NewCreateHandler(CreateHandlerArgs{API: mockAPI}),
		MockAPI: mockAPI,
	}
}

func validForm() user.RegisterForm {
	return user.RegisterForm{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@example.com",
		Password:  "Str0ngP@ss",
		Role:      role.Customer,
		PhoneNo:   "+7 701 123 4567",
		Gender:    gender.Male,
		Address:   "12 Main St",
		CountryID: 1,
		StateID:   1,
		CityID:    1,
		AreaID:    1,
	}
}

func TestCreateHandler_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewCreateSuite()
	creator := uuid.New()

	result, err := s.Handler.Handle(context.Background(), Create{Form: validForm(), CreatedBy: creator})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.True(t, result.OTPSent)

	// Exactly one duplicate check, one create, one OTP send.
	s.MockAPI.
		AssertCalls(t, "EmailExists", 1).
		AssertCalls(t, "CreateUser", 1).
		AssertCalls(t, "SendOTP", 1)

	// The creator id is stamped onto the submitted record.
	require.Len(t, s.MockAPI.Users, 1)
	for _, u := range s.MockAPI.Users {
		assert.Equal(t, creator, u.CreatedBy)
		assert.False(t, u.IsEmailVerified, "a create never pre-verifies the email")
	}
}

func TestCreateHandler_DuplicateEmail_AbortsBeforeSubmission(t *testing.T) {
	t.Parallel()

	s := NewCreateSuite()
	form := validForm()
	s.MockAPI.ExistingEmails[form.Email] = true

	_, err := s.Handler.Handle(context.Background(), Create{Form: form, CreatedBy: uuid.New()})
	require.Error(t, err)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "Email")

	s.MockAPI.
		AssertCalls(t, "EmailExists", 1).
		AssertCalls(t, "CreateUser", 0).
		AssertCalls(t, "SendOTP", 0)
}

func TestCreateHandler_InvalidForm_NoRemoteCalls(t *testing.T) {
	t.Parallel()

	s := NewCreateSuite()
	form := validForm()
	form.Email = "nope"

	_, err := s.Handler.Handle(context.Background(), Create{Form: form, CreatedBy: uuid.New()})
	require.Error(t, err)

	s.MockAPI.
		AssertCalls(t, "EmailExists", 0).
		AssertCalls(t, "CreateUser", 0).
		AssertCalls(t, "SendOTP", 0)
}

func TestCreateHandler_RemoteRejects_NoOTP(t *testing.T) {
	t.Parallel()

	s := NewCreateSuite()
	s.MockAPI.CreateStatus = http.StatusInternalServerError

	result, err := s.Handler.Handle(context.Background(), Create{Form: validForm(), CreatedBy: uuid.New()})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, http.StatusInternalServerError, result.Status)

	s.MockAPI.AssertCalls(t, "SendOTP", 0)
}

func TestCreateHandler_OTPSendFails_CreateStillSucceeds(t *testing.T) {
	t.Parallel()

	s := NewCreateSuite()
	s.MockAPI.SendOTPErr = errors.New("smtp down")

	result, err := s.Handler.Handle(context.Background(), Create{Form: validForm(), CreatedBy: uuid.New()})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.False(t, result.OTPSent)

	s.MockAPI.AssertCalls(t, "SendOTP", 1)
}

func TestCreateHandler_DuplicateCheckFault_Propagates(t *testing.T) {
	t.Parallel()

	s := NewCreateSuite()
	s.MockAPI.FailWith = errors.New("connection refused")

	_, err := s.Handler.Handle(context.Background(), Create{Form: validForm(), CreatedBy: uuid.New()})
	require.Error(t, err)

	s.MockAPI.AssertCalls(t, "CreateUser", 0)
}
