package cmd

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/garageonwheels/gow-web/internal/domain/user"
	"gitlab.com/garageonwheels/gow-web/tests/mocks"
)

func TestVerifyOTPHandler_HappyPath(t *testing.T) {
	t.Parallel()

	mockAPI := mocks.NewGarageAPI()
	h := NewVerifyOTPHandler(VerifyOTPHandlerArgs{API: mockAPI})

	err := h.Handle(context.Background(), VerifyOTP{
		Form: user.OTPForm{Email: "a.b@example.com", OTP: "123456"},
	})
	require.NoError(t, err)
	mockAPI.AssertCalls(t, "VerifyEmail", 1)
}

func TestVerifyOTPHandler_WrongCode(t *testing.T) {
	t.Parallel()

	mockAPI := mocks.NewGarageAPI()
	mockAPI.VerifyStatus = http.StatusBadRequest
	h := NewVerifyOTPHandler(VerifyOTPHandlerArgs{API: mockAPI})

	err := h.Handle(context.Background(), VerifyOTP{
		Form: user.OTPForm{Email: "a.b@example.com", OTP: "000000"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestVerifyOTPHandler_InvalidForm_NoRemoteCall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		form user.OTPForm
	}{
		{name: "empty email", form: user.OTPForm{OTP: "123456"}},
		{name: "empty otp", form: user.OTPForm{Email: "a.b@example.com"}},
		{name: "non-numeric otp", form: user.OTPForm{Email: "a.b@example.com", OTP: "12x456"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockAPI := mocks.NewGarageAPI()
			h := NewVerifyOTPHandler(VerifyOTPHandlerArgs{API: mockAPI})

			err := h.Handle(context.Background(), VerifyOTP{Form: tt.form})
			require.Error(t, err)
			mockAPI.AssertCalls(t, "VerifyEmail", 0)
		})
	}
}

func TestResendOTPHandler(t *testing.T) {
	t.Parallel()

	t.Run("resends for a valid email", func(t *testing.T) {
		t.Parallel()

		mockAPI := mocks.NewGarageAPI()
		h := NewResendOTPHandler(ResendOTPHandlerArgs{API: mockAPI})

		require.NoError(t, h.Handle(context.Background(), ResendOTP{Email: "a.b@example.com"}))
		mockAPI.AssertCalls(t, "SendOTP", 1)
	})

	t.Run("rejects an invalid email without calling out", func(t *testing.T) {
		t.Parallel()

		mockAPI := mocks.NewGarageAPI()
		h := NewResendOTPHandler(ResendOTPHandlerArgs{API: mockAPI})

		require.Error(t, h.Handle(context.Background(), ResendOTP{Email: "nope"}))
		mockAPI.AssertCalls(t, "SendOTP", 0)
	})
}
