package validationx

import (
	"errors"
	"regexp"
	"unicode"

	"github.com/ARUMANDESU/validation"
)

var ErrInvalidPasswordFormat = validation.NewError(
	"validation_is_password",
	"must be at least 8 characters long, contain at least one uppercase letter, one lowercase letter, one digit, and one special character",
)

var (
	PasswordFormat = PasswordFormatRule{}
)

var (
	// Local part, then a domain of dotted labels with a letter TLD of 2-4
	// chars, or a bracketed numeric address.
	emailRegex = regexp.MustCompile(`^([a-zA-Z0-9_\-\.]+)@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.)|(([a-zA-Z0-9\-]+\.)+))([a-zA-Z]{2,4}|[0-9]{1,3})(\]?)$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\s\-().]{5,19}$`)
)

var IsEmail = validation.By(func(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Let Required handle emptiness
	}

	if !emailRegex.MatchString(s) {
		return errors.New("must be a valid email address")
	}
	return nil
})

var IsPhone = validation.By(func(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Let Required handle emptiness
	}

	if !phoneRegex.MatchString(s) {
		return errors.New("must be a valid phone number")
	}
	return nil
})

type PasswordFormatRule struct{}

// Validate checks a password for minimum length and presence of uppercase,
// lowercase, digit, and special character.
func (r PasswordFormatRule) Validate(value any) error {
	password, ok := value.(string)
	if !ok {
		return errors.New("value is not a string")
	}

	if len(password) < 8 {
		return ErrInvalidPasswordFormat
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool

	for _, char := range password {
		switch {
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsDigit(char):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return ErrInvalidPasswordFormat
	}

	return nil
}
