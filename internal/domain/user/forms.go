package user

import (
	"errors"
	"strings"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"
	"github.com/google/uuid"

	"gitlab.com/garageonwheels/gow-web/internal/domain/valueobject/gender"
	"gitlab.com/garageonwheels/gow-web/internal/domain/valueobject/role"
	"gitlab.com/garageonwheels/gow-web/pkg/sanitizex"
	"gitlab.com/garageonwheels/gow-web/pkg/validationx"
)

const OTPLength = 6

var (
	roleRule = validation.By(func(value any) error {
		if !role.IsValid(value.(role.Role)) {
			return errors.New("must be a valid role")
		}
		return nil
	})

	genderRule = validation.By(func(value any) error {
		if !gender.IsValid(value.(gender.Gender)) {
			return errors.New("must be a valid gender")
		}
		return nil
	})
)

// RegisterForm carries a user create or admin-edit submission. It exists
// only for the duration of the request.
type RegisterForm struct {
	ID              uuid.UUID
	FirstName       string
	LastName        string
	Email           string
	Password        string
	Role            role.Role
	PhoneNo         string
	Gender          gender.Gender
	Address         string
	CountryID       int
	StateID         int
	CityID          int
	AreaID          int
	IsEmailVerified bool
	IsDelete        bool
	CreatedBy       uuid.UUID
	CreatedAt       time.Time
	UpdatedBy       uuid.UUID
	UpdatedAt       time.Time
	IsProfileEdit   *bool
}

func (f *RegisterForm) Sanitized() {
	f.FirstName = sanitizex.CleanSingleLine(f.FirstName)
	f.LastName = sanitizex.CleanSingleLine(f.LastName)
	f.Email = sanitizex.CleanSingleLine(f.Email)
	f.PhoneNo = sanitizex.CleanSingleLine(f.PhoneNo)
	f.Address = sanitizex.CleanMultiline(f.Address)
	f.Password = strings.TrimSpace(f.Password)
}

// Validate checks the form for a create submission, where a password is
// mandatory.
func (f *RegisterForm) Validate() error {
	return f.validate(true)
}

// ValidateForUpdate checks the form for an edit submission; the password is
// not collected again on edit.
func (f *RegisterForm) ValidateForUpdate() error {
	return f.validate(false)
}

func (f *RegisterForm) validate(withPassword bool) error {
	fields := []*validation.FieldRules{
		validation.Field(&f.FirstName, validationx.NameRules...),
		validation.Field(&f.LastName, validationx.NameRules...),
		validation.Field(&f.Email, validationx.EmailRules...),
		validation.Field(&f.Role, validation.Required, roleRule),
		validation.Field(&f.PhoneNo, validationx.PhoneRules...),
		validation.Field(&f.Gender, validation.Required, genderRule),
		validation.Field(&f.Address, validationx.AddressRules...),
		validation.Field(&f.CountryID, validationx.LocationIDRules...),
		validation.Field(&f.StateID, validationx.LocationIDRules...),
		validation.Field(&f.CityID, validationx.LocationIDRules...),
		validation.Field(&f.AreaID, validationx.LocationIDRules...),
	}
	if withPassword {
		fields = append(fields, validation.Field(&f.Password, validationx.PasswordRules...))
	}

	return validation.ValidateStruct(f, fields...)
}

// ToUser copies the form onto a fresh User record. Fields not copied, by
// design: ID (the remote API assigns it), IsEmailVerified (never
// auto-verified by a form), CreatedAt (the remote API stamps it),
// IsProfileEdit (form-only marker).
func (f *RegisterForm) ToUser() User {
	return User{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Password:  f.Password,
		Role:      f.Role,
		PhoneNo:   f.PhoneNo,
		Gender:    f.Gender,
		Address:   f.Address,
		CountryID: f.CountryID,
		StateID:   f.StateID,
		CityID:    f.CityID,
		AreaID:    f.AreaID,
		IsDelete:  f.IsDelete,
		CreatedBy: f.CreatedBy,
		UpdatedBy: f.UpdatedBy,
		UpdatedAt: f.UpdatedAt,
	}
}

// RegisterFormFromUser pre-fills an edit form from an existing record.
// Fields not copied, by design: UpdatedBy and UpdatedAt (stamped on the next
// submission, not displayed). The password travels along so the update does
// not blank it; it is never rendered.
func RegisterFormFromUser(u User) RegisterForm {
	return RegisterForm{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Password:  u.Password,
		Role:      u.Role,
		PhoneNo:   u.PhoneNo,
		Gender:    u.Gender,
		Address:   u.Address,
		CountryID: u.CountryID,
		StateID:   u.StateID,
		CityID:    u.CityID,
		AreaID:    u.AreaID,
		IsDelete:  u.IsDelete,
		CreatedBy: u.CreatedBy,
		CreatedAt: u.CreatedAt,
	}
}

// ProfileForm is the self-service variant of RegisterForm: no password, no
// creator fields.
type ProfileForm struct {
	ID              uuid.UUID
	FirstName       string
	LastName        string
	Email           string
	Role            role.Role
	PhoneNo         string
	Gender          gender.Gender
	Address         string
	CountryID       int
	StateID         int
	CityID          int
	AreaID          int
	IsEmailVerified bool
	IsDelete        bool
	UpdatedBy       uuid.UUID
	UpdatedAt       time.Time
}

func (f *ProfileForm) Sanitized() {
	f.FirstName = sanitizex.CleanSingleLine(f.FirstName)
	f.LastName = sanitizex.CleanSingleLine(f.LastName)
	f.Email = sanitizex.CleanSingleLine(f.Email)
	f.PhoneNo = sanitizex.CleanSingleLine(f.PhoneNo)
	f.Address = sanitizex.CleanMultiline(f.Address)
}

func (f *ProfileForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.FirstName, validationx.NameRules...),
		validation.Field(&f.LastName, validationx.NameRules...),
		validation.Field(&f.Email, validationx.EmailRules...),
		validation.Field(&f.Role, validation.Required, roleRule),
		validation.Field(&f.PhoneNo, validationx.PhoneRules...),
		validation.Field(&f.Gender, validation.Required, genderRule),
		validation.Field(&f.Address, validationx.AddressRules...),
		validation.Field(&f.CountryID, validationx.LocationIDRules...),
		validation.Field(&f.StateID, validationx.LocationIDRules...),
		validation.Field(&f.CityID, validationx.LocationIDRules...),
		validation.Field(&f.AreaID, validationx.LocationIDRules...),
	)
}

// ToUser copies the form onto a User record. Fields not copied, by design:
// Password (self-service edits never change it), CreatedBy and CreatedAt
// (immutable once set).
func (f *ProfileForm) ToUser() User {
	return User{
		ID:              f.ID,
		FirstName:       f.FirstName,
		LastName:        f.LastName,
		Email:           f.Email,
		Role:            f.Role,
		PhoneNo:         f.PhoneNo,
		Gender:          f.Gender,
		Address:         f.Address,
		CountryID:       f.CountryID,
		StateID:         f.StateID,
		CityID:          f.CityID,
		AreaID:          f.AreaID,
		IsEmailVerified: f.IsEmailVerified,
		IsDelete:        f.IsDelete,
		UpdatedBy:       f.UpdatedBy,
		UpdatedAt:       f.UpdatedAt,
	}
}

// ProfileFormFromUser is the symmetric inverse of ProfileForm.ToUser for
// the shared field set.
func ProfileFormFromUser(u User) ProfileForm {
	return ProfileForm{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Role:            u.Role,
		PhoneNo:         u.PhoneNo,
		Gender:          u.Gender,
		Address:         u.Address,
		CountryID:       u.CountryID,
		StateID:         u.StateID,
		CityID:          u.CityID,
		AreaID:          u.AreaID,
		IsEmailVerified: u.IsEmailVerified,
		IsDelete:        u.IsDelete,
		UpdatedBy:       u.UpdatedBy,
		UpdatedAt:       u.UpdatedAt,
	}
}

// ProfileFormsFromUsers maps element-wise, preserving order. No filtering,
// no deduplication.
func ProfileFormsFromUsers(users []User) []ProfileForm {
	forms := make([]ProfileForm, 0, len(users))
	for _, u := range users {
		forms = append(forms, ProfileFormFromUser(u))
	}
	return forms
}

// UsersFromProfileForms maps element-wise, preserving order.
func UsersFromProfileForms(forms []ProfileForm) []User {
	users := make([]User, 0, len(forms))
	for _, f := range forms {
		users = append(users, f.ToUser())
	}
	return users
}

// OTPForm carries one leg of the email verification exchange. The code is
// consumed by the remote API exactly once on success.
type OTPForm struct {
	Email string
	OTP   string
}

func (f *OTPForm) Sanitized() {
	f.Email = sanitizex.CleanSingleLine(f.Email)
	f.OTP = sanitizex.CleanSingleLine(f.OTP)
}

func (f *OTPForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Email, validationx.EmailRules...),
		validation.Field(&f.OTP,
			validation.Required,
			validation.Length(OTPLength, OTPLength),
			is.Digit,
		),
	)
}

// PasswordChangeForm is validated and forwarded verbatim, never persisted.
type PasswordChangeForm struct {
	OldPassword string
	NewPassword string
}

func (f *PasswordChangeForm) Sanitized() {
	f.OldPassword = strings.TrimSpace(f.OldPassword)
	f.NewPassword = strings.TrimSpace(f.NewPassword)
}

func (f *PasswordChangeForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.OldPassword, validation.Required),
		validation.Field(&f.NewPassword, validationx.PasswordRules...),
	)
}
