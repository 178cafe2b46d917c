package user

import (
	"time"

	"github.com/google/uuid"

	"gitlab.com/garageonwheels/gow-web/internal/domain/valueobject/gender"
	"gitlab.com/garageonwheels/gow-web/internal/domain/valueobject/role"
)

// User is the authoritative user record as exchanged with the remote API.
// This application never stores it; instances live for one request only.
// JSON names follow the remote contract (camelCase).
type User struct {
	ID              uuid.UUID     `json:"id"`
	FirstName       string        `json:"firstName"`
	LastName        string        `json:"lastName"`
	Email           string        `json:"email"`
	Password        string        `json:"password,omitempty"` // write-only, never re-displayed
	Role            role.Role     `json:"role"`
	PhoneNo         string        `json:"phoneNo"`
	Gender          gender.Gender `json:"gender"`
	Address         string        `json:"address"`
	CountryID       int           `json:"countryId"`
	StateID         int           `json:"stateId"`
	CityID          int           `json:"cityId"`
	AreaID          int           `json:"areaId"`
	IsEmailVerified bool          `json:"isEmailVerified"`
	IsDelete        bool          `json:"isDelete"`
	CreatedBy       uuid.UUID     `json:"createdBy"`
	CreatedAt       time.Time     `json:"createdDate"`
	UpdatedBy       uuid.UUID     `json:"updatedBy"`
	UpdatedAt       time.Time     `json:"updatedDate"`
}

func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	return u.FirstName + " " + u.LastName
}
