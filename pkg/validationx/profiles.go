package validationx

import (
	"github.com/ARUMANDESU/validation"
)

var (
	NameRules = []validation.Rule{
		validation.Required,
		validation.Length(2, 50),
	}

	EmailRules = []validation.Rule{
		validation.Required,
		IsEmail,
		validation.Length(5, 255),
	}

	PasswordRules = []validation.Rule{
		validation.Required,
		validation.Length(8, 100),
		PasswordFormat,
	}

	PhoneRules = []validation.Rule{
		validation.Required,
		IsPhone,
	}

	AddressRules = []validation.Rule{
		validation.Required,
		validation.Length(1, 500),
	}

	// LocationIDRules applies to the country/state/city/area foreign keys,
	// which must be positive integers.
	LocationIDRules = []validation.Rule{
		validation.Required,
		validation.Min(1),
	}
)
