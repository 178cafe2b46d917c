package gender

type Gender string

const (
	Unknown = Gender("")
	Male    = Gender("Male")
	Female  = Gender("Female")
	Other   = Gender("Other")
)

func (g Gender) String() string {
	return string(g)
}

func IsValid[T Gender | string](g T) bool {
	switch Gender(g) {
	case Male, Female, Other:
		return true
	default:
		return false
	}
}

func All() []Gender {
	return []Gender{Male, Female, Other}
}
