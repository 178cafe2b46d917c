package role

type Role string

const (
	Unknown     = Role("")
	SuperAdmin  = Role("SuperAdmin")
	GarageOwner = Role("GarageOwner")
	Customer    = Role("Customer")
)

func (r Role) String() string {
	return string(r)
}

func IsValid[T Role | string](r T) bool {
	switch Role(r) {
	case SuperAdmin, GarageOwner, Customer:
		return true
	default:
		return false
	}
}

func All() []Role {
	return []Role{SuperAdmin, GarageOwner, Customer}
}
