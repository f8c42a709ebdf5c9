package domain

// Role is the coarse authority level attached to a user. Registration always
// assigns RoleUser; RoleAdmin is granted out of band.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a stored role string to a Role. Unknown values fall back to
// RoleUser.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

func (r Role) String() string { return string(r) }
