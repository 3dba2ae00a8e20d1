package catelog

// Role is the coarse role carried by an authenticated identity.
type Role string

const (
	RoleCoach   Role = "coach"
	RoleMember  Role = "member"
	RoleUnknown Role = ""
)

// ParseRole maps a raw role label to a known Role. Unknown labels are
// RoleUnknown, which is authenticated but never privileged.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleCoach:
		return RoleCoach
	case RoleMember:
		return RoleMember
	default:
		return RoleUnknown
	}
}

// IsPrivileged reports whether the role may create, update or delete albums
// and photos.
func IsPrivileged(r Role) bool {
	return r == RoleCoach
}

// IsPrivileged reports whether r is the privileged role.
func (r Role) IsPrivileged() bool {
	return IsPrivileged(r)
}
