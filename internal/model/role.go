package model

import "strings"

// Role is the closed set of principal roles known to the platform.  The
// backend transmits roles as upper-case strings; ParseRole normalizes
// whatever arrives on the wire into one of the three constants below so
// that routing decisions never compare raw strings.
type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole maps a wire-format role string onto a Role constant.  Unknown
// or empty values return false; callers must treat that as "no role" rather
// than defaulting to the least privileged one, since a default would let a
// malformed session slip through the route guard.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleManager:
		return RoleManager, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

func (r Role) String() string { return string(r) }
