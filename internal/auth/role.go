package auth

import "strings"

// Role is the closed set of portal roles, decided once when a token is
// resolved and passed explicitly through the call chain.
type Role int

const (
	// RoleAnonymous is the zero role for requests without a resolvable token.
	RoleAnonymous Role = iota
	RoleStudent
	RoleTeacher
	RoleAdmin
)

// ParseRole maps a raw role claim onto the closed enum. Legacy tokens carry
// values like "ROLE_TEACHER" or "teacher"; anything containing TEACHER is a
// teacher, matching how the directory historically issued roles.
func ParseRole(raw string) Role {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case normalized == "ROLE_ADMIN" || normalized == "ADMIN":
		return RoleAdmin
	case strings.Contains(normalized, "TEACHER"):
		return RoleTeacher
	case normalized == "ROLE_STUDENT" || normalized == "STUDENT":
		return RoleStudent
	default:
		return RoleAnonymous
	}
}

// String returns the wire representation stored on user rows.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ROLE_ADMIN"
	case RoleTeacher:
		return "ROLE_TEACHER"
	case RoleStudent:
		return "ROLE_STUDENT"
	default:
		return ""
	}
}
