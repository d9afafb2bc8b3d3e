package auth

import "strings"

// Principal is the authenticated identity attached to a request. The zero
// value is the anonymous principal.
type Principal struct {
	UserID   uint
	Username string
	Role     Role
}

// IsAuthenticated reports whether a token was resolved for this request.
func (p Principal) IsAuthenticated() bool {
	return p.Role != RoleAnonymous && p.Username != ""
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsTeacher reports whether the principal holds the teacher role.
func (p Principal) IsTeacher() bool {
	return p.Role == RoleTeacher
}

// SameUser compares the principal's username case-insensitively.
func (p Principal) SameUser(username string) bool {
	if !p.IsAuthenticated() || username == "" {
		return false
	}
	return strings.EqualFold(p.Username, username)
}
