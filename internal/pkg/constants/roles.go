package constants

import "strings"

// Role is a company employee role.
type Role string

const (
	Owner   Role = "OWNER"
	Manager Role = "MANAGER"
	Regular Role = "REGULAR"
)

// ValidRoles is the set of allowed DB enum values for company_employees.role.
var ValidRoles = []Role{Owner, Manager, Regular}

// IsValidRole returns true if role is one of the allowed enum values.
func IsValidRole(role Role) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// ParseRole accepts any casing and returns the canonical role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, IsValidRole(r)
}
