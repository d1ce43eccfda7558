// internal/domain/models/role.go
package models

import "fmt"

// Role is the account kind an authenticated user acts as. Every request is
// evaluated against exactly one role; there is no role hierarchy.
type Role string

const (
	RoleFacilitator Role = "facilitator"
	RoleYouth       Role = "youth"
)

// ParseRole maps a stored or token-carried string to a Role. Unknown values
// are an error so that authorization fails closed.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleFacilitator:
		return RoleFacilitator, nil
	case RoleYouth:
		return RoleYouth, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string { return string(r) }

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleFacilitator || r == RoleYouth
}
