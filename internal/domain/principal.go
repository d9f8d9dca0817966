// Package domain holds cross-cutting domain types shared by all entity
// packages.
package domain

import "strings"

// Role is the closed set of authorization roles a user can hold.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleSalesRep Role = "SALES_REP"
)

// Roles lists every valid role, in privilege order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleSalesRep}
}

// ParseRole resolves a string to a Role, case-insensitively.
func ParseRole(raw string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(RoleAdmin):
		return RoleAdmin, true
	case string(RoleManager):
		return RoleManager, true
	case string(RoleSalesRep):
		return RoleSalesRep, true
	}
	return "", false
}

// Principal captures the caller identity resolved for one request. It is
// built by the auth middleware after the bearer token and the account's
// active flag have both been checked, and discarded when the request ends.
type Principal struct {
	UserID   uint
	PublicID string
	Username string
	Email    string
	Role     Role
}

// HasRole checks set membership against the route's required roles.
func (p Principal) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal carries the ADMIN role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
