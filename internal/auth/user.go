// Package auth signs users in against the identity provider and keeps their
// portal sessions.
package auth

import "strings"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleClient   Role = "client"
	RoleVendor   Role = "vendor"
	RoleProvider Role = "provider"
)

// ParseRole returns the known role named by s, or "" when s names none.
func ParseRole(s string) Role {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleClient, RoleVendor, RoleProvider:
		return r
	}
	return ""
}

type User struct {
	ID    string
	Email string
	Name  string
	Role  Role
}

// HasRole reports whether u is signed in with one of roles. A nil user or an
// empty role list never matches.
func HasRole(u *User, roles ...Role) bool {
	if u == nil || u.Role == "" {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
