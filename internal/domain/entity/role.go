// Package entity contains the core business objects of the project.
package entity

// Role represents the stored role of a user account.
type Role string

const (
	// RoleAdmin indicates an administrator account.
	RoleAdmin Role = "admin"
	// RoleEditor indicates an editor account. New accounts default to this role.
	RoleEditor Role = "editor"
	// RoleViewer indicates a read-only viewer account.
	RoleViewer Role = "viewer"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	default:
		return false
	}
}

// RoleFromString converts a raw string to a Role, falling back to RoleEditor
// for unknown values so a missing or malformed role never escalates privileges.
func RoleFromString(s string) Role {
	role := Role(s)
	if !role.IsValid() {
		return RoleEditor
	}

	return role
}
