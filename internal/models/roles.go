package models

import "fmt"

// Role is the role a member holds within a single team.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// ParseRole converts a raw string into a Role, rejecting anything outside the
// closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleEditor:
		return RoleEditor, nil
	case RoleViewer:
		return RoleViewer, nil
	default:
		return "", fmt.Errorf("unknown role: %s", s)
	}
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	default:
		return false
	}
}

// CanManageTeam reports whether the role may change team settings,
// memberships, and invitations.
func (r Role) CanManageTeam() bool {
	return r == RoleAdmin
}

// CanMutateData reports whether the role may create, update, or delete
// team-scoped records (items, tags, providers).
func (r Role) CanMutateData() bool {
	return r == RoleAdmin || r == RoleEditor
}

// CanReadData reports whether the role may read team-scoped records. Any
// membership grants read access.
func (r Role) CanReadData() bool {
	return r.Valid()
}
