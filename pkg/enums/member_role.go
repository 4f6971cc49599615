package enums

import "fmt"

// MemberRole describes what a user may do inside their organization.
type MemberRole string

const (
	MemberRoleAdmin     MemberRole = "admin"
	MemberRolePurchaser MemberRole = "purchaser"
	MemberRoleWarehouse MemberRole = "warehouse"
	MemberRoleViewer    MemberRole = "viewer"
)

var validMemberRoles = []MemberRole{
	MemberRoleAdmin,
	MemberRolePurchaser,
	MemberRoleWarehouse,
	MemberRoleViewer,
}

// String implements fmt.Stringer.
func (m MemberRole) String() string {
	return string(m)
}

// IsValid reports whether the role is recognized.
func (m MemberRole) IsValid() bool {
	for _, candidate := range validMemberRoles {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMemberRole converts a raw string into a MemberRole.
func ParseMemberRole(value string) (MemberRole, error) {
	for _, candidate := range validMemberRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid member role %q", value)
}
