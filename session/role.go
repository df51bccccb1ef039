package session

import "strings"

// Role identifies which dashboard a session is routed to
type Role string

const (
	RoleFarmer      Role = "farmer"
	RoleDistributor Role = "distributor"
	RoleRetailer    Role = "retailer"
	RoleConsumer    Role = "consumer"
	RoleAdmin       Role = "admin"
)

// Roles lists every role that has a dashboard
func Roles() []Role {
	return []Role{RoleFarmer, RoleDistributor, RoleRetailer, RoleConsumer, RoleAdmin}
}

// ParseRole matches s exactly against the known roles, ignoring surrounding space.
// The value is returned even when it is not a known role.
func ParseRole(s string) (Role, bool) {
	role := Role(strings.TrimSpace(s))
	return role, role.Valid()
}

// Valid reports whether r is one of Roles()
func (r Role) Valid() bool {
	for _, role := range Roles() {
		if role == r {
			return true
		}
	}
	return false
}
