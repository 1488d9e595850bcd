package domain

// Role is one of the closed, ordered set user < admin < superadmin.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// roleRanks is the explicit hierarchy; lookups for anything else miss.
var roleRanks = map[Role]int{
	RoleUser:       0,
	RoleAdmin:      1,
	RoleSuperAdmin: 2,
}

// ParseRole converts a raw string to a Role, reporting whether it is known.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := roleRanks[r]
	return r, ok
}

// Rank returns the position of r in the hierarchy, or -1 when unrecognized.
func (r Role) Rank() int {
	if rank, ok := roleRanks[r]; ok {
		return rank
	}
	return -1
}

// Satisfies reports whether r grants at least the privileges of required.
// An unrecognized role on either side never satisfies.
func (r Role) Satisfies(required Role) bool {
	have, need := r.Rank(), required.Rank()
	if have < 0 || need < 0 {
		return false
	}
	return have >= need
}

// IsSuperAdmin gates irreversible operations on privileged identities.
func (r Role) IsSuperAdmin() bool {
	return r.Satisfies(RoleSuperAdmin)
}
