package domain

// Position rank codes as seeded per tenant. Lower code = higher tier.
const (
	RankAdmin    = 0
	RankDirector = 1
	RankManager  = 2
)

// Role is the closed set of capability tiers derived from a position rank.
// The ordering RoleStaff < RoleManager < RoleDirector < RoleAdmin lets
// routing logic read as role comparisons instead of rank literals.
type Role int

const (
	RoleStaff Role = iota
	RoleManager
	RoleDirector
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleDirector:
		return "director"
	case RoleManager:
		return "manager"
	default:
		return "staff"
	}
}

// RoleFromString parses a role claim back to a Role. Unknown strings map to
// RoleStaff so a malformed claim never grants an elevated tier.
func RoleFromString(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "director":
		return RoleDirector
	case "manager":
		return RoleManager
	default:
		return RoleStaff
	}
}

// AtLeast reports whether r sits at or above the given tier.
func (r Role) AtLeast(other Role) bool {
	return r >= other
}

// ClassifyRole derives a user's role tier from their position rank.
// A nil user or an unassigned position yields RoleStaff: no elevated
// capability rather than an error.
func ClassifyRole(u *User) Role {
	if u == nil || u.Position == nil {
		return RoleStaff
	}
	switch u.Position.Rank {
	case RankAdmin:
		return RoleAdmin
	case RankDirector:
		return RoleDirector
	case RankManager:
		return RoleManager
	default:
		return RoleStaff
	}
}
