package domain

// Role is a staff role. Roles are totally ordered; see roleHierarchy.
type Role string

const (
	RoleHousekeeping Role = "HOUSEKEEPING"
	RoleFrontDesk    Role = "FRONT_DESK"
	RoleAdmin        Role = "ADMIN"
	RoleSuperAdmin   Role = "SUPER_ADMIN"
)

// roleHierarchy lists roles from lowest to highest privilege.
var roleHierarchy = []Role{
	RoleHousekeeping,
	RoleFrontDesk,
	RoleAdmin,
	RoleSuperAdmin,
}

var roleLabels = map[Role]string{
	RoleSuperAdmin:   "Super Admin",
	RoleAdmin:        "Admin",
	RoleFrontDesk:    "Front Desk",
	RoleHousekeeping: "Housekeeping",
}

// creatableRoles is the only place that decides who may grant which role.
var creatableRoles = map[Role][]Role{
	RoleSuperAdmin: {RoleAdmin, RoleFrontDesk, RoleHousekeeping},
	RoleAdmin:      {RoleFrontDesk, RoleHousekeeping},
}

// Roles returns the hierarchy from lowest to highest.
func Roles() []Role {
	out := make([]Role, len(roleHierarchy))
	copy(out, roleHierarchy)
	return out
}

// Level returns the position of r in the hierarchy, or -1 if r is unknown.
func Level(r Role) int {
	for i, known := range roleHierarchy {
		if known == r {
			return i
		}
	}
	return -1
}

// AtLeast reports whether user ranks at or above min. Unknown roles never pass.
func AtLeast(user, min Role) bool {
	ul, ml := Level(user), Level(min)
	if ul < 0 || ml < 0 {
		return false
	}
	return ul >= ml
}

// CreatableRoles returns the roles actor may assign to another user.
func CreatableRoles(actor Role) []Role {
	allowed := creatableRoles[actor]
	out := make([]Role, len(allowed))
	copy(out, allowed)
	return out
}

// CanAssign reports whether actor may grant target.
func CanAssign(actor, target Role) bool {
	for _, r := range creatableRoles[actor] {
		if r == target {
			return true
		}
	}
	return false
}

// ParseRole converts s into a known Role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

func (r Role) Valid() bool { return Level(r) >= 0 }

// Label returns the human-readable name, falling back to the raw value.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

func (r Role) String() string { return string(r) }
