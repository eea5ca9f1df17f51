package models

// Role is a payroll tier derived from a user's Discord roles. Values are
// ordered by priority: a user holding several known roles is paid at the
// highest-priority one, never a combination.
type Role int

const (
	RoleOriginalBoss Role = iota
	RoleViceBoss
	RoleManager
	RoleWorker
	RoleDelivery
	RoleNone
)

// rolePriority lists the known roles from strongest to weakest. Resolution
// scans this order, so ties between held roles break on priority alone.
var rolePriority = []Role{
	RoleOriginalBoss,
	RoleViceBoss,
	RoleManager,
	RoleWorker,
	RoleDelivery,
}

var roleNames = map[Role]string{
	RoleOriginalBoss: "Original Boss",
	RoleViceBoss:     "Vice Boss",
	RoleManager:      "Manager",
	RoleWorker:       "Worker",
	RoleDelivery:     "Delivery",
	RoleNone:         "no role",
}

var rolePercentages = map[Role]float64{
	RoleOriginalBoss: 0.30,
	RoleViceBoss:     0.25,
	RoleManager:      0.20,
	RoleWorker:       0.15,
	RoleDelivery:     0.10,
	RoleNone:         0.0,
}

// String returns the display name of the role.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "no role"
}

// Percentage returns the fraction of the weekly total paid out to this role.
func (r Role) Percentage() float64 {
	return rolePercentages[r]
}

// HighestRole resolves a set of Discord role names to the highest-priority
// known payroll role. Unknown names are ignored; an empty or unrecognized
// set resolves to RoleNone.
func HighestRole(labels []string) Role {
	held := make(map[string]bool, len(labels))
	for _, label := range labels {
		held[label] = true
	}

	for _, role := range rolePriority {
		if held[roleNames[role]] {
			return role
		}
	}

	return RoleNone
}
