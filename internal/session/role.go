package session

// Role is an account role as issued by the platform. The type keeps the raw
// server string so unsupported values can be named in user-facing errors.
type Role string

// Roles this client is built to serve. The set is closed; anything else is
// unsupported and must not establish a session here.
const (
	RoleFarmer       Role = "farmer"
	RoleAttendant    Role = "attendant"
	RoleKCCAttendant Role = "kcc_attendant"
)

// Supported reports whether the role belongs to the closed supported set.
// Matches are exact; "admin", "kcc_admin" and unknown values all fail.
func (r Role) Supported() bool {
	switch r {
	case RoleFarmer, RoleAttendant, RoleKCCAttendant:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }
