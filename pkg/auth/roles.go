package auth

// Staff roles. Stored on the user record and carried in the token claims.
const (
	RoleAdmin      = "Admin"
	RoleManager    = "Manager"
	RolePharmacist = "Pharmacist"
	RoleStaff      = "Staff"
)

// ValidRole reports whether the given role is one of the known staff roles
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RolePharmacist, RoleStaff:
		return true
	}
	return false
}
