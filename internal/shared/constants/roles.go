package constants

// Account roles carried in access tokens
const (
	RoleCustomer  = "customer"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)

// StaffRoles may manage the catalog and read every booking
var StaffRoles = []string{RoleOrganizer, RoleAdmin}

// IsStaff reports whether role is an organizer or admin
func IsStaff(role string) bool {
	return role == RoleOrganizer || role == RoleAdmin
}
