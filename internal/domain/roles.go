package domain

// Portal roles. A user carries exactly one; department headship is an
// assignment on top of the role, not a role by itself.
const (
	RoleEmployee       = "employee"
	RoleDepartmentHead = "department_head"
	RoleHR             = "hr"
	RoleSuperAdmin     = "super_admin"
)

// EnforceRequest is what the authorization middleware hands to the
// enforcer for a single access decision.
type EnforceRequest struct {
	UserID   string
	Role     string
	Resource string
	Action   string
}
