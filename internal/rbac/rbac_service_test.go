package rbac_test

import (
	"testing"

	"github.com/CodiWebSite/poni-connect-sub002/internal/domain"
	"github.com/CodiWebSite/poni-connect-sub002/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func TestEnforce(t *testing.T) {
	enforcer, err := rbac.NewEnforcer()
	assert.NoError(t, err)
	svc := rbac.NewService(enforcer)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"employee creates own requests", domain.RoleEmployee, "leave_request", "create", true},
		{"employee signs own requests", domain.RoleEmployee, "leave_request", "sign", true},
		{"employee cannot approve", domain.RoleEmployee, "leave_request", "approve", false},
		{"employee cannot manage calendar", domain.RoleEmployee, "calendar", "manage", false},
		{"head approves", domain.RoleDepartmentHead, "leave_request", "approve", true},
		{"head keeps employee permissions", domain.RoleDepartmentHead, "leave_request", "create", true},
		{"head cannot manage employees", domain.RoleDepartmentHead, "employee", "manage", false},
		{"hr manages the calendar", domain.RoleHR, "calendar", "manage", true},
		{"hr manages employees", domain.RoleHR, "employee", "manage", true},
		{"hr cannot approve", domain.RoleHR, "leave_request", "approve", false},
		{"super admin does everything", domain.RoleSuperAdmin, "leave_request", "approve", true},
		{"super admin manages calendar", domain.RoleSuperAdmin, "calendar", "manage", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				Role:     tc.role,
				Resource: tc.resource,
				Action:   tc.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
