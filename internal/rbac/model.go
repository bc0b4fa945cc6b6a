package rbac

import (
	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
)

// The model ships embedded so a deployment never depends on a conf file
// next to the binary.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act || r.sub == "super_admin"
`

// rolePolicies is the static permission matrix of the portal. Roles are
// fixed; headship of a department is a separate assignment checked in
// the leave request service.
var rolePolicies = [][]string{
	{"employee", "leave_request", "read"},
	{"employee", "leave_request", "create"},
	{"employee", "leave_request", "sign"},
	{"employee", "balance", "read"},
	{"employee", "notification", "read"},

	{"department_head", "leave_request", "approve"},
	{"department_head", "employee", "read"},

	{"hr", "employee", "read"},
	{"hr", "employee", "manage"},
	{"hr", "department", "manage"},
	{"hr", "calendar", "manage"},
	{"hr", "user", "manage"},
}

// roleInheritance links each role to the permissions it includes.
var roleInheritance = [][]string{
	{"department_head", "employee"},
	{"hr", "employee"},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := casbinmodel.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range rolePolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range roleInheritance {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}
	return enforcer, nil
}
