package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// NewEnforcer builds the in-memory enforcer with the fixed three-tier role
// hierarchy. Policies are code, not data: the role set never changes at
// runtime.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	// Admin inherits Manager, Manager inherits Employee.
	groupings := [][]string{
		{"Manager", "Employee"},
		{"Admin", "Manager"},
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	policies := [][]string{
		// Employee
		{"Employee", "leave", "read"},
		{"Employee", "leave", "create"},
		{"Employee", "leave", "submit"},
		{"Employee", "expenditure", "read"},
		{"Employee", "expenditure", "create"},
		{"Employee", "leavetype", "read"},
		{"Employee", "expendituretype", "read"},
		{"Employee", "notification", "read"},

		// Manager
		{"Manager", "leave", "approve"},
		{"Manager", "expenditure", "approve"},
		{"Manager", "employee", "read"},
		{"Manager", "employee", "manage"},

		// Admin
		{"Admin", "company", "read"},
		{"Admin", "company", "manage"},
		{"Admin", "leavetype", "manage"},
		{"Admin", "expendituretype", "manage"},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
