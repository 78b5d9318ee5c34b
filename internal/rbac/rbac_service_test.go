package rbac_test

import (
	"testing"

	"hrms/internal/rbac"
	"hrms/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func TestEnforce(t *testing.T) {
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	svc := rbac.NewService(enforcer)

	cases := []struct {
		role     string
		resource string
		action   string
		want     bool
	}{
		{"Employee", "leave", "create", true},
		{"Employee", "leave", "submit", true},
		{"Employee", "leave", "approve", false},
		{"Employee", "employee", "manage", false},
		{"Employee", "company", "manage", false},

		{"Manager", "leave", "create", true}, // inherited from Employee
		{"Manager", "leave", "approve", true},
		{"Manager", "expenditure", "approve", true},
		{"Manager", "employee", "manage", true},
		{"Manager", "company", "manage", false},
		{"Manager", "leavetype", "manage", false},

		{"Admin", "leave", "approve", true}, // inherited from Manager
		{"Admin", "company", "manage", true},
		{"Admin", "leavetype", "manage", true},
		{"Admin", "expendituretype", "manage", true},

		{"Contractor", "leave", "read", false},
	}

	for _, tc := range cases {
		got, err := svc.Enforce(tc.role, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}
