package identity_test

import (
	"testing"

	"hrms/internal/identity"

	"github.com/stretchr/testify/assert"
)

func TestFromClaims(t *testing.T) {
	t.Run("employee gets self scope", func(t *testing.T) {
		s := identity.FromClaims("u-1", identity.RoleEmployee, "c-1")
		assert.Equal(t, identity.Self{EmployeeID: "u-1"}, s)
	})

	t.Run("manager scope carries company", func(t *testing.T) {
		s := identity.FromClaims("m-1", identity.RoleManager, "c-1")
		assert.Equal(t, identity.Manager{ManagerID: "m-1", CompanyID: "c-1"}, s)
	})

	t.Run("admin is unrestricted", func(t *testing.T) {
		s := identity.FromClaims("a-1", identity.RoleAdmin, "c-1")
		assert.Equal(t, identity.Admin{}, s)
	})

	t.Run("unknown role falls back to self", func(t *testing.T) {
		s := identity.FromClaims("u-1", identity.Role("Intern"), "c-1")
		assert.Equal(t, identity.Self{EmployeeID: "u-1"}, s)
	})
}

func TestCanViewRequest(t *testing.T) {
	assert.True(t, identity.CanViewRequest("u-1", identity.RoleEmployee, "u-1"))
	assert.False(t, identity.CanViewRequest("u-1", identity.RoleEmployee, "u-2"))
	assert.True(t, identity.CanViewRequest("m-1", identity.RoleManager, "u-2"))
	assert.True(t, identity.CanViewRequest("a-1", identity.RoleAdmin, "u-2"))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, identity.RoleManager.Valid())
	assert.False(t, identity.Role("Contractor").Valid())
}
