package tenant_test

import (
	"testing"

	"hrms/internal/identity"
	"hrms/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func buildVisibilityQuery(t *testing.T, scope identity.Scope) *gorm.Statement {
	t.Helper()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Discard,
	})
	assert.NoError(t, err)

	var rows []map[string]interface{}
	return gormDB.Session(&gorm.Session{DryRun: true}).
		Table("leave_requests").
		Scopes(tenant.Visibility(scope)).
		Find(&rows).Statement
}

func TestVisibilitySelfFiltersByOwner(t *testing.T) {
	stmt := buildVisibilityQuery(t, identity.Self{EmployeeID: "e-1"})

	assert.Contains(t, stmt.SQL.String(), "employee_id = $1")
	assert.Equal(t, []interface{}{"e-1"}, stmt.Vars)
}

// A manager_id match alone must not surface the row; the owning employee has
// to sit in the manager's own company, and soft-deleted employees drop out.
func TestVisibilityManagerRequiresCompanyMatch(t *testing.T) {
	stmt := buildVisibilityQuery(t, identity.Manager{ManagerID: "m-1", CompanyID: "c-1"})
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "employee_id IN (SELECT")
	assert.Contains(t, sql, "manager_id = $1")
	assert.Contains(t, sql, "company_id = $2")
	assert.Contains(t, sql, "deleted_at IS NULL")
	assert.Equal(t, []interface{}{"m-1", "c-1"}, stmt.Vars)
}

func TestVisibilityAdminIsUnrestricted(t *testing.T) {
	stmt := buildVisibilityQuery(t, identity.Admin{})

	assert.NotContains(t, stmt.SQL.String(), "WHERE")
	assert.Empty(t, stmt.Vars)
}

func TestVisibilityUnknownScopeFailsClosed(t *testing.T) {
	stmt := buildVisibilityQuery(t, nil)

	assert.Contains(t, stmt.SQL.String(), "1 = 0")
}

func TestCompanyScope(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Discard,
	})
	assert.NoError(t, err)

	var rows []map[string]interface{}
	stmt := gormDB.Session(&gorm.Session{DryRun: true}).
		Table("users").
		Scopes(tenant.Company("c-1")).
		Find(&rows).Statement

	assert.Contains(t, stmt.SQL.String(), "company_id = $1")
	assert.Equal(t, []interface{}{"c-1"}, stmt.Vars)
}
