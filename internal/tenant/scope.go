package tenant

import (
	"hrms/internal/identity"

	"gorm.io/gorm"
)

// Company restricts a query to one company's rows.
func Company(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// Visibility translates an identity.Scope into the WHERE clause shared by the
// request listings. The table must carry an employee_id column; manager scope
// resolves the owning employees through the users table, requiring both the
// manager link and the company to match.
func Visibility(scope identity.Scope) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch s := scope.(type) {
		case identity.Self:
			return db.Where("employee_id = ?", s.EmployeeID)
		case identity.Manager:
			sub := db.Session(&gorm.Session{NewDB: true}).
				Table("users").
				Select("id").
				Where("manager_id = ?", s.ManagerID).
				Where("company_id = ?", s.CompanyID).
				Where("deleted_at IS NULL")
			return db.Where("employee_id IN (?)", sub)
		case identity.Admin:
			return db
		default:
			// Unknown scope never widens visibility.
			return db.Where("1 = 0")
		}
	}
}
