package identity

// Role is the coarse access level carried in the session claims.
type Role string

const (
	RoleEmployee Role = "Employee"
	RoleManager  Role = "Manager"
	RoleAdmin    Role = "Admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Scope is the set of request rows a caller is allowed to see. It replaces
// per-endpoint role branching: repositories accept a Scope and translate it
// into a WHERE clause, so every listing applies the same visibility rules.
//
// Self:    rows owned by the employee themselves.
// Manager: rows whose employee reports to this manager inside the manager's
//          own company. A matching manager_id in a different company is not
//          enough; the company must match too.
// Admin:   unrestricted.
type Scope interface {
	isScope()
}

type Self struct {
	EmployeeID string
}

type Manager struct {
	ManagerID string
	CompanyID string
}

type Admin struct{}

func (Self) isScope()    {}
func (Manager) isScope() {}
func (Admin) isScope()   {}

// FromClaims builds the scope for an authenticated caller.
func FromClaims(userID string, role Role, companyID string) Scope {
	switch role {
	case RoleAdmin:
		return Admin{}
	case RoleManager:
		return Manager{ManagerID: userID, CompanyID: companyID}
	default:
		return Self{EmployeeID: userID}
	}
}

// CanViewRequest applies the Employee-self / Manager-Admin-any rule used by
// the detail endpoints of both workflows.
func CanViewRequest(userID string, role Role, ownerEmployeeID string) bool {
	if role == RoleManager || role == RoleAdmin {
		return true
	}
	return userID == ownerEmployeeID
}
