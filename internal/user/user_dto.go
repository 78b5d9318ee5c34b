package user

type CreateEmployeeRequest struct {
	FirstName string  `json:"first_name" binding:"required,max=100"`
	LastName  string  `json:"last_name" binding:"required,max=100"`
	Email     string  `json:"email" binding:"required,email"`
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid"`
}

type UpdateEmployeeRequest struct {
	FirstName string  `json:"first_name" binding:"omitempty,max=100"`
	LastName  string  `json:"last_name" binding:"omitempty,max=100"`
	Email     string  `json:"email" binding:"omitempty,email"`
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid"`
	IsActive  *bool   `json:"is_active"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	CompanyID string  `json:"company_id"`
	ManagerID *string `json:"manager_id,omitempty"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	IsActive  bool    `json:"is_active"`
}

// CreatedEmployeeResponse carries the generated initial password exactly once,
// in the create response. It is never retrievable afterwards.
type CreatedEmployeeResponse struct {
	UserResponse
	InitialPassword string `json:"initial_password"`
}
