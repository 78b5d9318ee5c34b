package leave

type CreateLeaveDraftRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason" binding:"required,max=500"`
}

type ApproveLeaveRequest struct {
	DecisionNote *string `json:"decision_note"`
}

type RejectLeaveRequest struct {
	DecisionNote string `json:"decision_note" binding:"required"`
}

type LeaveRequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	LeaveTypeID     string  `json:"leave_type_id"`
	LeaveTypeName   string  `json:"leave_type_name,omitempty"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	NumberOfDaysOff int     `json:"number_of_days_off"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ManagerID       *string `json:"manager_id,omitempty"`
	DecisionNote    *string `json:"decision_note,omitempty"`
	CreatedAt       string  `json:"created_at"`
}
