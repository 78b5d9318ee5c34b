package leavetype

type CreateLeaveTypeRequest struct {
	Name                string  `json:"name" binding:"required"`
	DefaultDayAllowance *int    `json:"default_day_allowance" binding:"omitempty,min=0"`
	RestrictedGender    *string `json:"restricted_gender" binding:"omitempty,oneof=MALE FEMALE"`
}

type UpdateLeaveTypeRequest struct {
	Name                string  `json:"name"`
	DefaultDayAllowance *int    `json:"default_day_allowance" binding:"omitempty,min=0"`
	RestrictedGender    *string `json:"restricted_gender" binding:"omitempty,oneof=MALE FEMALE"`
}

type LeaveTypeResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	DefaultDayAllowance *int    `json:"default_day_allowance,omitempty"`
	RestrictedGender    *string `json:"restricted_gender,omitempty"`
}
