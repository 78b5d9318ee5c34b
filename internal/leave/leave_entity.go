package leave

import (
	"time"

	"hrms/internal/leavetype"

	"github.com/google/uuid"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	LeaveTypeID uuid.UUID            `gorm:"type:uuid;not null"`
	LeaveType   *leavetype.LeaveType `gorm:"foreignKey:LeaveTypeID"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	Reason    string    `gorm:"type:text;not null"`

	// ManagerID and DecisionNote stay NULL until the request is decided.
	Status       string     `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	ManagerID    *uuid.UUID `gorm:"type:uuid"`
	DecisionNote *string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
