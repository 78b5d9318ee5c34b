package leavetype

import (
	"time"

	"github.com/google/uuid"
)

type LeaveType struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_leave_types_name"`
	DefaultDayAllowance *int
	RestrictedGender    *string `gorm:"type:varchar(10)"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (LeaveType) TableName() string {
	return "leave_types"
}
