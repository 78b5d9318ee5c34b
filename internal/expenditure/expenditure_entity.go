package expenditure

import (
	"time"

	"hrms/internal/expendituretype"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpenditureRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	ExpenditureTypeID uuid.UUID                        `gorm:"type:uuid;not null"`
	ExpenditureType   *expendituretype.ExpenditureType `gorm:"foreignKey:ExpenditureTypeID"`

	Title    string          `gorm:"type:varchar(200);not null"`
	Currency *string         `gorm:"type:varchar(3)"`
	Amount   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ImageURL *string         `gorm:"type:text"`

	// ApprovalDate, ManagerID and DecisionNote stay NULL until decided.
	// ApprovalDate is written on reject too; it records when the decision
	// was made, not that it was positive.
	Status       string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	RequestDate  time.Time  `gorm:"not null"`
	ApprovalDate *time.Time
	ManagerID    *uuid.UUID `gorm:"type:uuid"`
	DecisionNote *string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ExpenditureRequest) TableName() string {
	return "expenditure_requests"
}
