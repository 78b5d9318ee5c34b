package expendituretype

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpenditureType struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name      string           `gorm:"type:varchar(100);not null;uniqueIndex:uq_expenditure_types_name"`
	MinPrice  *decimal.Decimal `gorm:"type:numeric(14,2)"`
	MaxPrice  *decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ExpenditureType) TableName() string {
	return "expenditure_types"
}
