package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(150);not null"`

	Title           *string `gorm:"type:varchar(150)"`
	MersisNo        *string `gorm:"type:varchar(50)"`
	TaxNumber       *string `gorm:"type:varchar(50)"`
	Logo            *string `gorm:"type:text"`
	TelephoneNumber *string `gorm:"type:varchar(30)"`
	Address         *string `gorm:"type:text"`
	Email           *string `gorm:"type:varchar(255);uniqueIndex:uq_companies_email"`

	FoundationYear    *time.Time `gorm:"type:date"`
	ContractStartDate *time.Time `gorm:"type:date"`
	ContractEndDate   *time.Time `gorm:"type:date"`

	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}
