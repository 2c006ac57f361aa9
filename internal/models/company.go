package models

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyName    string    `gorm:"size:255;not null" json:"company_name"`
	CompanyType    *string   `gorm:"size:100" json:"company_type"`
	Industry       *string   `gorm:"size:100" json:"industry"`
	RegistrationNo *string   `gorm:"size:100" json:"registration_no"`
	Address        *string   `gorm:"type:text" json:"address"`
	City           *string   `gorm:"size:100" json:"city"`
	Country        *string   `gorm:"size:100" json:"country"`
	Phone          *string   `gorm:"size:30" json:"phone"`
	Email          *string   `gorm:"size:255" json:"email"`
	Website        *string   `gorm:"size:255" json:"website"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Company) TableName() string {
	return "companies"
}
