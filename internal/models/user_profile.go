package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the application-level record linked 1:1 to an identity
// provider user through AuthUserID.
type UserProfile struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AuthUserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"auth_user_id"`
	CompanyID  *uuid.UUID `gorm:"type:uuid" json:"company_id"`
	UserTypeID *uuid.UUID `gorm:"type:uuid" json:"user_type_id"`
	StatusID   *uuid.UUID `gorm:"type:uuid" json:"status_id"`
	FirstName  string     `gorm:"size:100;not null" json:"first_name"`
	LastName   string     `gorm:"size:100;not null" json:"last_name"`
	MiddleName *string    `gorm:"size:100" json:"middle_name"`
	Gender     *string    `gorm:"size:20" json:"gender"`
	Birthdate  *string    `gorm:"type:date" json:"birthdate"`
	Email      string     `gorm:"size:255;not null" json:"email"`
	Phone      *string    `gorm:"size:30" json:"phone"`
	Address    *string    `gorm:"type:text" json:"address"`
	City       *string    `gorm:"size:100" json:"city"`
	Country    *string    `gorm:"size:100" json:"country"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	UserType *UserType   `gorm:"foreignKey:UserTypeID" json:"user_types,omitempty"`
	Status   *UserStatus `gorm:"foreignKey:StatusID" json:"user_statuses,omitempty"`
	Company  *Company    `gorm:"foreignKey:CompanyID" json:"companies,omitempty"`
}

func (UserProfile) TableName() string {
	return "user_information"
}
