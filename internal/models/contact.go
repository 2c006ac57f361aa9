package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactSubmission is one public contact-form post. Rows are written and
// never read back by the application.
type ContactSubmission struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	Name      string    `gorm:"size:201;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Phone     *string   `gorm:"size:30" json:"phone"`
	Subject   *string   `gorm:"size:255" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Company   *string   `gorm:"size:255" json:"company"`
	CreatedAt time.Time `json:"created_at"`
}

func (ContactSubmission) TableName() string {
	return "contact"
}
