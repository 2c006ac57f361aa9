package models

import (
	"time"

	"github.com/google/uuid"
)

// UserType maps a role label such as "Admin" or "Agent" to an id.
// TypeName carries a unique index so lookups can be ensured atomically.
type UserType struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TypeName    string    `gorm:"size:50;not null;uniqueIndex" json:"type_name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"-"`
}

func (UserType) TableName() string {
	return "user_types"
}

type UserStatus struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StatusKey   string    `gorm:"size:50;not null;uniqueIndex" json:"status_key"`
	StatusLabel string    `gorm:"size:100;not null" json:"status_label"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"-"`
}

func (UserStatus) TableName() string {
	return "user_statuses"
}

const (
	StatusActive      = "active"
	StatusActiveLabel = "Active"
)
