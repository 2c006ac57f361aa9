package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForAuthUser returns a GORM scope that filters profiles by identity id.
func ForAuthUser(authUserID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("auth_user_id = ?", authUserID)
	}
}
