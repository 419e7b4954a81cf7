package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminUserModel struct {
	ID           uuid.UUID  `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	Username     string     `json:"username" gorm:"column:username;size:100;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;size:255;not null"`
	Role         string     `json:"role" gorm:"column:role;size:50;not null;default:admin"`
	LastLogin    *time.Time `json:"last_login,omitempty" gorm:"column:last_login"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at"`
}

func (AdminUserModel) TableName() string {
	return "admin_users"
}

func (m *AdminUserModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
