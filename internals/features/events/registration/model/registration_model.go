package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegistrationModel: satu peserta = satu baris. qr_token dipakai sebagai
// satu-satunya lookup key check-in, unik & di-generate dari crypto/rand (UUIDv4).
// attendance monotonic: false → true sekali, tidak pernah di-reset dari sini.
type RegistrationModel struct {
	ID              uuid.UUID  `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	FullName        string     `json:"full_name" gorm:"column:full_name;size:255;not null"`
	CompanyName     string     `json:"company_name" gorm:"column:company_name;size:255;not null"`
	PhoneNumber     string     `json:"phone_number" gorm:"column:phone_number;size:20;uniqueIndex;not null"`
	QRToken         string     `json:"qr_token" gorm:"column:qr_token;size:36;uniqueIndex;not null"`
	Note            *string    `json:"note,omitempty" gorm:"column:note;size:500"`
	Attendance      bool       `json:"attendance" gorm:"column:attendance;not null;default:false"`
	CheckedInAt     *time.Time `json:"checked_in_at,omitempty" gorm:"column:checked_in_at"`
	CheckInDeviceID *string    `json:"check_in_device_id,omitempty" gorm:"column:check_in_device_id;size:100"`
	RegistrationIP  string     `json:"registration_ip,omitempty" gorm:"column:registration_ip;size:45"`
	UserAgent       string     `json:"user_agent,omitempty" gorm:"column:user_agent;size:500"`
	CreatedAt       time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (RegistrationModel) TableName() string {
	return "registrations"
}

func (m *RegistrationModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
