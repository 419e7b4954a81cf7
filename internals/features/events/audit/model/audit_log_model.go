package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Action yang dicatat di audit_logs.
const (
	ActionCheckIn            = "check_in"
	ActionManualCheckIn      = "manual_check_in"
	ActionExport             = "export"
	ActionUpdateRegistration = "update_registration"
	ActionDeleteRegistration = "delete_registration"
)

// AuditLogModel append-only: dibuat sekali per kejadian, tidak pernah
// di-update atau dihapus oleh aplikasi.
type AuditLogModel struct {
	ID                   uuid.UUID      `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	Action               string         `json:"action" gorm:"column:action;size:50;not null;index"`
	TargetRegistrationID *uuid.UUID     `json:"target_registration_id,omitempty" gorm:"column:target_registration_id;type:uuid;index"`
	AdminID              *uuid.UUID     `json:"admin_id,omitempty" gorm:"column:admin_id;type:uuid"`
	DeviceInfo           string         `json:"device_info,omitempty" gorm:"column:device_info;size:500"`
	IPAddress            string         `json:"ip_address,omitempty" gorm:"column:ip_address;size:45"`
	Details              datatypes.JSON `json:"details,omitempty" gorm:"column:details"`
	CreatedAt            time.Time      `json:"created_at" gorm:"column:created_at;index"`
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}

func (m *AuditLogModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// DetailsJSON membungkus payload bebas jadi kolom JSONB details.
func DetailsJSON(m map[string]any) datatypes.JSON {
	b, err := json.Marshal(m)
	if err != nil {
		return datatypes.JSON([]byte(`{}`))
	}
	return datatypes.JSON(b)
}
