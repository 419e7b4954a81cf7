package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	auditModel "acaraku_backend/internals/features/events/audit/model"
	regModel "acaraku_backend/internals/features/events/registration/model"
)

var (
	// format token salah → 400, tanpa akses DB sama sekali
	ErrInvalidToken = errors.New("QR Token tidak valid")
	// token valid tapi tidak terdaftar → 404
	ErrTokenNotFound = errors.New("QR Code tidak ditemukan")
)

type CheckInResult struct {
	Registration     regModel.RegistrationModel
	AlreadyCheckedIn bool
}

// CheckIn menerapkan transisi pending → checked-in untuk token ini, maksimal
// sekali. Race double-scan diselesaikan lewat satu conditional UPDATE
// (WHERE attendance = false): hanya satu request yang dapat RowsAffected=1,
// sisanya masuk cabang "sudah check-in" tanpa mutasi & tanpa audit baru.
func CheckIn(db *gorm.DB, token, deviceID, deviceInfo, ipAddress string) (*CheckInResult, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, ErrInvalidToken
	}

	var reg regModel.RegistrationModel
	if err := db.Where("qr_token = ?", token).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	if reg.Attendance {
		return &CheckInResult{Registration: reg, AlreadyCheckedIn: true}, nil
	}

	now := time.Now()
	result := &CheckInResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&regModel.RegistrationModel{}).
			Where("qr_token = ? AND attendance = ?", token, false).
			Updates(map[string]any{
				"attendance":         true,
				"checked_in_at":      now,
				"check_in_device_id": deviceID,
				"updated_at":         now,
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			// kalah race: request lain sudah menang, cukup baca state final
			result.AlreadyCheckedIn = true
			return tx.Where("qr_token = ?", token).First(&result.Registration).Error
		}

		if err := tx.Where("qr_token = ?", token).First(&result.Registration).Error; err != nil {
			return err
		}

		return tx.Create(&auditModel.AuditLogModel{
			Action:               auditModel.ActionCheckIn,
			TargetRegistrationID: &result.Registration.ID,
			DeviceInfo:           deviceInfo,
			IPAddress:            ipAddress,
			Details:              auditModel.DetailsJSON(map[string]any{"method": "qr_scan", "device_id": deviceID}),
			CreatedAt:            now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ManualCheckIn: transisi yang sama tapi dipicu admin dari dashboard,
// pakai registration id (bukan token) dan action audit berbeda.
func ManualCheckIn(db *gorm.DB, registrationID, adminID uuid.UUID, deviceInfo, ipAddress string) (*CheckInResult, error) {
	var reg regModel.RegistrationModel
	if err := db.Where("id = ?", registrationID).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	if reg.Attendance {
		return &CheckInResult{Registration: reg, AlreadyCheckedIn: true}, nil
	}

	now := time.Now()
	result := &CheckInResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&regModel.RegistrationModel{}).
			Where("id = ? AND attendance = ?", registrationID, false).
			Updates(map[string]any{
				"attendance":         true,
				"checked_in_at":      now,
				"check_in_device_id": "admin:" + adminID.String(),
				"updated_at":         now,
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			result.AlreadyCheckedIn = true
			return tx.Where("id = ?", registrationID).First(&result.Registration).Error
		}

		if err := tx.Where("id = ?", registrationID).First(&result.Registration).Error; err != nil {
			return err
		}

		return tx.Create(&auditModel.AuditLogModel{
			Action:               auditModel.ActionManualCheckIn,
			TargetRegistrationID: &result.Registration.ID,
			AdminID:              &adminID,
			DeviceInfo:           deviceInfo,
			IPAddress:            ipAddress,
			Details:              auditModel.DetailsJSON(map[string]any{"method": "manual"}),
			CreatedAt:            now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
