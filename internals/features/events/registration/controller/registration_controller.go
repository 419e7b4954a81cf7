package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	checkinService "acaraku_backend/internals/features/events/checkin/service"
	"acaraku_backend/internals/features/events/registration/dto"
	"acaraku_backend/internals/features/events/registration/model"
	helper "acaraku_backend/internals/helpers"
	"acaraku_backend/internals/ratelimit"
)

type RegistrationController struct {
	DB      *gorm.DB
	Limiter ratelimit.Limiter // kuota registrasi per IP (sliding window)
	BaseURL string
}

func NewRegistrationController(db *gorm.DB, limiter ratelimit.Limiter, baseURL string) *RegistrationController {
	return &RegistrationController{DB: db, Limiter: limiter, BaseURL: baseURL}
}

// Register: POST /api/register (public)
func (ctrl *RegistrationController) Register(c *fiber.Ctx) error {
	clientIP := helper.ClientIP(c)

	// 🔒 Rate limit per IP sebelum menyentuh DB sama sekali
	decision, err := ctrl.Limiter.Allow(c.UserContext(), clientIP)
	if err != nil {
		log.Printf("[register] rate limiter err: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}
	if !decision.Allowed {
		return helper.JsonError(c, fiber.StatusTooManyRequests, "Terlalu banyak percobaan. Coba lagi nanti.")
	}

	var req dto.CreateRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	if err := helper.ValidateStruct(&req); err != nil {
		return helper.JsonValidationError(c, "Data tidak valid", helper.ValidationErrorMap(err))
	}
	if fieldErrs := req.FieldErrors(); len(fieldErrs) > 0 {
		return helper.JsonValidationError(c, "Data tidak valid", fieldErrs)
	}

	phone, err := helper.NormalizePhone(req.PhoneNumber)
	if err != nil {
		return helper.JsonValidationError(c, "Data tidak valid", map[string][]string{
			"phone_number": {err.Error()},
		})
	}

	// ❌ Nomor HP sudah dipakai registrasi lain
	var existing int64
	if err := ctrl.DB.Model(&model.RegistrationModel{}).
		Where("phone_number = ?", phone).Count(&existing).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}
	if existing > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nomor HP sudah terdaftar")
	}

	reg := model.RegistrationModel{
		FullName:       req.FullName,
		CompanyName:    req.CompanyName,
		PhoneNumber:    phone,
		QRToken:        checkinService.GenerateToken(),
		Note:           req.Note,
		RegistrationIP: clientIP,
		UserAgent:      helper.UserAgent(c),
	}

	if err := ctrl.DB.Create(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Bisa dua sebab: phone keburu dipakai (race dengan request lain)
			// atau tabrakan token — yang terakhir nyaris mustahil, coba ulang sekali.
			var phoneTaken int64
			ctrl.DB.Model(&model.RegistrationModel{}).Where("phone_number = ?", phone).Count(&phoneTaken)
			if phoneTaken > 0 {
				return helper.JsonError(c, fiber.StatusBadRequest, "Nomor HP sudah terdaftar")
			}
			reg.QRToken = checkinService.GenerateToken()
			if retryErr := ctrl.DB.Create(&reg).Error; retryErr != nil {
				log.Printf("[register] token collision retry gagal: %v", retryErr)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
			}
		} else {
			log.Printf("[register] create err: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
		}
	}

	return helper.JsonCreated(c, "Registrasi berhasil", dto.CreateRegistrationResponse{
		ID:      reg.ID.String(),
		QRToken: reg.QRToken,
		QRCode:  ctrl.BaseURL + "/api/qr/" + reg.QRToken + "/image",
	})
}
