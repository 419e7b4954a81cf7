package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"acaraku_backend/internals/features/events/checkin/dto"
	"acaraku_backend/internals/features/events/checkin/service"
	regModel "acaraku_backend/internals/features/events/registration/model"
	helper "acaraku_backend/internals/helpers"
	"acaraku_backend/internals/ratelimit"
)

type CheckInController struct {
	DB      *gorm.DB
	Limiter ratelimit.Limiter // kuota scan per device (sliding window, longgar)
	BaseURL string
}

func NewCheckInController(db *gorm.DB, limiter ratelimit.Limiter, baseURL string) *CheckInController {
	return &CheckInController{DB: db, Limiter: limiter, BaseURL: baseURL}
}

// CheckIn: POST /api/check-in
// Urutan guard (masing-masing prasyarat keras untuk langkah berikutnya):
// rate limit → format token → lookup → transisi conditional sekali jalan.
func (ctrl *CheckInController) CheckIn(c *fiber.Ctx) error {
	deviceID := helper.DeviceID(c)

	decision, err := ctrl.Limiter.Allow(c.UserContext(), deviceID)
	if err != nil {
		log.Printf("[check-in] rate limiter err: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}
	if !decision.Allowed {
		return helper.JsonError(c, fiber.StatusTooManyRequests, "Terlalu banyak scan. Tunggu sebentar.")
	}

	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	// terima token polos maupun URL hasil scan utuh
	token := service.TokenFromPayload(req.ResolveToken())
	if token == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "QR Token wajib diisi")
	}

	result, err := service.CheckIn(ctrl.DB, token, deviceID, helper.UserAgent(c), helper.ClientIP(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			return helper.JsonError(c, fiber.StatusBadRequest, "QR Token tidak valid")
		case errors.Is(err, service.ErrTokenNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "QR Code tidak valid")
		default:
			log.Printf("[check-in] err: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
		}
	}

	reg := result.Registration
	data := fiber.Map{
		"already_checked_in": result.AlreadyCheckedIn,
		"registration": dto.CheckInRegistration{
			FullName:    reg.FullName,
			CompanyName: reg.CompanyName,
			CheckedInAt: reg.CheckedInAt,
		},
	}

	if result.AlreadyCheckedIn {
		return helper.JsonOK(c, reg.FullName+" sudah check-in sebelumnya", data)
	}
	return helper.JsonOK(c, "Selamat datang, "+reg.FullName+"!", data)
}

// QRImage: GET /api/qr/:token/image — PNG, cacheable selamanya per token
// karena mapping token → URL tidak pernah berubah.
func (ctrl *CheckInController) QRImage(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Token tidak ditemukan")
	}
	if _, err := uuid.Parse(token); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "QR Token tidak valid")
	}

	var count int64
	if err := ctrl.DB.Model(&regModel.RegistrationModel{}).
		Where("qr_token = ?", token).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}
	if count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "QR Code tidak ditemukan")
	}

	png, err := service.RenderPNG(service.QRContent(ctrl.BaseURL, token))
	if err != nil {
		log.Printf("[qr] render err: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal generate QR code")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	return c.Send(png)
}
