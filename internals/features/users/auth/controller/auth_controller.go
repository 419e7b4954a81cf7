package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "acaraku_backend/internals/features/users/auth/model"
	"acaraku_backend/internals/features/users/auth/service"
	helper "acaraku_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

// Me: profil admin yang sedang login (dipakai dashboard untuk header).
func (ac *AuthController) Me(c *fiber.Ctx) error {
	adminIDStr, ok := c.Locals("admin_id").(string)
	if !ok || adminIDStr == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	adminID, err := uuid.Parse(adminIDStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid admin id")
	}

	var admin authModel.AdminUserModel
	if err := ac.DB.Where("id = ?", adminID).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Admin tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}

	return helper.JsonOK(c, "", admin)
}
