package route

import (
	registrationController "acaraku_backend/internals/features/events/registration/controller"
	"acaraku_backend/internals/ratelimit"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/*
Public route: form registrasi peserta.
Mount contoh: RegistrationUserRoutes(app.Group("/api"), db, limiter, baseURL)
*/
func RegistrationUserRoutes(r fiber.Router, db *gorm.DB, limiter ratelimit.Limiter, baseURL string) {
	ctl := registrationController.NewRegistrationController(db, limiter, baseURL)

	r.Post("/register", ctl.Register) // POST /api/register
}
