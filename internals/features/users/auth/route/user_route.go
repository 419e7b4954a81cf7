// file: internals/features/users/auth/route/user_route.go
package route

import (
	controller "acaraku_backend/internals/features/users/auth/controller"
	authMiddleware "acaraku_backend/internals/middlewares/auth"
	rateLimiter "acaraku_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)

	// 🔐 Butuh token
	baseAuth.Get("/me", authMiddleware.AuthJWT(), authController.Me)
}
