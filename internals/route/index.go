// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"acaraku_backend/internals/configs"
	auditRoute "acaraku_backend/internals/features/events/audit/route"
	checkinRoute "acaraku_backend/internals/features/events/checkin/route"
	registrationRoute "acaraku_backend/internals/features/events/registration/route"
	authRoute "acaraku_backend/internals/features/users/auth/route"
	middlewares "acaraku_backend/internals/middlewares"
	authMiddleware "acaraku_backend/internals/middlewares/auth"
	"acaraku_backend/internals/ratelimit"
	"acaraku_backend/internals/web"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// ===================== RATE LIMITERS =====================
	// Dua kuota independen: registrasi ketat per IP, check-in longgar per device.
	redisAddr := configs.RedisAddr()
	regPolicy := configs.RegistrationRatePolicy()
	checkinPolicy := configs.CheckInRatePolicy()

	registerLimiter := ratelimit.New(redisAddr, "registration", regPolicy.Max, regPolicy.Window)
	checkinLimiter := ratelimit.New(redisAddr, "checkin", checkinPolicy.Max, checkinPolicy.Window)

	baseURL := configs.AppBaseURL

	// ===================== PUBLIC API =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api", middlewares.DBMiddleware(db))
	registrationRoute.RegistrationUserRoutes(public, db, registerLimiter, baseURL)
	checkinRoute.CheckInUserRoutes(public, db, checkinLimiter, baseURL)

	// ===================== ADMIN (JWT) =====================
	log.Println("[INFO] Setting up ADMIN group (AuthJWT)...")
	admin := app.Group("/api/a", authMiddleware.AuthJWT())
	registrationRoute.RegistrationAdminRoutes(admin, db)
	auditRoute.AuditAdminRoutes(admin, db)

	// ===================== PAGES =====================
	log.Println("[INFO] Mounting web pages (form registrasi + scanner)...")
	web.PageRoutes(app, configs.ScannerResumeMs())
}
