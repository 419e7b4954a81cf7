package route

import (
	checkinController "acaraku_backend/internals/features/events/checkin/controller"
	"acaraku_backend/internals/ratelimit"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/*
Public routes: dipanggil scanner di pintu masuk & halaman tiket peserta.
Mount contoh: CheckInUserRoutes(app.Group("/api"), db, limiter, baseURL)
*/
func CheckInUserRoutes(r fiber.Router, db *gorm.DB, limiter ratelimit.Limiter, baseURL string) {
	ctl := checkinController.NewCheckInController(db, limiter, baseURL)

	r.Post("/check-in", ctl.CheckIn)        // POST /api/check-in
	r.Get("/qr/:token/image", ctl.QRImage)  // GET  /api/qr/:token/image
}
