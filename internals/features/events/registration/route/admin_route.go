package route

import (
	registrationController "acaraku_backend/internals/features/events/registration/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/*
Admin routes: dashboard, list + CRUD registrasi, check-in manual, export CSV.
Mount di group yang sudah dipagari AuthJWT.
*/
func RegistrationAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := registrationController.NewRegistrationAdminController(db)

	regs := r.Group("/registrations")
	regs.Get("/", ctl.List)                    // GET    /api/a/registrations?search=&sort_by=&order=
	regs.Get("/:id", ctl.GetByID)              // GET    /api/a/registrations/:id
	regs.Patch("/:id", ctl.Update)             // PATCH  /api/a/registrations/:id
	regs.Delete("/:id", ctl.Delete)            // DELETE /api/a/registrations/:id
	regs.Post("/:id/check-in", ctl.ManualCheckIn) // POST /api/a/registrations/:id/check-in

	r.Get("/export", ctl.Export)               // GET /api/a/export
	r.Get("/dashboard/stats", ctl.DashboardStats) // GET /api/a/dashboard/stats
}
