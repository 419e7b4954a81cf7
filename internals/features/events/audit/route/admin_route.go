package route

import (
	auditController "acaraku_backend/internals/features/events/audit/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AuditAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := auditController.NewAuditLogController(db)

	r.Get("/logs", ctl.List) // GET /api/a/logs
}
