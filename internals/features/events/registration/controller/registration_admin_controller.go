package controller

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditModel "acaraku_backend/internals/features/events/audit/model"
	checkinService "acaraku_backend/internals/features/events/checkin/service"
	"acaraku_backend/internals/features/events/registration/dto"
	"acaraku_backend/internals/features/events/registration/model"
	helper "acaraku_backend/internals/helpers"
)

type RegistrationAdminController struct {
	DB *gorm.DB
}

func NewRegistrationAdminController(db *gorm.DB) *RegistrationAdminController {
	return &RegistrationAdminController{DB: db}
}

// kolom yang boleh dipakai sort dari query (?sort_by=)
var sortableColumns = map[string]string{
	"created_at":    "created_at",
	"full_name":     "full_name",
	"company_name":  "company_name",
	"checked_in_at": "checked_in_at",
}

// List: GET /api/a/registrations?page=&per_page=&search=&sort_by=&order=
func (ctrl *RegistrationAdminController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.RegistrationModel{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		q = q.Where(
			"LOWER(full_name) LIKE LOWER(?) OR LOWER(company_name) LIKE LOWER(?) OR phone_number LIKE ?",
			pattern, pattern, pattern,
		)
	}

	sortBy := "created_at"
	if col, ok := sortableColumns[c.Query("sort_by")]; ok {
		sortBy = col
	}
	order := "DESC"
	if c.Query("order") == "asc" {
		order = "ASC"
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data registrasi")
	}

	var rows []model.RegistrationModel
	if err := q.Order(sortBy + " " + order).
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data registrasi")
	}

	return helper.JsonList(c, "", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GetByID: GET /api/a/registrations/:id
func (ctrl *RegistrationAdminController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var reg model.RegistrationModel
	if err := ctrl.DB.Where("id = ?", id).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Registrasi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}
	return helper.JsonOK(c, "", reg)
}

// Update: PATCH /api/a/registrations/:id
func (ctrl *RegistrationAdminController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var reg model.RegistrationModel
	if err := ctrl.DB.Where("id = ?", id).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Registrasi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}

	var req dto.UpdateRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.JsonValidationError(c, "Data tidak valid", helper.ValidationErrorMap(err))
	}

	updates := map[string]any{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.CompanyName != nil {
		updates["company_name"] = *req.CompanyName
	}
	if req.PhoneNumber != nil {
		phone, err := helper.NormalizePhone(*req.PhoneNumber)
		if err != nil {
			return helper.JsonValidationError(c, "Data tidak valid", map[string][]string{
				"phone_number": {err.Error()},
			})
		}
		updates["phone_number"] = phone
	}
	if req.Note != nil {
		updates["note"] = *req.Note
	}

	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan data", reg)
	}
	updates["updated_at"] = time.Now()

	if err := ctrl.DB.Model(&reg).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Nomor HP sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update registrasi")
	}

	ctrl.writeAudit(c, auditModel.ActionUpdateRegistration, &reg.ID, fiber.Map{"fields": keysOf(updates)})

	return helper.JsonUpdated(c, "Registrasi berhasil diupdate", reg)
}

// Delete: DELETE /api/a/registrations/:id
func (ctrl *RegistrationAdminController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var reg model.RegistrationModel
	if err := ctrl.DB.Where("id = ?", id).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Registrasi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}

	if err := ctrl.DB.Delete(&reg).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hapus registrasi")
	}

	ctrl.writeAudit(c, auditModel.ActionDeleteRegistration, &reg.ID, fiber.Map{
		"full_name": reg.FullName,
		"phone":     reg.PhoneNumber,
	})

	return helper.JsonDeleted(c, "Registrasi berhasil dihapus", nil)
}

// ManualCheckIn: POST /api/a/registrations/:id/check-in
func (ctrl *RegistrationAdminController) ManualCheckIn(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	adminID, ok := adminIDFromLocals(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	result, err := checkinService.ManualCheckIn(ctrl.DB, id, adminID, helper.UserAgent(c), helper.ClientIP(c))
	if err != nil {
		if errors.Is(err, checkinService.ErrTokenNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Registrasi tidak ditemukan")
		}
		log.Printf("[manual check-in] err: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}

	if result.AlreadyCheckedIn {
		return helper.JsonOK(c, result.Registration.FullName+" sudah check-in sebelumnya", fiber.Map{
			"already_checked_in": true,
			"registration":       result.Registration,
		})
	}
	return helper.JsonOK(c, "Check-in manual berhasil", fiber.Map{
		"already_checked_in": false,
		"registration":       result.Registration,
	})
}

// Export: GET /api/a/export — seluruh registrasi sebagai CSV attachment.
func (ctrl *RegistrationAdminController) Export(c *fiber.Ctx) error {
	var rows []model.RegistrationModel
	if err := ctrl.DB.Order("created_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal export data")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"ID", "Full Name", "Company", "Phone Number", "Status", "Registered At", "Checked In At", "Note"})
	for _, r := range rows {
		status := "Pending"
		checkedInAt := "-"
		if r.Attendance {
			status = "Checked In"
			if r.CheckedInAt != nil {
				checkedInAt = r.CheckedInAt.Format("2006-01-02 15:04:05")
			}
		}
		note := "-"
		if r.Note != nil && *r.Note != "" {
			note = *r.Note
		}
		_ = w.Write([]string{
			r.ID.String(),
			r.FullName,
			r.CompanyName,
			helper.FormatPhoneDisplay(r.PhoneNumber),
			status,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			checkedInAt,
			note,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal export data")
	}

	ctrl.writeAudit(c, auditModel.ActionExport, nil, fiber.Map{"format": "csv", "count": len(rows)})

	filename := fmt.Sprintf("registrations-%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// DashboardStats: GET /api/a/dashboard/stats
func (ctrl *RegistrationAdminController) DashboardStats(c *fiber.Ctx) error {
	var stats dto.DashboardStats

	if err := ctrl.DB.Model(&model.RegistrationModel{}).Count(&stats.Total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}
	if err := ctrl.DB.Model(&model.RegistrationModel{}).
		Where("attendance = ?", true).Count(&stats.CheckedIn).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := ctrl.DB.Model(&model.RegistrationModel{}).
		Where("created_at >= ?", midnight).Count(&stats.TodayRegistrations).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}

	stats.Pending = stats.Total - stats.CheckedIn
	if stats.Total > 0 {
		stats.CheckInRate = float64(stats.CheckedIn) / float64(stats.Total) * 100
	}
	stats.GeneratedAt = now

	return helper.JsonOK(c, "", stats)
}

/* =========================================================
   internal
   ========================================================= */

func (ctrl *RegistrationAdminController) writeAudit(c *fiber.Ctx, action string, targetID *uuid.UUID, details fiber.Map) {
	entry := auditModel.AuditLogModel{
		Action:               action,
		TargetRegistrationID: targetID,
		DeviceInfo:           helper.UserAgent(c),
		IPAddress:            helper.ClientIP(c),
		Details:              auditModel.DetailsJSON(details),
	}
	if adminID, ok := adminIDFromLocals(c); ok {
		entry.AdminID = &adminID
	}
	if err := ctrl.DB.Create(&entry).Error; err != nil {
		log.Printf("[audit] gagal tulis %s: %v", action, err)
	}
}

func adminIDFromLocals(c *fiber.Ctx) (uuid.UUID, bool) {
	s, _ := c.Locals("admin_id").(string)
	if s == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func keysOf(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		if k == "updated_at" {
			continue
		}
		out = append(out, k)
	}
	return out
}
