package dto

import (
	"regexp"
	"strings"
	"time"

	helper "acaraku_backend/internals/helpers"
)

// Nama hanya huruf, spasi, dan titik (sesuai form registrasi).
var fullNameRe = regexp.MustCompile(`^[a-zA-Z\s.]+$`)

/* =========================================================
   CREATE
   ========================================================= */

type CreateRegistrationRequest struct {
	FullName    string  `json:"full_name" form:"full_name" validate:"required,min=2,max=255"`
	CompanyName string  `json:"company_name" form:"company_name" validate:"required,min=2,max=255"`
	PhoneNumber string  `json:"phone_number" form:"phone_number" validate:"required"`
	Note        *string `json:"note" form:"note" validate:"omitempty,max=500"`
}

func (r *CreateRegistrationRequest) Normalize() {
	r.FullName = helper.SanitizeInput(r.FullName)
	r.CompanyName = helper.SanitizeInput(r.CompanyName)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	if r.Note != nil {
		n := helper.SanitizeInput(*r.Note)
		if n == "" {
			r.Note = nil
		} else {
			r.Note = &n
		}
	}
}

// FieldErrors: validasi di luar jangkauan tag validator (regex nama).
func (r *CreateRegistrationRequest) FieldErrors() map[string][]string {
	errs := map[string][]string{}
	if r.FullName != "" && !fullNameRe.MatchString(r.FullName) {
		errs["full_name"] = append(errs["full_name"], "Nama hanya boleh mengandung huruf dan spasi")
	}
	return errs
}

/* =========================================================
   UPDATE (partial, admin)
   ========================================================= */

type UpdateRegistrationRequest struct {
	FullName    *string `json:"full_name" validate:"omitempty,min=2,max=255"`
	CompanyName *string `json:"company_name" validate:"omitempty,min=2,max=255"`
	PhoneNumber *string `json:"phone_number"`
	Note        *string `json:"note" validate:"omitempty,max=500"`
}

func (r *UpdateRegistrationRequest) Normalize() {
	trim := func(pp **string) {
		if *pp == nil {
			return
		}
		v := helper.SanitizeInput(**pp)
		*pp = &v
	}
	trim(&r.FullName)
	trim(&r.CompanyName)
	trim(&r.Note)
	if r.PhoneNumber != nil {
		p := strings.TrimSpace(*r.PhoneNumber)
		r.PhoneNumber = &p
	}
}

/* =========================================================
   RESPONSES
   ========================================================= */

type CreateRegistrationResponse struct {
	ID      string `json:"id"`
	QRToken string `json:"qr_token"`
	QRCode  string `json:"qr_code"`
}

type DashboardStats struct {
	Total              int64     `json:"total"`
	CheckedIn          int64     `json:"checked_in"`
	Pending            int64     `json:"pending"`
	TodayRegistrations int64     `json:"today_registrations"`
	CheckInRate        float64   `json:"check_in_rate"`
	GeneratedAt        time.Time `json:"generated_at"`
}
