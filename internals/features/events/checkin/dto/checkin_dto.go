package dto

import "strings"

// CheckInRequest menerima dua nama field: qr_token (dipakai scanner bawaan)
// dan token (klien lama). Salah satu wajib terisi.
type CheckInRequest struct {
	QRToken string `json:"qr_token"`
	Token   string `json:"token"`
}

func (r *CheckInRequest) ResolveToken() string {
	if t := strings.TrimSpace(r.QRToken); t != "" {
		return t
	}
	return strings.TrimSpace(r.Token)
}

type CheckInRegistration struct {
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name"`
	CheckedInAt any    `json:"checked_in_at"`
}
