// Package testutil menyiapkan DB sqlite in-memory + app Fiber untuk test.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"acaraku_backend/internals/configs"
	auditModel "acaraku_backend/internals/features/events/audit/model"
	regModel "acaraku_backend/internals/features/events/registration/model"
	authModel "acaraku_backend/internals/features/users/auth/model"
	routes "acaraku_backend/internals/route"
)

// SetupTestDB membuka sqlite in-memory dengan skema lengkap.
// MaxOpenConns=1 supaya semua koneksi lihat memory DB yang sama.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	configs.JWTSecret = "test-secret"
	configs.AppBaseURL = "http://localhost:3000"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("Gagal buka test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Gagal ambil sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&regModel.RegistrationModel{},
		&auditModel.AuditLogModel{},
		&authModel.AdminUserModel{},
	); err != nil {
		t.Fatalf("Gagal migrate skema test: %v", err)
	}
	return db
}

// NewTestApp membangun app Fiber dengan seluruh route ter-mount
// (limiter in-memory karena REDIS_ADDR tidak diset di test).
func NewTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	app := fiber.New()
	routes.SetupRoutes(app, db)
	return app
}

// CreateRegistration menanam satu registrasi langsung ke DB.
func CreateRegistration(t *testing.T, db *gorm.DB, fullName, phone, token string) regModel.RegistrationModel {
	t.Helper()
	reg := regModel.RegistrationModel{
		FullName:    fullName,
		CompanyName: "PT Contoh",
		PhoneNumber: phone,
		QRToken:     token,
	}
	if err := db.Create(&reg).Error; err != nil {
		t.Fatalf("Gagal buat registrasi test: %v", err)
	}
	return reg
}

// CreateAdmin menanam admin + mengembalikan access token yang valid.
func CreateAdmin(t *testing.T, db *gorm.DB, username, password string) (authModel.AdminUserModel, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Gagal hash password test: %v", err)
	}
	admin := authModel.AdminUserModel{Username: username, PasswordHash: string(hash), Role: "admin"}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("Gagal buat admin test: %v", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      admin.ID.String(),
		"username": admin.Username,
		"role":     admin.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		t.Fatalf("Gagal sign token test: %v", err)
	}
	return admin, token
}

// DoJSON mengirim request JSON ke app dan mengembalikan response + body terparse.
func DoJSON(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Gagal marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Gagal baca body: %v", err)
	}
	parsed := map[string]any{}
	if len(raw) > 0 && res.Header.Get(fiber.HeaderContentType) != "" {
		_ = json.Unmarshal(raw, &parsed)
	}
	return res, parsed
}

// AuditCount menghitung entri audit untuk satu action.
func AuditCount(t *testing.T, db *gorm.DB, action string) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&auditModel.AuditLogModel{}).Where("action = ?", action).Count(&n).Error; err != nil {
		t.Fatalf("Gagal hitung audit log: %v", err)
	}
	return n
}
