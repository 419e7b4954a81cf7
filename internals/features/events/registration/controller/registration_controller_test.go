package controller_test

import (
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"acaraku_backend/internals/features/events/registration/model"
	"acaraku_backend/internals/testutil"
)

func registerPayload() fiber.Map {
	return fiber.Map{
		"full_name":    "Budi Santoso",
		"company_name": "PT Maju Jaya",
		"phone_number": "081234567890",
	}
}

func TestRegisterSuccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t, db)

	res, body := testutil.DoJSON(t, app, fiber.MethodPost, "/api/register",
		registerPayload(), map[string]string{"X-Forwarded-For": "10.1.1.1"})
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, body = %v", res.StatusCode, body)
	}
	if msg := body["message"].(string); msg != "Registrasi berhasil" {
		t.Errorf("message = %q", msg)
	}

	data := body["data"].(map[string]any)
	token := data["qr_token"].(string)
	if _, err := uuid.Parse(token); err != nil {
		t.Errorf("qr_token bukan UUID: %q", token)
	}
	if qrURL := data["qr_code"].(string); !strings.HasSuffix(qrURL, "/api/qr/"+token+"/image") {
		t.Errorf("qr_code = %q, mau berakhiran /api/qr/%s/image", qrURL, token)
	}

	// nomor HP tersimpan ternormalisasi ke format +62
	var reg model.RegistrationModel
	if err := db.Where("qr_token = ?", token).First(&reg).Error; err != nil {
		t.Fatalf("load registrasi: %v", err)
	}
	if reg.PhoneNumber != "+6281234567890" {
		t.Errorf("phone tersimpan = %q, mau +6281234567890", reg.PhoneNumber)
	}
	if reg.Attendance {
		t.Error("registrasi baru harusnya belum check-in")
	}
	if reg.RegistrationIP != "10.1.1.1" {
		t.Errorf("registration_ip = %q", reg.RegistrationIP)
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t, db)

	if res, body := testutil.DoJSON(t, app, fiber.MethodPost, "/api/register",
		registerPayload(), map[string]string{"X-Forwarded-For": "10.1.1.1"}); res.StatusCode != fiber.StatusCreated {
		t.Fatalf("registrasi pertama gagal: %d %v", res.StatusCode, body)
	}

	// nomor sama ditulis dalam format lain tetap terdeteksi duplikat
	payload := registerPayload()
	payload["full_name"] = "Orang Lain"
	payload["phone_number"] = "+6281234567890"

	res, body := testutil.DoJSON(t, app, fiber.MethodPost, "/api/register",
		payload, map[string]string{"X-Forwarded-For": "10.1.1.2"})
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, mau 400", res.StatusCode)
	}
	if msg := body["message"].(string); msg != "Nomor HP sudah terdaftar" {
		t.Errorf("message = %q", msg)
	}
}

func TestRegisterInvalidPhone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t, db)

	payload := registerPayload()
	payload["phone_number"] = "12345"

	res, body := testutil.DoJSON(t, app, fiber.MethodPost, "/api/register",
		payload, map[string]string{"X-Forwarded-For": "10.1.1.1"})
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, mau 400", res.StatusCode)
	}
	errs, ok := body["errors"].(map[string]any)
	if !ok || errs["phone_number"] == nil {
		t.Errorf("harusnya ada error field phone_number, body = %v", body)
	}
}

func TestRegisterInvalidName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t, db)

	payload := registerPayload()
	payload["full_name"] = "Budi123"

	res, body := testutil.DoJSON(t, app, fiber.MethodPost, "/api/register",
		payload, map[string]string{"X-Forwarded-For": "10.1.1.1"})
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, mau 400", res.StatusCode)
	}
	if code := body["error_code"].(string); code != "VALIDATION_ERROR" {
		t.Errorf("error_code = %q", code)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t, db)

	res, body := testutil.DoJSON(t, app, fiber.MethodPost, "/api/register",
		fiber.Map{"full_name": "Budi Santoso"}, map[string]string{"X-Forwarded-For": "10.1.1.1"})
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, mau 400", res.StatusCode)
	}
	if code := body["error_code"].(string); code != "VALIDATION_ERROR" {
		t.Errorf("error_code = %q", code)
	}
}

func TestRegisterRateLimited(t *testing.T) {
	t.Setenv("REGISTER_RATE_MAX", "2")

	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t, db)

	phones := []string{"081111111111", "082222222222", "083333333333"}
	for i := 0; i < 2; i++ {
		payload := registerPayload()
		payload["phone_number"] = phones[i]
		res, body := testutil.DoJSON(t, app, fiber.MethodPost, "/api/register",
			payload, map[string]string{"X-Forwarded-For": "10.9.9.9"})
		if res.StatusCode != fiber.StatusCreated {
			t.Fatalf("registrasi ke-%d gagal: %d %v", i+1, res.StatusCode, body)
		}
	}

	payload := registerPayload()
	payload["phone_number"] = phones[2]
	res, body := testutil.DoJSON(t, app, fiber.MethodPost, "/api/register",
		payload, map[string]string{"X-Forwarded-For": "10.9.9.9"})
	if res.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("registrasi ke-3 status = %d, mau 429", res.StatusCode)
	}
	if msg := body["message"].(string); msg != "Terlalu banyak percobaan. Coba lagi nanti." {
		t.Errorf("message = %q", msg)
	}

	// IP lain tidak ikut kena
	res, _ = testutil.DoJSON(t, app, fiber.MethodPost, "/api/register",
		payload, map[string]string{"X-Forwarded-For": "10.9.9.10"})
	if res.StatusCode != fiber.StatusCreated {
		t.Errorf("IP lain harusnya masih bisa daftar, status = %d", res.StatusCode)
	}
}
