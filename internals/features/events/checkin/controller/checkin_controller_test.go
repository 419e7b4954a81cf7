package controller_test

import (
	"bytes"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/makiuchi-d/gozxing"
	qrDecoder "github.com/makiuchi-d/gozxing/qrcode"

	"acaraku_backend/internals/configs"
	auditModel "acaraku_backend/internals/features/events/audit/model"
	"acaraku_backend/internals/features/events/checkin/service"
	"acaraku_backend/internals/testutil"
)

// Alur lengkap peserta: daftar → ambil QR image → scan (check-in) → scan ulang.
func TestCheckInScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t, db)

	// 1. Registrasi
	res, body := testutil.DoJSON(t, app, fiber.MethodPost, "/api/register", fiber.Map{
		"full_name":    "Budi Santoso",
		"company_name": "PT Maju Jaya",
		"phone_number": "081234567890",
	}, map[string]string{"X-Forwarded-For": "10.1.1.1"})
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("register status = %d, body = %v", res.StatusCode, body)
	}
	data := body["data"].(map[string]any)
	token, _ := data["qr_token"].(string)
	if _, err := uuid.Parse(token); err != nil {
		t.Fatalf("qr_token bukan UUID: %q", token)
	}

	// 2. QR image bisa diambil dan isinya URL check-in untuk token ini
	req := httptest.NewRequest(fiber.MethodGet, "/api/qr/"+token+"/image", nil)
	imgRes, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("ambil QR image: %v", err)
	}
	if imgRes.StatusCode != fiber.StatusOK {
		t.Fatalf("QR image status = %d", imgRes.StatusCode)
	}
	if ct := imgRes.Header.Get(fiber.HeaderContentType); ct != "image/png" {
		t.Errorf("content type = %q, mau image/png", ct)
	}
	if cc := imgRes.Header.Get(fiber.HeaderCacheControl); !strings.Contains(cc, "immutable") {
		t.Errorf("cache control = %q, mau immutable", cc)
	}
	raw, _ := io.ReadAll(imgRes.Body)
	if got, want := decodePNGQR(t, raw), configs.AppBaseURL+"/qr/"+token; got != want {
		t.Errorf("isi QR = %q, mau %q", got, want)
	}

	// 3. Scan pertama: welcome
	res, body = postCheckIn(t, app, token, "device-abc")
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("check-in status = %d, body = %v", res.StatusCode, body)
	}
	if msg := body["message"].(string); msg != "Selamat datang, Budi Santoso!" {
		t.Errorf("message = %q", msg)
	}
	data = body["data"].(map[string]any)
	if data["already_checked_in"].(bool) {
		t.Error("scan pertama tidak boleh duplikat")
	}
	firstCheckedInAt := data["registration"].(map[string]any)["checked_in_at"]

	// 4. Scan ulang: duplikat, state tidak berubah
	res, body = postCheckIn(t, app, token, "device-lain")
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("scan ulang status = %d", res.StatusCode)
	}
	if msg := body["message"].(string); msg != "Budi Santoso sudah check-in sebelumnya" {
		t.Errorf("message duplikat = %q", msg)
	}
	data = body["data"].(map[string]any)
	if !data["already_checked_in"].(bool) {
		t.Error("scan ulang harusnya duplikat")
	}
	if got := data["registration"].(map[string]any)["checked_in_at"]; got != firstCheckedInAt {
		t.Errorf("checked_in_at berubah: %v → %v", firstCheckedInAt, got)
	}

	if n := testutil.AuditCount(t, db, auditModel.ActionCheckIn); n != 1 {
		t.Errorf("audit check_in = %d, mau 1", n)
	}
}

func TestCheckInUnknownToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t, db)

	res, body := postCheckIn(t, app, uuid.NewString(), "device-abc")
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, mau 404", res.StatusCode)
	}
	if msg := body["message"].(string); msg != "QR Code tidak valid" {
		t.Errorf("message = %q", msg)
	}
}

func TestCheckInMalformedToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t, db)

	res, body := postCheckIn(t, app, "bukan-uuid", "device-abc")
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, mau 400", res.StatusCode)
	}
	if code := body["error_code"].(string); code != "BAD_REQUEST" {
		t.Errorf("error_code = %q", code)
	}
}

func TestCheckInMissingToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t, db)

	res, _ := testutil.DoJSON(t, app, fiber.MethodPost, "/api/check-in",
		fiber.Map{}, map[string]string{"X-Device-Id": "device-abc"})
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, mau 400", res.StatusCode)
	}
}

// Field "token" (payload lama scanner) harus tetap diterima.
func TestCheckInLegacyTokenField(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t, db)

	token := service.GenerateToken()
	testutil.CreateRegistration(t, db, "Siti Aminah", "+6281234567891", token)

	res, body := testutil.DoJSON(t, app, fiber.MethodPost, "/api/check-in",
		fiber.Map{"token": token}, map[string]string{"X-Device-Id": "device-abc"})
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, body = %v", res.StatusCode, body)
	}
}

// Klien yang mengirim URL hasil scan utuh (bukan token polos) tetap diterima.
func TestCheckInFullURLPayload(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t, db)

	token := service.GenerateToken()
	testutil.CreateRegistration(t, db, "Andi Wijaya", "+6281234567894", token)

	payload := service.QRContent(configs.AppBaseURL, token)
	res, body := postCheckIn(t, app, payload, "device-abc")
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, body = %v", res.StatusCode, body)
	}
	if body["data"].(map[string]any)["already_checked_in"].(bool) {
		t.Error("scan pertama lewat URL utuh tidak boleh duplikat")
	}
}

func TestCheckInRateLimited(t *testing.T) {
	t.Setenv("CHECKIN_RATE_MAX", "3")

	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t, db)

	token := service.GenerateToken()
	testutil.CreateRegistration(t, db, "Rina Wati", "+6281234567892", token)

	// kuota 3 scan untuk device yang sama (hasilnya bebas, yang dihitung request)
	for i := 0; i < 3; i++ {
		if res, _ := postCheckIn(t, app, token, "device-padat"); res.StatusCode == fiber.StatusTooManyRequests {
			t.Fatalf("scan ke-%d sudah kena limit, terlalu cepat", i+1)
		}
	}

	res, body := postCheckIn(t, app, token, "device-padat")
	if res.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("scan ke-4 status = %d, mau 429", res.StatusCode)
	}
	if msg := body["message"].(string); msg != "Terlalu banyak scan. Tunggu sebentar." {
		t.Errorf("message = %q", msg)
	}
	if code := body["error_code"].(string); code != "RATE_LIMITED" {
		t.Errorf("error_code = %q", code)
	}

	// device lain tidak ikut kena
	if res, _ := postCheckIn(t, app, token, "device-lain"); res.StatusCode == fiber.StatusTooManyRequests {
		t.Error("kuota device lain tidak boleh ikut habis")
	}
}

func TestQRImageUnknownToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t, db)

	req := httptest.NewRequest(fiber.MethodGet, "/api/qr/"+uuid.NewString()+"/image", nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, mau 404", res.StatusCode)
	}
}

func TestQRImageMalformedToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t, db)

	req := httptest.NewRequest(fiber.MethodGet, "/api/qr/abc123/image", nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, mau 400", res.StatusCode)
	}
}

/* =========================================================
   helpers
   ========================================================= */

func postCheckIn(t *testing.T, app *fiber.App, token, deviceID string) (*http.Response, map[string]any) {
	t.Helper()
	return testutil.DoJSON(t, app, fiber.MethodPost, "/api/check-in",
		fiber.Map{"qr_token": token},
		map[string]string{"X-Device-Id": deviceID})
}

func decodePNGQR(t *testing.T, data []byte) string {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Gagal decode PNG: %v", err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		t.Fatalf("Gagal buat bitmap: %v", err)
	}
	result, err := qrDecoder.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		t.Fatalf("Gagal baca QR: %v", err)
	}
	return result.GetText()
}
