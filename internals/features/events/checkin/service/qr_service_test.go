package service_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/makiuchi-d/gozxing"
	qrDecoder "github.com/makiuchi-d/gozxing/qrcode"

	"acaraku_backend/internals/features/events/checkin/service"
)

func decodeQR(t *testing.T, data []byte) string {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Gagal decode PNG: %v", err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		t.Fatalf("Gagal buat bitmap: %v", err)
	}
	res, err := qrDecoder.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		t.Fatalf("Gagal baca QR dari image: %v", err)
	}
	return res.GetText()
}

func TestGenerateToken(t *testing.T) {
	a := service.GenerateToken()
	b := service.GenerateToken()

	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("token bukan UUID valid: %q (%v)", a, err)
	}
	if a == b {
		t.Fatal("dua token berturut-turut tidak boleh sama")
	}
}

func TestQRContent(t *testing.T) {
	token := "0b4ae722-8ab1-4f2b-9c3d-1a2b3c4d5e6f"

	got := service.QRContent("http://localhost:3000", token)
	want := "http://localhost:3000/qr/" + token
	if got != want {
		t.Errorf("QRContent = %q, mau %q", got, want)
	}

	// trailing slash di base URL tidak boleh jadi double slash
	if got := service.QRContent("http://localhost:3000/", token); got != want {
		t.Errorf("QRContent dengan trailing slash = %q, mau %q", got, want)
	}
}

func TestRenderPNGRoundTrip(t *testing.T) {
	token := service.GenerateToken()
	content := service.QRContent("http://localhost:3000", token)

	buf, err := service.RenderPNG(content)
	if err != nil {
		t.Fatalf("RenderPNG error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("output bukan PNG valid: %v", err)
	}
	if w := img.Bounds().Dx(); w != service.QRImageSize {
		t.Errorf("lebar image = %d, mau %d", w, service.QRImageSize)
	}

	if got := decodeQR(t, buf); got != content {
		t.Errorf("hasil scan = %q, mau %q", got, content)
	}
}

func TestTokenFromPayload(t *testing.T) {
	token := "0b4ae722-8ab1-4f2b-9c3d-1a2b3c4d5e6f"

	cases := []struct {
		name    string
		payload string
		want    string
	}{
		{"url lengkap", "http://localhost:3000/qr/" + token, token},
		{"token polos", token, token},
		{"spasi di pinggir", "  " + token + "  ", token},
		{"url dengan path dalam", "https://acara.example.com/event/qr/" + token, token},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := service.TokenFromPayload(tc.payload); got != tc.want {
				t.Errorf("TokenFromPayload(%q) = %q, mau %q", tc.payload, got, tc.want)
			}
		})
	}
}
