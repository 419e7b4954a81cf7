// Package web menyajikan halaman publik (form registrasi + scanner check-in)
// sebagai asset embedded, jadi binary-nya self-contained.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

//go:embed static
var staticFS embed.FS

//go:embed templates
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type scannerPageData struct {
	ResumeMs int
}

func PageRoutes(app *fiber.App, scannerResumeMs int) {
	app.Get("/", func(c *fiber.Ctx) error {
		return renderPage(c, "register.html", nil)
	})

	app.Get("/check-in", func(c *fiber.Ctx) error {
		return renderPage(c, "checkin.html", scannerPageData{ResumeMs: scannerResumeMs})
	})

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(staticFS),
		PathPrefix: "static",
		MaxAge:     3600,
	}))
}

func renderPage(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal render halaman")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
