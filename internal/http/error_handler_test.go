package handlers_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"onestop/internal/http/handlers"
)

func newErrorApp() *fiber.App {
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())

	boom := func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "db timeout: secret trace")
	}
	app.Get("/err", boom)
	app.Get("/api/err", boom)
	app.Get("/api/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })
	return app
}

func TestErrorHandlerFriendlyMessage(t *testing.T) {
	app := newErrorApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/err", nil))
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if !strings.Contains(s, "Something went wrong") {
		t.Fatalf("friendly message missing; body=%s", s)
	}
	if strings.Contains(s, "db timeout") || strings.Contains(s, "secret") {
		t.Fatalf("internal details leaked to user; body=%s", s)
	}
}

func TestErrorHandlerJSONForAPI(t *testing.T) {
	app := newErrorApp()

	var resp500 struct {
		Error string `json:"error"`
	}
	entries := captureLogs(t, func() {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/err", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, fiber.MIMEApplicationJSON) {
			t.Fatalf("expected JSON, got %q", ct)
		}
		resp500 = decode[struct {
			Error string `json:"error"`
		}](t, resp)
	})
	if strings.Contains(resp500.Error, "secret") {
		t.Fatalf("internal details leaked: %q", resp500.Error)
	}
	// the detail stays in the log only
	found := false
	for _, e := range entries {
		if e.Action == "server.error" && strings.Contains(e.Err, "secret trace") {
			found = true
		}
	}
	if !found {
		t.Fatalf("server.error not logged: %+v", entries)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/missing", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
