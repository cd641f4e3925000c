package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"onestop/internal/log"
)

const friendlyError = "Something went wrong. Please try again."

// ErrorHandler logs the error and answers without leaking internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code = fe.Code
	}
	log.Error(c, "server.error", err, nil)

	msg := friendlyError
	if code == fiber.StatusNotFound {
		msg = "Page not found"
	}
	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
	// best-effort render
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
