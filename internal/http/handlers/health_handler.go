package handlers

import (
	"github.com/gofiber/fiber/v2"

	"onestop/internal/repos"
)

type HealthHandler struct {
	History *repos.ChatRepo
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	n, err := h.History.Count(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"ok": false})
	}
	return c.JSON(fiber.Map{"ok": true, "exchanges": n})
}
