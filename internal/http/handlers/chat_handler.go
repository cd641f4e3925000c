package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"onestop/internal/log"
	"onestop/internal/metrics"
	"onestop/internal/services"
	"onestop/internal/validate"
)

type ChatHandler struct {
	Chat        *services.ChatService
	DefaultSlug string
	Limit       int
	MaxLimit    int
}

type askRequest struct {
	Message string `json:"message"`
	Slug    string `json:"slug"`
}

// Ask always answers 200 with {"reply": ...}; failures are in the reply text.
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		log.Security(c, "validation.fail", map[string]any{"field": "body"})
		req = askRequest{}
	}
	slug := h.slug(c, req.Slug)

	reply, err := h.Chat.Ask(c.UserContext(), req.Message, slug)
	metrics.ObserveTurn(string(reply.Source))
	if err != nil {
		metrics.HistoryWriteErrorsTotal.Inc()
		log.Error(c, "chat.log.fail", err, map[string]any{"slug": slug})
	}
	switch reply.Source {
	case services.SourceUnavailable:
		log.Warn(c, "chat.model.unavailable", nil, map[string]any{"slug": slug})
	case services.SourceShipping, services.SourceModel:
		log.Audit(c, "chat.exchange", map[string]any{"slug": slug, "source": string(reply.Source)})
	}
	return c.JSON(fiber.Map{"reply": reply.Text})
}

func (h *ChatHandler) History(c *fiber.Ctx) error {
	slug := h.slug(c, c.Query("slug"))
	if slug == "" {
		slug = h.DefaultSlug
	}
	limit := validate.Limit(c.Query("limit"), h.Limit, h.MaxLimit)

	rows, err := h.Chat.Recent(c.UserContext(), slug, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"history": rows})
}

// slug is shared by Ask and History so every stored exchange stays queryable.
// Odd slugs are logged and then treated as unknown products.
func (h *ChatHandler) slug(c *fiber.Ctx, raw string) string {
	slug := strings.TrimSpace(raw)
	if slug == "" {
		return ""
	}
	if _, ok := validate.Slug(slug); !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "slug"})
	}
	return slug
}
