package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"onestop/internal/services"
	"onestop/internal/validate"
)

type DeliveryHandler struct {
	Delivery *services.DeliveryService
}

func (h *DeliveryHandler) Estimate(c *fiber.Ctx) error {
	var req struct {
		Postcode any `json:"postcode"`
	}
	_ = c.BodyParser(&req) // a missing or broken body still gets an estimate

	var postcode string
	switch v := req.Postcode.(type) {
	case string:
		postcode = v
	case float64:
		postcode = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return c.JSON(h.Delivery.Estimate(validate.Postcode(postcode)))
}
