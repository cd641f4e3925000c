package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"onestop/internal/catalog"
	"onestop/internal/log"
	"onestop/internal/validate"
)

type ProductHandler struct {
	Catalog     *catalog.Catalog
	DefaultSlug string
	Model       string
}

func (h *ProductHandler) Home(c *fiber.Ctx) error {
	return c.Redirect("/product/" + h.DefaultSlug)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "slug"})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Product not found"})
	}
	p, ok := h.Catalog.Get(slug)
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Product not found"})
	}

	data := fiber.Map{"P": p, "Slug": slug, "Model": h.Model}
	if p.Price != nil {
		data["Price"] = money(*p.Price)
		if p.DiscountPercent > 0 && p.DiscountPercent < 100 {
			data["WasPrice"] = money(*p.Price / (1 - float64(p.DiscountPercent)/100))
		}
	}
	if p.ShippingStandard != nil && p.ShippingExpress != nil {
		data["Standard"] = money(*p.ShippingStandard)
		data["Express"] = money(*p.ShippingExpress)
	}
	return render(c, "product", data)
}

func money(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
