package services

import (
	"fmt"
	"strconv"
	"strings"

	"onestop/internal/domain"
)

const (
	defaultOrigin   = "Australia"
	defaultProvider = "AusPost"
)

// BuildContext describes a product in one paragraph for the model prompt.
// A zero Product still yields the leading sentence with empty fields.
func BuildContext(p domain.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s. Key features: %s. Price: %s AUD.",
		p.Name, strings.Join(p.KeyFeatures, "; "), amount(p.Price))

	if p.ShippingStandard != nil && p.ShippingExpress != nil {
		fmt.Fprintf(&b, " Standard shipping cost is %s AUD and express shipping cost is %s AUD.",
			amount(p.ShippingStandard), amount(p.ShippingExpress))
	}
	if p.ShippingProvider != "" {
		fmt.Fprintf(&b, " Shipping is handled by %s and the platform is located in %s.",
			p.ShippingProvider, orDefault(p.OriginCountry, defaultOrigin))
	}
	return b.String()
}

// BuildPrompt wraps the product context and the shopper's question.
func BuildPrompt(productContext, question string) string {
	return "You are a helpful shopping consultant for a web store.\n" +
		"Context: " + productContext + "\n" +
		"User question: " + question + "\n" +
		"Answer in a clear and short way."
}

// amount prints whole numbers without a fraction (1499, not 1499.00).
func amount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
