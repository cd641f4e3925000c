package services

import (
	"fmt"
	"strings"

	"onestop/internal/domain"
)

// shippingPhrases trigger the canned shipping-cost answer. English and Russian.
var shippingPhrases = []string{
	"shipping cost",
	"shipping costs",
	"delivery cost",
	"shipping price",
	"shipping fee",
	"shipping charges",
	"стоимость доставки",
	"цена доставки",
	"доставка",
}

const shippingUnavailable = "Shipping cost information is currently unavailable."

// IsShippingQuestion reports whether msg asks about shipping cost.
func IsShippingQuestion(msg string) bool {
	msg = strings.ToLower(msg)
	for _, k := range shippingPhrases {
		if strings.Contains(msg, k) {
			return true
		}
	}
	return false
}

// MatchShipping answers shipping-cost questions from catalog data.
// ok is false when msg is not a shipping-cost question.
func MatchShipping(msg string, p domain.Product) (reply string, ok bool) {
	if !IsShippingQuestion(msg) {
		return "", false
	}
	if p.ShippingStandard == nil || p.ShippingExpress == nil {
		return shippingUnavailable, true
	}
	return fmt.Sprintf("Standard shipping costs %s AUD and express shipping costs %s AUD within %s. Shipping is handled by %s.",
		amount(p.ShippingStandard), amount(p.ShippingExpress),
		orDefault(p.OriginCountry, defaultOrigin), orDefault(p.ShippingProvider, defaultProvider)), true
}
