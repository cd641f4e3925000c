package domain

type Color struct {
	Name string `yaml:"name" json:"name"`
	Hex  string `yaml:"hex" json:"hex"`
}

// Product is a catalog entry. Optional numbers are nil when the catalog omits them.
type Product struct {
	Slug                  string   `yaml:"-" json:"slug"`
	Name                  string   `yaml:"name" json:"name"`
	Rating                float64  `yaml:"rating" json:"rating"`
	Range                 string   `yaml:"range" json:"range"`
	Colors                []Color  `yaml:"colors" json:"colors"`
	Capacities            []string `yaml:"capacities" json:"capacities"`
	Price                 *float64 `yaml:"price_aud" json:"price_aud,omitempty"`
	DiscountPercent       int      `yaml:"discount_percent" json:"discount_percent"`
	InStock               bool     `yaml:"in_stock" json:"in_stock"`
	Images                []string `yaml:"images" json:"images"`
	KeyFeatures           []string `yaml:"key_features" json:"key_features"`
	ReturnsPolicy         string   `yaml:"returns_policy" json:"returns_policy"`
	FreeShippingThreshold float64  `yaml:"free_shipping_threshold" json:"free_shipping_threshold"`
	ShippingStandard      *float64 `yaml:"shipping_cost_standard" json:"shipping_cost_standard,omitempty"`
	ShippingExpress       *float64 `yaml:"shipping_cost_express" json:"shipping_cost_express,omitempty"`
	ShippingProvider      string   `yaml:"shipping_provider" json:"shipping_provider"`
	OriginCountry         string   `yaml:"origin_country" json:"origin_country"`
}

// Exchange is one persisted chat turn.
type Exchange struct {
	ID    int64  `db:"id" json:"-"`
	TS    string `db:"ts" json:"ts"`
	Slug  string `db:"product_slug" json:"-"`
	User  string `db:"user_msg" json:"user"`
	AI    string `db:"ai_reply" json:"ai"`
	Model string `db:"model_tag" json:"model"`
}

type DeliveryEstimate struct {
	Postcode string `json:"postcode"`
	Standard string `json:"standard"` // e.g. "Oct 19 - Oct 21"
	Express  string `json:"express"`
}
