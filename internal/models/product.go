package models

// Evaluation statuses.
const (
	StatusOK         = "OK"
	StatusViolation  = "VIOLATION"
	StatusMAPMissing = "MAP_MISSING"
)

// Price channels, in the order they are checked.
const (
	ChannelRetail      = "RETAIL"
	ChannelRetailOffer = "RETAIL_OFFER"
	ChannelWeb         = "WEB"
	ChannelWebSale     = "WEB_SALE"
)

// MapEntry is the consolidated MAP price for one SKU, together with the brand
// source it came from.
type MapEntry struct {
	PriceCents int64  `json:"price_cents"`
	Brand      string `json:"brand"`
}

// EvaluatedProduct is the outcome of checking one product against its MAP
// price. ViolatingPrice and ViolatingSource are set only for VIOLATION;
// MAPPrice is absent exactly when Status is MAP_MISSING.
type EvaluatedProduct struct {
	SKU             string `json:"sku"`
	ProductName     string `json:"product_name"`
	Brand           string `json:"brand"`
	Status          string `json:"status"`
	MAPPrice        Cents  `json:"map_price_cents"`
	ViolatingPrice  Cents  `json:"violating_price_cents"`
	ViolatingSource string `json:"violating_source,omitempty"`
}

// CompetitorPrice is one observed market price for a product, as returned by
// the external market lookup.
type CompetitorPrice struct {
	Competitor string `json:"competitor"`
	PriceCents int64  `json:"price_cents"`
}
