package service

import (
	"strings"

	"pricecheck-web/internal/models"
)

// PriceCheckEngine evaluates master-list products against consolidated brand
// MAP prices. Evaluate is pure: the same inputs always produce the same
// output, and nothing is cached across runs.
type PriceCheckEngine struct{}

func NewPriceCheckEngine() *PriceCheckEngine {
	return &PriceCheckEngine{}
}

type channelPrice struct {
	name  string
	price models.Cents
}

// Evaluate classifies every master-list product as OK, VIOLATION or
// MAP_MISSING. Rows with an empty SKU are dropped entirely.
//
// Channels are checked in the fixed order RETAIL, RETAIL_OFFER, WEB,
// WEB_SALE, and the first channel priced below (MAP - tolerance) wins; later
// channels are not inspected even if they also violate. WEB falls back to the
// RICS retail price when no web price exists, WEB_SALE falls back to the RICS
// offer price.
func (e *PriceCheckEngine) Evaluate(
	masterRows []models.MasterRow,
	brandSources []models.BrandSourceRows,
	tolerances []models.BrandTolerance,
) []models.EvaluatedProduct {
	index := ConsolidateMAP(brandSources)

	toleranceByBrand := make(map[string]int64, len(tolerances))
	for _, t := range tolerances {
		toleranceByBrand[t.BrandName] = t.ToleranceCents
	}

	results := make([]models.EvaluatedProduct, 0, len(masterRows))
	for _, row := range masterRows {
		sku := strings.TrimSpace(row.SKU)
		if sku == "" {
			continue
		}

		entry, hasMAP := index[sku]

		product := models.EvaluatedProduct{
			SKU:         sku,
			ProductName: row.ProductName,
			Brand:       resolveBrand(row.Brand, entry, hasMAP),
			Status:      models.StatusOK,
		}

		if !hasMAP {
			product.Status = models.StatusMAPMissing
			results = append(results, product)
			continue
		}

		product.MAPPrice = models.NewCents(entry.PriceCents)

		tolerance := e.toleranceFor(row.Brand, entry.Brand, toleranceByBrand)
		floor := entry.PriceCents - tolerance

		for _, candidate := range channelCandidates(row) {
			if candidate.price.Valid && candidate.price.Value < floor {
				product.Status = models.StatusViolation
				product.ViolatingPrice = candidate.price
				product.ViolatingSource = candidate.name
				break
			}
		}

		results = append(results, product)
	}

	return results
}

// channelCandidates resolves the four channel prices for a product,
// including the WEB and WEB_SALE fallback chains.
func channelCandidates(row models.MasterRow) []channelPrice {
	ricsRetail := models.ParsePriceCents(row.RicsRetail)
	ricsOffer := models.ParsePriceCents(row.RicsOffer)
	webPrice := models.ParsePriceCents(row.WebPrice)
	webSale := models.ParsePriceCents(row.WebSalePrice)

	effectiveWeb := webPrice
	if !effectiveWeb.Valid {
		effectiveWeb = ricsRetail
	}
	effectiveWebSale := webSale
	if !effectiveWebSale.Valid {
		effectiveWebSale = ricsOffer
	}

	return []channelPrice{
		{models.ChannelRetail, ricsRetail},
		{models.ChannelRetailOffer, ricsOffer},
		{models.ChannelWeb, effectiveWeb},
		{models.ChannelWebSale, effectiveWebSale},
	}
}

// toleranceFor looks up the tolerance by the product's own brand first, then
// by the brand recorded against the SKU in the consolidated index. Brands
// without a rule get zero tolerance.
func (e *PriceCheckEngine) toleranceFor(productBrand, entryBrand string, table map[string]int64) int64 {
	brand := strings.TrimSpace(productBrand)
	if brand == "" {
		brand = entryBrand
	}
	return table[brand]
}

func resolveBrand(masterBrand string, entry models.MapEntry, hasMAP bool) string {
	if brand := strings.TrimSpace(masterBrand); brand != "" {
		return brand
	}
	if hasMAP && entry.Brand != "" {
		return entry.Brand
	}
	return "Unknown"
}
