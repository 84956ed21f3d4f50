package service

import (
	"sort"
	"strings"

	"pricecheck-web/internal/models"
)

// FilterParams narrows an evaluated product set. All populated filters
// compose with AND; empty filters match everything.
type FilterParams struct {
	Search   string
	Brands   []string
	Statuses []string
}

// FilterProducts applies the free-text search (case-insensitive substring on
// product name or SKU) and the brand/status multi-selects.
func FilterProducts(products []models.EvaluatedProduct, params FilterParams) []models.EvaluatedProduct {
	search := strings.ToLower(strings.TrimSpace(params.Search))
	brands := toSet(params.Brands)
	statuses := toSet(params.Statuses)

	filtered := make([]models.EvaluatedProduct, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.ProductName), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		if len(brands) > 0 && !brands[p.Brand] {
			continue
		}
		if len(statuses) > 0 && !statuses[p.Status] {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// SortProducts stable-sorts a copy of the product set by the given key.
// Products with an absent value for the key always sort after every product
// with a present value, for ascending and descending alike; unknowns go
// last no matter how the list is ordered. Unknown keys leave the input
// order untouched.
func SortProducts(products []models.EvaluatedProduct, key, direction string) []models.EvaluatedProduct {
	sorted := make([]models.EvaluatedProduct, len(products))
	copy(sorted, products)

	less := lessFunc(key)
	if less == nil {
		return sorted
	}

	descending := direction == "desc" || direction == "descending"
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		aNull, bNull := isNullFor(a, key), isNullFor(b, key)
		if aNull != bNull {
			return bNull
		}
		if aNull {
			return false
		}
		if descending {
			return less(b, a)
		}
		return less(a, b)
	})
	return sorted
}

func lessFunc(key string) func(a, b models.EvaluatedProduct) bool {
	switch key {
	case "sku":
		return func(a, b models.EvaluatedProduct) bool { return a.SKU < b.SKU }
	case "productName":
		return func(a, b models.EvaluatedProduct) bool { return a.ProductName < b.ProductName }
	case "brand":
		return func(a, b models.EvaluatedProduct) bool { return a.Brand < b.Brand }
	case "status":
		return func(a, b models.EvaluatedProduct) bool { return a.Status < b.Status }
	case "mapPriceCents":
		return func(a, b models.EvaluatedProduct) bool { return a.MAPPrice.Value < b.MAPPrice.Value }
	case "violatingPriceCents":
		return func(a, b models.EvaluatedProduct) bool { return a.ViolatingPrice.Value < b.ViolatingPrice.Value }
	default:
		return nil
	}
}

func isNullFor(p models.EvaluatedProduct, key string) bool {
	switch key {
	case "mapPriceCents":
		return !p.MAPPrice.Valid
	case "violatingPriceCents":
		return !p.ViolatingPrice.Valid
	default:
		return false
	}
}

// Summarize computes the scorecard statistics over the full, unfiltered
// evaluated set: violation rate, violations per channel, and violations per
// brand sorted by count with ties kept in first-encountered order.
func Summarize(products []models.EvaluatedProduct) models.Summary {
	summary := models.Summary{TotalProducts: len(products)}

	channelCounts := make(map[string]int)
	var channelOrder []string
	brandCounts := make(map[string]int)
	var brandOrder []string

	for _, p := range products {
		if p.Status != models.StatusViolation {
			continue
		}
		summary.ViolationCount++

		channel := p.ViolatingSource
		if channel == "" {
			channel = "Unknown"
		}
		if _, seen := channelCounts[channel]; !seen {
			channelOrder = append(channelOrder, channel)
		}
		channelCounts[channel]++

		if _, seen := brandCounts[p.Brand]; !seen {
			brandOrder = append(brandOrder, p.Brand)
		}
		brandCounts[p.Brand]++
	}

	if summary.TotalProducts > 0 {
		summary.ViolationRate = float64(summary.ViolationCount) / float64(summary.TotalProducts)
	}

	for _, channel := range channelOrder {
		summary.ByChannel = append(summary.ByChannel, models.ChannelCount{Channel: channel, Count: channelCounts[channel]})
	}

	for _, brand := range brandOrder {
		summary.ByBrand = append(summary.ByBrand, models.BrandCount{Brand: brand, Count: brandCounts[brand]})
	}
	sort.SliceStable(summary.ByBrand, func(i, j int) bool {
		return summary.ByBrand[i].Count > summary.ByBrand[j].Count
	})

	if len(summary.ByBrand) > 0 {
		summary.TopBrand = summary.ByBrand[0].Brand
		summary.TopBrandCount = summary.ByBrand[0].Count
	}

	return summary
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = true
		}
	}
	return set
}
