package service

import (
	"strings"

	"pricecheck-web/internal/models"
)

// ConsolidateMAP builds the SKU -> MAP price index from all brand sources.
// Sources are processed in their configured order and the last write for a
// SKU wins, so a SKU listed by two brands takes the later source's price.
// Rows with an empty SKU or an unparseable MAP price contribute nothing.
func ConsolidateMAP(sources []models.BrandSourceRows) map[string]models.MapEntry {
	index := make(map[string]models.MapEntry)

	for _, source := range sources {
		for _, row := range source.Rows {
			sku := strings.TrimSpace(row.SKU)
			if sku == "" {
				continue
			}

			price := models.ParsePriceCents(row.MAPPrice)
			if !price.Valid {
				continue
			}

			index[sku] = models.MapEntry{
				PriceCents: price.Value,
				Brand:      source.Source.Name,
			}
		}
	}

	return index
}
