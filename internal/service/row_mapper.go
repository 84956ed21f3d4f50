package service

import (
	"strings"

	"pricecheck-web/internal/models"
)

// columnRef is one resolved external column: either a header name or a
// zero-based position (when the mapping key is a column letter like "A").
type columnRef struct {
	header     string
	position   int
	positional bool
}

func (c columnRef) read(row models.RawRow) string {
	if c.positional {
		return row.At(c.position)
	}
	return row.Get(c.header)
}

// resolveMapping inverts a source's external->canonical column mapping into
// canonical->column lookups. A canonical field claimed by more than one
// external column is ambiguous and dropped, so every row reads it as absent.
func resolveMapping(mappings map[string]string) map[string]columnRef {
	claims := make(map[string][]columnRef)
	for external, canonical := range mappings {
		if canonical == "" {
			continue
		}
		if pos, ok := columnLetterIndex(external); ok {
			claims[canonical] = append(claims[canonical], columnRef{position: pos, positional: true})
		} else {
			claims[canonical] = append(claims[canonical], columnRef{header: external})
		}
	}

	resolved := make(map[string]columnRef, len(claims))
	for canonical, refs := range claims {
		if len(refs) == 1 {
			resolved[canonical] = refs[0]
		}
	}
	return resolved
}

// columnLetterIndex interprets an upper-case spreadsheet column letter as a
// zero-based position ("A" = 0, "Z" = 25, "AA" = 26). Anything else is a
// header name.
func columnLetterIndex(key string) (int, bool) {
	if key == "" || len(key) > 2 {
		return 0, false
	}
	index := 0
	for _, r := range key {
		if r < 'A' || r > 'Z' {
			return 0, false
		}
		index = index*26 + int(r-'A') + 1
	}
	return index - 1, true
}

// MapMasterRows converts raw master-list rows into canonical master records.
// Values stay raw strings; price parsing happens at evaluation time.
func MapMasterRows(rows []models.RawRow, src models.DataSource) []models.MasterRow {
	cols := resolveMapping(src.ColumnMappings)

	mapped := make([]models.MasterRow, 0, len(rows))
	for _, row := range rows {
		mapped = append(mapped, models.MasterRow{
			SKU:          readField(cols, row, models.FieldSKU),
			ProductName:  readField(cols, row, models.FieldProductName),
			Brand:        readField(cols, row, models.FieldBrand),
			RicsRetail:   readField(cols, row, models.FieldRicsRetail),
			RicsOffer:    readField(cols, row, models.FieldRicsOffer),
			WebPrice:     readField(cols, row, models.FieldWebPrice),
			WebSalePrice: readField(cols, row, models.FieldWebSalePrice),
		})
	}
	return mapped
}

// MapBrandRows converts raw brand price-list rows into canonical brand
// records.
func MapBrandRows(rows []models.RawRow, src models.DataSource) []models.BrandRow {
	cols := resolveMapping(src.ColumnMappings)

	mapped := make([]models.BrandRow, 0, len(rows))
	for _, row := range rows {
		mapped = append(mapped, models.BrandRow{
			SKU:      readField(cols, row, models.FieldSKU),
			MAPPrice: readField(cols, row, models.FieldMAPPrice),
		})
	}
	return mapped
}

func readField(cols map[string]columnRef, row models.RawRow, canonical string) string {
	ref, ok := cols[canonical]
	if !ok {
		return ""
	}
	return strings.TrimSpace(ref.read(row))
}
