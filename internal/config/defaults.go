package config

import "pricecheck-web/internal/models"

// DefaultDataSources is the built-in source configuration used when no
// settings database is available. The master list carries the shop's own
// channel prices; the brand lists each publish MAP prices under their own
// header layouts and starting rows.
func DefaultDataSources() []models.DataSource {
	return []models.DataSource{
		{
			ID:        1,
			Name:      "Master Price Check",
			SheetURL:  "https://docs.google.com/spreadsheets/d/e/2PACX-1vRxUbhfWe55DhF5bqhhjTv85pEo1up01mEbeIT5QQH4rdRmaa2B8Pq0CUVIbfYHxUQr5-ic4cqdWFZH/pub?output=csv",
			HeaderRow: 1,
			IsMaster:  true,
			Position:  0,
			ColumnMappings: map[string]string{
				"sku":             models.FieldSKU,
				"description":     models.FieldProductName,
				"brand":           models.FieldBrand,
				"RicsRetailPrice": models.FieldRicsRetail,
				"Ricsofferprice":  models.FieldRicsOffer,
				"Scom Price":      models.FieldWebPrice,
				"Scom Sale Price": models.FieldWebSalePrice,
			},
		},
		{
			ID:        2,
			Name:      "Nike / Jordan",
			SheetURL:  "https://docs.google.com/spreadsheets/d/e/2PACX-1vQUry3OuGo26H7oTV3nZlRh3k0k0wV82m1Y9mDBXCIH1upQAIlpkYXmal42DB6Cig/pub?output=csv",
			HeaderRow: 2,
			Position:  1,
			ColumnMappings: map[string]string{
				"SKU":       models.FieldSKU,
				"MAP Price": models.FieldMAPPrice,
			},
		},
		{
			ID:        3,
			Name:      "Adidas",
			SheetURL:  "https://docs.google.com/spreadsheets/d/e/2PACX-1vTVE1EueNaZebSSEluaC2rmOT0YOZAVncIxQmOKRVCuT7dLuy9uu4aD8IMfj6nvHA/pub?output=csv",
			HeaderRow: 2,
			Position:  2,
			ColumnMappings: map[string]string{
				"SKU": models.FieldSKU,
				"MAP": models.FieldMAPPrice,
			},
		},
		{
			ID:        4,
			Name:      "New Balance",
			SheetURL:  "https://docs.google.com/spreadsheets/d/e/2PACX-1vTna228DtiB54_PP6ZRNi7i2Ocbt8fYXEap05kVaMkGyQnebBqfl16yAm9BMEKfEw/pub?output=csv",
			HeaderRow: 2,
			Position:  3,
			ColumnMappings: map[string]string{
				"SKU":   models.FieldSKU,
				"Price": models.FieldMAPPrice,
			},
		},
		{
			ID:        5,
			Name:      "Puma",
			SheetURL:  "https://docs.google.com/spreadsheets/d/e/2PACX-1vRZvhcSwzg6uE6dHOOANX_4DBqIP_cUEHycIjfMwFpjONxofEgWbkFsdlOL-JDm2w/pub?output=csv",
			HeaderRow: 2,
			Position:  4,
			ColumnMappings: map[string]string{
				"SKU":       models.FieldSKU,
				"MAP Price": models.FieldMAPPrice,
			},
		},
		{
			ID:        6,
			Name:      "Vans",
			SheetURL:  "https://docs.google.com/spreadsheets/d/e/1fWuFi84Rr4rzSCxghp_DmnF_bbwHjptB/export?format=csv&id=1fWuFi84Rr4rzSCxghp_DmnF_bbwHjptB&gid=709961168",
			HeaderRow: 9,
			Position:  5,
			ColumnMappings: map[string]string{
				"SKU":       models.FieldSKU,
				"MAP Price": models.FieldMAPPrice,
			},
		},
	}
}

// DefaultTolerances is the built-in brand tolerance table used when no
// settings database is available.
func DefaultTolerances() []models.BrandTolerance {
	return []models.BrandTolerance{
		{ID: 1, BrandName: "Nike / Jordan", ToleranceCents: 100},
		{ID: 2, BrandName: "Adidas", ToleranceCents: 50},
		{ID: 3, BrandName: "New Balance", ToleranceCents: 0},
		{ID: 4, BrandName: "Puma", ToleranceCents: 75},
		{ID: 5, BrandName: "Vans", ToleranceCents: 0},
	}
}
