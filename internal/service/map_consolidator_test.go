package service

import (
	"testing"

	"pricecheck-web/internal/models"
)

func brandSource(name string, pos int, rows ...models.BrandRow) models.BrandSourceRows {
	return models.BrandSourceRows{
		Source: models.DataSource{Name: name, Position: pos},
		Rows:   rows,
	}
}

func TestConsolidateMAP(t *testing.T) {
	index := ConsolidateMAP([]models.BrandSourceRows{
		brandSource("Nike", 1,
			models.BrandRow{SKU: "NK-001", MAPPrice: "110.00"},
			models.BrandRow{SKU: " NK-002 ", MAPPrice: "$115.00"},
		),
		brandSource("Adidas", 2,
			models.BrandRow{SKU: "AD-001", MAPPrice: "100.00"},
		),
	})

	if len(index) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(index))
	}
	if got := index["NK-001"]; got.PriceCents != 11000 || got.Brand != "Nike" {
		t.Errorf("NK-001 = %+v", got)
	}
	if got := index["NK-002"]; got.PriceCents != 11500 {
		t.Errorf("trimmed SKU entry = %+v", got)
	}
}

func TestConsolidateMAPLastWriteWins(t *testing.T) {
	index := ConsolidateMAP([]models.BrandSourceRows{
		brandSource("Nike", 1, models.BrandRow{SKU: "SHARED-001", MAPPrice: "110.00"}),
		brandSource("Adidas", 2, models.BrandRow{SKU: "SHARED-001", MAPPrice: "95.00"}),
	})

	got := index["SHARED-001"]
	if got.PriceCents != 9500 || got.Brand != "Adidas" {
		t.Errorf("later source should win, got %+v", got)
	}
}

func TestConsolidateMAPSkipsUnusableRows(t *testing.T) {
	index := ConsolidateMAP([]models.BrandSourceRows{
		brandSource("Nike", 1,
			models.BrandRow{SKU: "", MAPPrice: "110.00"},
			models.BrandRow{SKU: "   ", MAPPrice: "110.00"},
			models.BrandRow{SKU: "NK-001", MAPPrice: "Call"},
			models.BrandRow{SKU: "NK-002", MAPPrice: ""},
		),
	})

	if len(index) != 0 {
		t.Errorf("expected empty index, got %v", index)
	}
}

func TestConsolidateMAPUnparseablePriceKeepsEarlierEntry(t *testing.T) {
	index := ConsolidateMAP([]models.BrandSourceRows{
		brandSource("Nike", 1, models.BrandRow{SKU: "NK-001", MAPPrice: "110.00"}),
		brandSource("Adidas", 2, models.BrandRow{SKU: "NK-001", MAPPrice: "TBD"}),
	})

	got := index["NK-001"]
	if got.PriceCents != 11000 || got.Brand != "Nike" {
		t.Errorf("unparseable later price should not clobber entry, got %+v", got)
	}
}
