package service

import (
	"testing"

	"pricecheck-web/internal/models"
)

func evaluateOne(t *testing.T, row models.MasterRow, sources []models.BrandSourceRows, tolerances []models.BrandTolerance) models.EvaluatedProduct {
	t.Helper()
	results := NewPriceCheckEngine().Evaluate([]models.MasterRow{row}, sources, tolerances)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	return results[0]
}

func nikeMAP(price string) []models.BrandSourceRows {
	return []models.BrandSourceRows{
		brandSource("Nike", 1, models.BrandRow{SKU: "NK-001", MAPPrice: price}),
	}
}

func TestEvaluateOK(t *testing.T) {
	row := models.MasterRow{SKU: "NK-001", ProductName: "Air Force 1", Brand: "Nike", RicsRetail: "110.00", WebPrice: "110.00"}
	got := evaluateOne(t, row, nikeMAP("110.00"), nil)

	if got.Status != models.StatusOK {
		t.Errorf("Status = %q, want OK", got.Status)
	}
	if !got.MAPPrice.Valid || got.MAPPrice.Value != 11000 {
		t.Errorf("MAPPrice = %+v", got.MAPPrice)
	}
	if got.ViolatingPrice.Valid || got.ViolatingSource != "" {
		t.Errorf("OK product should carry no violating price, got %+v", got)
	}
}

func TestEvaluateViolation(t *testing.T) {
	row := models.MasterRow{SKU: "NK-001", Brand: "Nike", RicsRetail: "99.99"}
	got := evaluateOne(t, row, nikeMAP("110.00"), nil)

	if got.Status != models.StatusViolation {
		t.Fatalf("Status = %q, want VIOLATION", got.Status)
	}
	if got.ViolatingSource != models.ChannelRetail {
		t.Errorf("ViolatingSource = %q, want %q", got.ViolatingSource, models.ChannelRetail)
	}
	if got.ViolatingPrice.Value != 9999 {
		t.Errorf("ViolatingPrice = %+v", got.ViolatingPrice)
	}
}

func TestEvaluateChannelOrderFirstMatchWins(t *testing.T) {
	// Both the offer and web channels violate; the earlier channel in the
	// fixed order must be reported.
	row := models.MasterRow{
		SKU:        "NK-001",
		Brand:      "Nike",
		RicsRetail: "110.00",
		RicsOffer:  "89.99",
		WebPrice:   "79.99",
	}
	got := evaluateOne(t, row, nikeMAP("110.00"), nil)

	if got.Status != models.StatusViolation {
		t.Fatalf("Status = %q, want VIOLATION", got.Status)
	}
	if got.ViolatingSource != models.ChannelRetailOffer {
		t.Errorf("ViolatingSource = %q, want %q", got.ViolatingSource, models.ChannelRetailOffer)
	}
	if got.ViolatingPrice.Value != 8999 {
		t.Errorf("ViolatingPrice = %+v", got.ViolatingPrice)
	}
}

func TestEvaluateWebSaleViolation(t *testing.T) {
	// Only the web sale channel carries a price, and it undercuts MAP.
	row := models.MasterRow{SKU: "NK-001", Brand: "Nike", WebSalePrice: "89.99"}
	got := evaluateOne(t, row, nikeMAP("110.00"), nil)

	if got.Status != models.StatusViolation {
		t.Fatalf("Status = %q, want VIOLATION", got.Status)
	}
	if got.ViolatingSource != models.ChannelWebSale {
		t.Errorf("ViolatingSource = %q, want %q", got.ViolatingSource, models.ChannelWebSale)
	}
}

func TestEvaluateWebSaleFallsBackToOffer(t *testing.T) {
	row := models.MasterRow{SKU: "NK-001", Brand: "Nike", RicsOffer: "105.00"}
	got := evaluateOne(t, row, nikeMAP("110.00"), []models.BrandTolerance{
		{BrandName: "Nike", ToleranceCents: 600},
	})

	// Offer at 105.00 with MAP 110.00 and tolerance 6.00: floor is 104.00,
	// no channel violates, including WEB_SALE falling back to the offer.
	if got.Status != models.StatusOK {
		t.Errorf("Status = %q, want OK", got.Status)
	}
}

func TestEvaluateToleranceBoundary(t *testing.T) {
	tolerances := []models.BrandTolerance{{BrandName: "Nike", ToleranceCents: 100}}

	// Exactly at MAP - tolerance: not a violation.
	row := models.MasterRow{SKU: "NK-001", Brand: "Nike", RicsRetail: "109.00"}
	if got := evaluateOne(t, row, nikeMAP("110.00"), tolerances); got.Status != models.StatusOK {
		t.Errorf("price at floor should be OK, got %q", got.Status)
	}

	// One cent below the floor: violation.
	row.RicsRetail = "108.99"
	if got := evaluateOne(t, row, nikeMAP("110.00"), tolerances); got.Status != models.StatusViolation {
		t.Errorf("price below floor should violate, got %q", got.Status)
	}
}

func TestEvaluateToleranceFallsBackToEntryBrand(t *testing.T) {
	// Master row has no brand; the tolerance resolves through the brand
	// recorded against the SKU in the consolidated index.
	row := models.MasterRow{SKU: "NK-001", RicsRetail: "109.50"}
	got := evaluateOne(t, row, nikeMAP("110.00"), []models.BrandTolerance{
		{BrandName: "Nike", ToleranceCents: 100},
	})

	if got.Status != models.StatusOK {
		t.Errorf("entry-brand tolerance should apply, got %q", got.Status)
	}
	if got.Brand != "Nike" {
		t.Errorf("Brand = %q, want Nike from consolidated entry", got.Brand)
	}
}

func TestEvaluateMAPMissing(t *testing.T) {
	row := models.MasterRow{SKU: "XX-001", ProductName: "Mystery Shoe", RicsRetail: "1.00"}
	got := evaluateOne(t, row, nikeMAP("110.00"), nil)

	if got.Status != models.StatusMAPMissing {
		t.Fatalf("Status = %q, want MAP_MISSING", got.Status)
	}
	// MAP_MISSING is terminal: no price comparison happens at all.
	if got.MAPPrice.Valid || got.ViolatingPrice.Valid || got.ViolatingSource != "" {
		t.Errorf("MAP_MISSING product should carry no prices, got %+v", got)
	}
	if got.Brand != "Unknown" {
		t.Errorf("Brand = %q, want Unknown", got.Brand)
	}
}

func TestEvaluateAllChannelsAbsent(t *testing.T) {
	// A product with a MAP price but no parseable channel price cannot
	// violate.
	row := models.MasterRow{SKU: "NK-001", Brand: "Nike", RicsRetail: "N/A", WebPrice: ""}
	got := evaluateOne(t, row, nikeMAP("110.00"), nil)

	if got.Status != models.StatusOK {
		t.Errorf("Status = %q, want OK", got.Status)
	}
}

func TestEvaluateDropsEmptySKURows(t *testing.T) {
	rows := []models.MasterRow{
		{SKU: "NK-001", Brand: "Nike", RicsRetail: "110.00"},
		{SKU: "", RicsRetail: "1.00"},
		{SKU: "   ", RicsRetail: "1.00"},
	}
	results := NewPriceCheckEngine().Evaluate(rows, nikeMAP("110.00"), nil)
	if len(results) != 1 {
		t.Errorf("expected empty-SKU rows dropped, got %d results", len(results))
	}
}

func TestEvaluateEndToEnd(t *testing.T) {
	sources := []models.BrandSourceRows{
		brandSource("Nike", 1, models.BrandRow{SKU: "AB123", MAPPrice: "$129.99"}),
	}
	row := models.MasterRow{
		SKU:         "AB123",
		ProductName: "Trail Runner",
		Brand:       "Nike",
		RicsRetail:  "129.99",
		RicsOffer:   "129.00",
		WebPrice:    "129.99",
	}
	got := evaluateOne(t, row, sources, []models.BrandTolerance{
		{BrandName: "Nike", ToleranceCents: 100},
	})
	if got.Status != models.StatusOK {
		t.Fatalf("offer within tolerance should be OK, got %q", got.Status)
	}

	// Drop the web sale price below the floor.
	row.WebSalePrice = "119.99"
	got = evaluateOne(t, row, sources, []models.BrandTolerance{
		{BrandName: "Nike", ToleranceCents: 100},
	})
	if got.Status != models.StatusViolation {
		t.Fatalf("Status = %q, want VIOLATION", got.Status)
	}
	if got.ViolatingSource != models.ChannelWebSale {
		t.Errorf("ViolatingSource = %q, want %q", got.ViolatingSource, models.ChannelWebSale)
	}
	if got.ViolatingPrice.Value != 11999 {
		t.Errorf("ViolatingPrice = %d, want 11999", got.ViolatingPrice.Value)
	}
}
