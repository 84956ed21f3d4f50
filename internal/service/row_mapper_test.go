package service

import (
	"testing"

	"pricecheck-web/internal/models"
)

func TestMapMasterRows(t *testing.T) {
	src := models.DataSource{
		Name: "Master",
		ColumnMappings: map[string]string{
			"sku":             models.FieldSKU,
			"description":     models.FieldProductName,
			"brand":           models.FieldBrand,
			"RicsRetailPrice": models.FieldRicsRetail,
		},
	}
	headers := []string{"sku", "description", "brand", "RicsRetailPrice"}
	rows := []models.RawRow{
		models.NewRawRow(headers, []string{" NK-001 ", "Air Force 1", "Nike", "110.00"}),
		models.NewRawRow(headers, []string{"NK-002", "Dunk Low"}),
	}

	mapped := MapMasterRows(rows, src)
	if len(mapped) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(mapped))
	}
	if mapped[0].SKU != "NK-001" {
		t.Errorf("SKU = %q, want trimmed %q", mapped[0].SKU, "NK-001")
	}
	if mapped[0].RicsRetail != "110.00" {
		t.Errorf("RicsRetail = %q", mapped[0].RicsRetail)
	}
	// Short row reads missing columns as empty
	if mapped[1].Brand != "" || mapped[1].RicsRetail != "" {
		t.Errorf("short row should read absent cells as empty, got %+v", mapped[1])
	}
	// Unmapped canonical fields are absent everywhere
	if mapped[0].WebPrice != "" {
		t.Errorf("unmapped field should be empty, got %q", mapped[0].WebPrice)
	}
}

func TestMapBrandRowsPositional(t *testing.T) {
	src := models.DataSource{
		Name: "Vans",
		ColumnMappings: map[string]string{
			"A": models.FieldSKU,
			"C": models.FieldMAPPrice,
		},
	}
	headers := []string{"ignored", "also ignored", "still ignored"}
	rows := []models.RawRow{
		models.NewRawRow(headers, []string{"VN-001", "Old Skool", "70.00"}),
	}

	mapped := MapBrandRows(rows, src)
	if len(mapped) != 1 {
		t.Fatalf("expected 1 row, got %d", len(mapped))
	}
	if mapped[0].SKU != "VN-001" {
		t.Errorf("SKU = %q, want VN-001", mapped[0].SKU)
	}
	if mapped[0].MAPPrice != "70.00" {
		t.Errorf("MAPPrice = %q, want 70.00", mapped[0].MAPPrice)
	}
}

func TestMapBrandRowsAmbiguousMapping(t *testing.T) {
	// Two external columns both claim the MAP price; the field must read as
	// absent rather than picking one arbitrarily.
	src := models.DataSource{
		Name: "Adidas",
		ColumnMappings: map[string]string{
			"SKU":   models.FieldSKU,
			"MAP":   models.FieldMAPPrice,
			"Price": models.FieldMAPPrice,
		},
	}
	headers := []string{"SKU", "MAP", "Price"}
	rows := []models.RawRow{
		models.NewRawRow(headers, []string{"AD-001", "100.00", "95.00"}),
	}

	mapped := MapBrandRows(rows, src)
	if mapped[0].SKU != "AD-001" {
		t.Errorf("SKU = %q", mapped[0].SKU)
	}
	if mapped[0].MAPPrice != "" {
		t.Errorf("ambiguously mapped field should be empty, got %q", mapped[0].MAPPrice)
	}
}

func TestColumnLetterIndex(t *testing.T) {
	tests := []struct {
		key        string
		index      int
		positional bool
	}{
		{"A", 0, true},
		{"B", 1, true},
		{"Z", 25, true},
		{"AA", 26, true},
		{"AZ", 51, true},
		{"", 0, false},
		{"a", 0, false},
		{"A1", 0, false},
		{"SKU", 0, false},
		{"MAP Price", 0, false},
	}
	for _, tt := range tests {
		index, positional := columnLetterIndex(tt.key)
		if positional != tt.positional {
			t.Errorf("columnLetterIndex(%q) positional = %v, want %v", tt.key, positional, tt.positional)
			continue
		}
		if positional && index != tt.index {
			t.Errorf("columnLetterIndex(%q) = %d, want %d", tt.key, index, tt.index)
		}
	}
}
