package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Generates sample master and brand price lists for local testing. Serve the
// output directory with any static file server and point the data source
// URLs at it.
func main() {
	outputDir := "testdata"
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		return
	}

	master := [][]string{
		{"sku", "description", "brand", "RicsRetailPrice", "Ricsofferprice", "Scom Price", "Scom Sale Price"},
		{"NK-AF1-001", "Air Force 1 '07", "Nike / Jordan", "$110.00", "99.99", "110.00", ""},
		{"NK-DUNK-002", "Dunk Low Retro", "Nike / Jordan", "115.00", "", "115.00", "89.99"},
		{"AD-SMITH-001", "Stan Smith", "Adidas", "100.00", "", "", ""},
		{"AD-GAZ-002", "Gazelle", "Adidas", "120.00", "109.99", "120.00", "120.00"},
		{"NB-990-001", "990v6 Made in USA", "New Balance", "199.99", "", "199.99", ""},
		{"PM-SUEDE-001", "Suede Classic XXI", "Puma", "75.00", "59.99", "75.00", ""},
		{"VN-OLD-001", "Old Skool", "Vans", "70.00", "", "70.00", ""},
		{"XX-NOMAP-001", "Unmapped Sample Runner", "", "80.00", "", "", ""},
	}

	nike := [][]string{
		{"Nike / Jordan MAP List", ""},
		{"SKU", "MAP Price"},
		{"NK-AF1-001", "110.00"},
		{"NK-DUNK-002", "115.00"},
	}

	adidas := [][]string{
		{"Adidas MAP List", ""},
		{"SKU", "MAP"},
		{"AD-SMITH-001", "100.00"},
		{"AD-GAZ-002", "120.00"},
	}

	newBalance := [][]string{
		{"New Balance MAP List", ""},
		{"SKU", "Price"},
		{"NB-990-001", "199.99"},
	}

	files := map[string][][]string{
		"master.csv":      master,
		"nike.csv":        nike,
		"adidas.csv":      adidas,
		"new_balance.csv": newBalance,
	}

	for name, rows := range files {
		if err := writeCSV(filepath.Join(outputDir, name), rows); err != nil {
			fmt.Printf("Error writing %s: %v\n", name, err)
			return
		}
		fmt.Printf("Wrote %s (%d rows)\n", filepath.Join(outputDir, name), len(rows))
	}
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
