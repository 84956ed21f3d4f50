package models

import "time"

// Canonical field names the row mapper can produce. Master lists use all of
// them, brand lists only FieldSKU and FieldMAPPrice.
const (
	FieldSKU          = "sku"
	FieldProductName  = "productName"
	FieldBrand        = "brand"
	FieldRicsRetail   = "ricsRetail"
	FieldRicsOffer    = "ricsOffer"
	FieldWebPrice     = "webPrice"
	FieldWebSalePrice = "webSalePrice"
	FieldMAPPrice     = "mapPrice"
)

// DataSource describes one published price list: where to fetch it, the
// 1-based line its header sits on, and how its columns map onto canonical
// fields. ColumnMappings keys are either header names or column letters
// ("A" = first column); values are canonical field names.
type DataSource struct {
	ID             int               `db:"id" json:"id"`
	Name           string            `db:"name" json:"name"`
	SheetURL       string            `db:"sheet_url" json:"sheet_url"`
	HeaderRow      int               `db:"header_row" json:"header_row"`
	IsMaster       bool              `db:"is_master" json:"is_master"`
	Position       int               `db:"position" json:"position"`
	ColumnMappings map[string]string `db:"-" json:"column_mappings"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at" json:"updated_at"`
}

// RawRow is one parsed line of a tabular source: an ordered list of cells
// plus the headers they were read under. Lookups by header return the first
// matching column; positional lookups index the cell order directly.
type RawRow struct {
	headers []string
	cells   []string
}

func NewRawRow(headers, cells []string) RawRow {
	return RawRow{headers: headers, cells: cells}
}

// Get returns the cell under the given header name, or "" when the header
// does not exist or the row is too short.
func (r RawRow) Get(header string) string {
	for i, h := range r.headers {
		if h == header {
			return r.At(i)
		}
	}
	return ""
}

// At returns the cell at the given zero-based position, or "" out of range.
func (r RawRow) At(i int) string {
	if i < 0 || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

func (r RawRow) Len() int {
	return len(r.cells)
}

// MasterRow is the canonical, typed record mapped from one master-list row.
// Values are the raw source strings; price conversion happens downstream.
type MasterRow struct {
	SKU          string
	ProductName  string
	Brand        string
	RicsRetail   string
	RicsOffer    string
	WebPrice     string
	WebSalePrice string
}

// BrandRow is the canonical record mapped from one brand price-list row.
type BrandRow struct {
	SKU      string
	MAPPrice string
}

// BrandSourceRows pairs a brand source with its mapped rows, preserving the
// configured source order for last-write-wins consolidation.
type BrandSourceRows struct {
	Source DataSource
	Rows   []BrandRow
}
