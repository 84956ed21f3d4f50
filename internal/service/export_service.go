package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"pricecheck-web/internal/models"

	"github.com/xuri/excelize/v2"
)

// Export format names accepted by the export endpoint.
const (
	ExportDefault        = "default"
	ExportRICS           = "rics"
	ExportWebPriceUpdate = "web"
)

// ExportService projects a filtered result set into the named output
// schemas.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// BuildCSV renders the given export format over the supplied (already
// filtered) product set.
func (s *ExportService) BuildCSV(products []models.EvaluatedProduct, format string) ([]byte, error) {
	switch format {
	case ExportDefault:
		return writeCSV(defaultRows(products))
	case ExportRICS:
		return writeCSV(ricsRows(products))
	case ExportWebPriceUpdate:
		return writeCSV(webPriceUpdateRows(products))
	default:
		return nil, fmt.Errorf("unknown export format: %s", format)
	}
}

func defaultRows(products []models.EvaluatedProduct) [][]string {
	rows := [][]string{{"SKU", "Product Name", "Brand", "Status", "MAP Price (Cents)", "Violating Price (Cents)"}}
	for _, p := range products {
		rows = append(rows, []string{
			p.SKU,
			p.ProductName,
			p.Brand,
			p.Status,
			centsString(p.MAPPrice),
			centsString(p.ViolatingPrice),
		})
	}
	return rows
}

func ricsRows(products []models.EvaluatedProduct) [][]string {
	rows := [][]string{{"SKU", "MAP Price"}}
	for _, p := range products {
		rows = append(rows, []string{p.SKU, p.MAPPrice.Decimal()})
	}
	return rows
}

// webPriceUpdateRows keeps only products with a present, positive MAP price.
// An exact-dollar MAP drops one cent so the advertised price never lands on
// a round dollar; both the price and sale price columns carry the same
// value.
func webPriceUpdateRows(products []models.EvaluatedProduct) [][]string {
	rows := [][]string{{"SKU", "Price", "Sale Price"}}
	for _, p := range products {
		if !p.MAPPrice.Valid || p.MAPPrice.Value <= 0 {
			continue
		}
		adjusted := p.MAPPrice.Value
		if adjusted%100 == 0 {
			adjusted--
		}
		price := models.NewCents(adjusted).Decimal()
		rows = append(rows, []string{p.SKU, price, price})
	}
	return rows
}

func centsString(c models.Cents) string {
	if !c.Valid {
		return ""
	}
	return strconv.FormatInt(c.Value, 10)
}

// sanitizeCell defuses spreadsheet formula injection: a value starting with
// '=', '+', '-' or '@' gets a leading quote so it is read as text.
func sanitizeCell(value string) string {
	if strings.HasPrefix(value, "=") || strings.HasPrefix(value, "+") ||
		strings.HasPrefix(value, "-") || strings.HasPrefix(value, "@") {
		return "'" + value
	}
	return value
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		sanitized := make([]string, len(row))
		for i, cell := range row {
			sanitized[i] = sanitizeCell(cell)
		}
		if err := w.Write(sanitized); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportResultsExcel writes the default projection to an xlsx file.
func (s *ExportService) ExportResultsExcel(products []models.EvaluatedProduct, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Price Check Results"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	headers := []string{"SKU", "Product Name", "Brand", "Status", "MAP Price", "Violating Price", "Violating Source"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", columnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", columnName(len(headers)-1)), headerStyle)

	violationStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F8D7DA"}, Pattern: 1},
	})

	for rowIdx, p := range products {
		row := rowIdx + 2
		values := []interface{}{
			sanitizeCell(p.SKU),
			sanitizeCell(p.ProductName),
			sanitizeCell(p.Brand),
			p.Status,
			p.MAPPrice.Decimal(),
			p.ViolatingPrice.Decimal(),
			p.ViolatingSource,
		}
		for colIdx, value := range values {
			cell := fmt.Sprintf("%s%d", columnName(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}
		if p.Status == models.StatusViolation {
			statusCell := fmt.Sprintf("D%d", row)
			f.SetCellStyle(sheetName, statusCell, statusCell, violationStyle)
		}
	}

	columnWidths := []float64{18, 35, 20, 14, 14, 16, 16}
	for i, width := range columnWidths {
		col := columnName(i)
		f.SetColWidth(sheetName, col, col, width)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(outputPath)
}

func columnName(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
	}
	return result
}
