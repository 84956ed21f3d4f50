package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pricecheck-web/internal/models"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// SourceUnavailableError is returned when a configured price list cannot be
// fetched. Any single failed source fails the whole run; partial results
// would silently under-report violations.
type SourceUnavailableError struct {
	Source string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %q unavailable: %v", e.Source, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// SheetService fetches published price lists and parses them into raw rows.
type SheetService struct {
	client *http.Client
}

func NewSheetService(timeout time.Duration) *SheetService {
	return &SheetService{
		client: &http.Client{Timeout: timeout},
	}
}

// FetchRows downloads one source and parses it using the source's configured
// header row. Failures are wrapped as SourceUnavailableError naming the
// source.
func (s *SheetService) FetchRows(ctx context.Context, src models.DataSource) ([]models.RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.SheetURL, nil)
	if err != nil {
		return nil, &SourceUnavailableError{Source: src.Name, Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &SourceUnavailableError{Source: src.Name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SourceUnavailableError{Source: src.Name, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SourceUnavailableError{Source: src.Name, Err: err}
	}

	rows, err := ParseCSVRows(body, src.HeaderRow)
	if err != nil {
		return nil, &SourceUnavailableError{Source: src.Name, Err: err}
	}
	return rows, nil
}

// ParseCSVRows parses CSV text into raw rows. headerRow is the 1-based line
// the header sits on; earlier lines are discarded. Rows shorter or longer
// than the header are tolerated: short rows read as empty in the missing
// columns, extra cells stay addressable by position.
func ParseCSVRows(data []byte, headerRow int) ([]models.RawRow, error) {
	data = bytes.TrimPrefix(data, byteOrderMark)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if headerRow < 1 {
		headerRow = 1
	}

	// Discard everything above the header line.
	for i := 1; i < headerRow; i++ {
		if _, err := reader.Read(); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("header row %d is past the end of the data", headerRow)
			}
			return nil, fmt.Errorf("failed to skip to header row: %w", err)
		}
	}

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("header row %d is past the end of the data", headerRow)
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var rows []models.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		rows = append(rows, models.NewRawRow(headers, record))
	}

	return rows, nil
}
