package loader

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ErrNoSheetHeader is returned when the active sheet has no header row.
var ErrNoSheetHeader = errors.New("spreadsheet has no header row")

// XLSXLoader reads the active sheet of an Excel workbook; the first row is the header.
type XLSXLoader struct{}

// Format returns the loader name.
func (l *XLSXLoader) Format() string { return "xlsx" }

// Load reads every non-blank row of the active sheet.
func (l *XLSXLoader) Load(r io.Reader) ([]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 || isBlankRow(rows[0]) {
		return nil, ErrNoSheetHeader
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		header[i] = h
	}

	out := make([]any, 0, len(rows)-1)
	for _, rec := range rows[1:] {
		if isBlankRow(rec) {
			continue
		}
		out = append(out, unmarshalSheetRow(header, rec))
	}
	return out, nil
}

func unmarshalSheetRow(header, rec []string) map[string]any {
	row := make(map[string]any, len(header))
	for i, key := range header {
		if i >= len(rec) || strings.TrimSpace(rec[i]) == "" {
			row[key] = nil
			continue
		}
		row[key] = strings.TrimSpace(rec[i])
	}

	if s, ok := row["id"].(string); ok {
		if id, err := strconv.Atoi(s); err == nil {
			row["id"] = id
		}
	}
	if s, ok := row["amount"].(string); ok && strings.Contains(s, ",") {
		if d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ".")); err == nil {
			row["amount"] = d.String()
		}
	}
	return row
}
