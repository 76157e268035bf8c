package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrNoHeader is returned when a CSV file has no header row.
var ErrNoHeader = errors.New("CSV file is empty or has no header")

const csvDelimiter = ';'

// CSVLoader reads semicolon-delimited bank exports with a header row.
type CSVLoader struct{}

// Format returns the loader name.
func (l *CSVLoader) Format() string { return "csv" }

// Load reads all rows. Header keys are trimmed and lower-cased; empty cells
// become nil. Input that is not valid UTF-8 is decoded as Windows-1251.
func (l *CSVLoader) Load(r io.Reader) ([]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if !utf8.Valid(data) {
		data, err = charmap.Windows1251.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decoding windows-1251: %w", err)
		}
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = csvDelimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	rows := make([]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlankRow(rec) {
			continue
		}
		rows = append(rows, unmarshalCSVRow(header, rec))
	}
	return rows, nil
}

func unmarshalCSVRow(header, rec []string) map[string]any {
	row := make(map[string]any, len(header))
	for i, key := range header {
		if i >= len(rec) {
			row[key] = nil
			continue
		}
		v := strings.TrimSpace(rec[i])
		if v == "" {
			row[key] = nil
			continue
		}
		row[key] = v
	}

	if s, ok := row["state"].(string); ok {
		row["state"] = strings.ToUpper(s)
	}
	if s, ok := row["id"].(string); ok {
		if id, err := strconv.Atoi(strings.SplitN(s, ".", 2)[0]); err == nil {
			row["id"] = id
		}
	}
	return row
}

func isBlankRow(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
