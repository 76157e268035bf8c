package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotArray is returned when a JSON document is not a top-level array.
var ErrNotArray = errors.New("JSON data must be an array")

// JSONLoader reads a JSON array of operation objects.
type JSONLoader struct{}

// Format returns the loader name.
func (l *JSONLoader) Format() string { return "json" }

// Load decodes the array. Numbers are kept as json.Number.
func (l *JSONLoader) Load(r io.Reader) ([]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding JSON: empty input")
		}
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	records, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%w, got %T", ErrNotArray, doc)
	}
	return records, nil
}
