// Package loader reads transaction files into loosely-typed records.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader converts a transaction file into records. Elements are usually
// map[string]any; anything else is passed on for the normalizer to reject.
type Loader interface {
	Load(r io.Reader) ([]any, error)
	Format() string
}

// ErrNoDataFile is returned by Find when no file of the requested format exists.
var ErrNoDataFile = errors.New("no data file found")

// ErrUnsupportedFormat is returned for unknown formats or file extensions.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Registry holds named loaders.
type Registry struct {
	loaders map[string]Loader
}

// FileInfo describes a data file found in the data directory.
type FileInfo struct {
	Name   string
	Path   string
	Format string
	Size   int64
}

// NewRegistry creates an empty loader registry.
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]Loader)}
}

// Register adds a loader. Panics on duplicate format.
func (r *Registry) Register(l Loader) {
	key := strings.ToLower(l.Format())
	if _, ok := r.loaders[key]; ok {
		panic("duplicate loader format: " + key)
	}
	r.loaders[key] = l
}

// Get returns the loader for format, or nil.
func (r *Registry) Get(format string) Loader {
	return r.loaders[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.loaders))
	for k := range r.loaders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry with all built-in loaders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&JSONLoader{})
	r.Register(&CSVLoader{})
	r.Register(&XLSXLoader{})
	return r
}

// LoadFile opens path and loads it with the loader matching its extension.
func (r *Registry) LoadFile(path string) ([]any, error) {
	format := FormatOf(path)
	l := r.Get(format)
	if l == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := l.Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// FormatOf returns the lower-cased extension of path without the dot.
func FormatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// preferredNames lists, per format, the file names tried before any other match.
var preferredNames = map[string][]string{
	"json": {"operations.json", "transactions.json", "data.json"},
	"csv":  {"transactions.csv", "operations.csv", "data.csv"},
	"xlsx": {"transaction_excel.xlsx", "transactions.xlsx"},
}

// Find returns the data file to load for format from dataDir: a preferred
// name if present, otherwise the first file with the format's extension.
func Find(dataDir, format string) (FileInfo, error) {
	format = strings.ToLower(format)
	names, ok := preferredNames[format]
	if !ok {
		return FileInfo{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	for _, name := range names {
		path := filepath.Join(dataDir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return FileInfo{Name: name, Path: path, Format: format, Size: info.Size()}, nil
		}
	}

	files, err := Scan(dataDir)
	if err != nil {
		return FileInfo{}, err
	}
	for _, f := range files {
		if f.Format == format {
			return f, nil
		}
	}
	return FileInfo{}, fmt.Errorf("%w: no %s file in %s", ErrNoDataFile, format, dataDir)
}

// Scan returns the supported data files in dataDir, sorted by name.
func Scan(dataDir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading data dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		format := FormatOf(e.Name())
		if _, ok := preferredNames[format]; !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name:   e.Name(),
			Path:   filepath.Join(dataDir, e.Name()),
			Format: format,
			Size:   info.Size(),
		})
	}
	return files, nil
}
