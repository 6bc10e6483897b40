package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexanderramin/promptcraft/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.json
var builtinData []byte

// Builtin parses the embedded catalog.
func Builtin() ([]domain.Category, error) {
	f, err := decode(builtinData, ".json")
	if err != nil {
		return nil, fmt.Errorf("parsing built-in catalog: %w", err)
	}
	return f.Categories, nil
}

// Load reads the built-in catalog plus every catalog file in dir and
// validates the result. A missing dir is not an error.
func Load(dir string) (*Catalog, error) {
	categories, err := Builtin()
	if err != nil {
		return nil, err
	}

	custom, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}

	return New(append(categories, custom...))
}

// LoadDir reads every .json, .yaml and .yml file in dir in name order.
func LoadDir(dir string) ([]domain.Category, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading catalog directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var categories []domain.Category
	for _, e := range entries {
		if e.IsDir() || !isCatalogFile(e.Name()) {
			continue
		}
		cats, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		categories = append(categories, cats...)
	}
	return categories, nil
}

// LoadFile parses a single catalog file. Categories are tagged with the
// file path so they can be told apart from built-ins.
func LoadFile(path string) ([]domain.Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", domain.ErrDataIntegrity, path, err)
	}
	for i := range f.Categories {
		f.Categories[i].Source = path
	}
	return f.Categories, nil
}

func isCatalogFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// decode parses catalog data, rejecting unknown fields so typos in
// hand-written files surface at load time.
func decode(data []byte, ext string) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	return &f, nil
}
