package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/promptcraft/internal/domain"
	"gopkg.in/yaml.v3"
)

// CheckFile validates the catalog file at path as if it were added to c.
func CheckFile(c *Catalog, path string) ([]domain.Category, error) {
	cats, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, fmt.Errorf("%w: %s defines no categories", domain.ErrDataIntegrity, path)
	}
	if errs := Validate(append(c.all(), cats...)); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataIntegrity, errors.Join(errs...))
	}
	return cats, nil
}

// ImportFile validates the catalog file at src against c and copies it into
// dir. Returns the destination path.
func ImportFile(c *Catalog, src, dir string) (string, error) {
	if _, err := CheckFile(c, src); err != nil {
		return "", err
	}

	dst := filepath.Join(dir, filepath.Base(src))
	if _, err := os.Stat(dst); err == nil {
		return "", fmt.Errorf("%s already exists", dst)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating catalog directory: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", dst, err)
	}
	return dst, nil
}

// WriteFile validates cats against c and writes them as a YAML catalog file
// named name in dir. Returns the written path.
func WriteFile(c *Catalog, dir, name string, cats []domain.Category) (string, error) {
	if errs := Validate(append(c.all(), cats...)); len(errs) > 0 {
		return "", fmt.Errorf("%w: %w", domain.ErrDataIntegrity, errors.Join(errs...))
	}

	data, err := yaml.Marshal(File{Categories: cats})
	if err != nil {
		return "", fmt.Errorf("encoding catalog: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating catalog directory: %w", err)
	}
	path := filepath.Join(dir, name+".yaml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// RemoveCategory deletes the file that defines the custom category id.
// Every category in that file goes with it. Returns the removed path.
func RemoveCategory(c *Catalog, id string) (string, error) {
	cat, err := c.Category(id)
	if err != nil {
		return "", err
	}
	if !cat.IsCustom() {
		return "", fmt.Errorf("category %q is built in: %w", id, domain.ErrInvalidOperation)
	}
	if err := os.Remove(cat.Source); err != nil {
		return "", fmt.Errorf("removing %s: %w", cat.Source, err)
	}
	return cat.Source, nil
}
