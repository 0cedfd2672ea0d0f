package tags

import (
	"fmt"
	"os"
)

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	if info.Size() > MaxCatalogSize {
		return nil, fmt.Errorf("load catalog %s: %w: file is %d bytes", path, ErrInvalidCatalog, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}

	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// LoadCustomData loads every catalog in paths, in order. It stops at the
// first failure.
func LoadCustomData(paths []string) ([]Provider, error) {
	providers := make([]Provider, 0, len(paths))
	for _, path := range paths {
		c, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		providers = append(providers, c)
	}
	return providers, nil
}

// WithCustomData returns the built-in providers followed by the catalogs
// loaded from paths.
func WithCustomData(paths []string) ([]Provider, error) {
	custom, err := LoadCustomData(paths)
	if err != nil {
		return nil, err
	}
	return append(Builtin(), custom...), nil
}
