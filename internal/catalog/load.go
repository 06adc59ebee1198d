package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a catalog from a .json, .yaml or .yml file. Teams default to
// DefaultTeams when the file does not list any.
func LoadFile(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var c Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(raw, &c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &c)
	default:
		return Catalog{}, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("decode catalog %s: %w", path, err)
	}

	if len(c.Teams) == 0 {
		c.Teams = make([]Team, len(DefaultTeams))
		copy(c.Teams, DefaultTeams)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// SaveFile writes c as JSON or YAML, chosen by the file extension.
func SaveFile(path string, c Catalog) error {
	var (
		raw []byte
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		raw, err = json.MarshalIndent(c, "", "  ")
	case ".yaml", ".yml":
		raw, err = yaml.Marshal(c)
	default:
		return fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return os.WriteFile(path, raw, 0o644)
}
