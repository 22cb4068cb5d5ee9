package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vbonduro/trailplan/internal/domain"
)

// Fixture base names inside the data directory.
const (
	MountainsFile = "mountains"
	EquipmentFile = "equipment"
	TemplatesFile = "equipment-templates"
	PlansFile     = "plans"
)

var extensions = []string{".json", ".yaml", ".yml"}

// Load reads the four fixture files from dir. Each file may be JSON or YAML;
// a missing file is an empty list.
func Load(dir string) (*Catalog, error) {
	var (
		mountains []domain.Mountain
		equipment []domain.EquipmentItem
		templates []domain.EquipmentTemplate
		plans     []domain.Plan
	)
	if err := readFixture(dir, MountainsFile, &mountains); err != nil {
		return nil, err
	}
	if err := readFixture(dir, EquipmentFile, &equipment); err != nil {
		return nil, err
	}
	if err := readFixture(dir, TemplatesFile, &templates); err != nil {
		return nil, err
	}
	if err := readFixture(dir, PlansFile, &plans); err != nil {
		return nil, err
	}

	c, err := New(mountains, equipment, templates, plans)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog in %s: %w", dir, err)
	}
	return c, nil
}

func readFixture(dir, base string, out any) error {
	for _, ext := range extensions {
		path := filepath.Join(dir, base+ext)
		b, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if ext != ".json" {
			if b, err = yamlToJSON(b); err != nil {
				return fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
		if err := json.Unmarshal(b, out); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return nil
	}
	return nil
}

// yamlToJSON lets YAML fixtures share the JSON decoding of the domain types,
// including the enum labels and the legacy "required" flag.
func yamlToJSON(b []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// IsFixture reports whether path names one of the fixture files.
func IsFixture(path string) bool {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	switch name[:len(name)-len(ext)] {
	case MountainsFile, EquipmentFile, TemplatesFile, PlansFile:
	default:
		return false
	}
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
