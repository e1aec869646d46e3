package data

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/frontline/internal/game/zone"
)

// ZoneFile — формат YAML-файла зон одной карты.
type ZoneFile struct {
	Map   string       `yaml:"map"`
	Zones []zone.Model `yaml:"zones"`
}

// LoadZoneFile reads and validates a zone file. Any invalid model fails the
// whole file.
func LoadZoneFile(path string) ([]zone.Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading zone file %s: %w", path, err)
	}
	f, err := ParseZoneFile(raw)
	if err != nil {
		return nil, fmt.Errorf("zone file %s: %w", path, err)
	}

	slog.Info("loaded zone file", "path", path, "map", f.Map, "zones", len(f.Zones))
	return f.Zones, nil
}

// ParseZoneFile decodes and validates zone file contents.
func ParseZoneFile(raw []byte) (ZoneFile, error) {
	var f ZoneFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return f, fmt.Errorf("parsing: %w", err)
	}
	if len(f.Zones) == 0 {
		return f, errors.New("no zones")
	}

	seen := make(map[int]struct{}, len(f.Zones))
	for i := range f.Zones {
		m := &f.Zones[i]
		if err := m.Validate(); err != nil {
			return f, fmt.Errorf("zone #%d: %w", i, err)
		}
		if _, dup := seen[m.ID]; dup {
			return f, fmt.Errorf("zone #%d: %w: %d", i, zone.ErrDuplicateZone, m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	return f, nil
}

// WriteZoneFile writes models as a zone file, replacing path.
func WriteZoneFile(path, mapName string, models []zone.Model) error {
	raw, err := yaml.Marshal(ZoneFile{Map: mapName, Zones: models})
	if err != nil {
		return fmt.Errorf("encoding zone file: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing zone file %s: %w", path, err)
	}
	return nil
}
