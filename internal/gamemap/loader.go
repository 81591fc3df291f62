package gamemap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML form of a map.
type File struct {
	Name      string     `yaml:"name"`
	Border    *bool      `yaml:"border,omitempty"` // default true
	SafeWalls []WallSpec `yaml:"safe_walls"`
	TrapWalls []WallSpec `yaml:"trap_walls,omitempty"`
}

// Parse decodes a YAML map. Unnamed maps take fallbackName.
func Parse(data []byte, fallbackName string) (*Map, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	name := f.Name
	if name == "" {
		name = fallbackName
	}
	m := New(name, f.SafeWalls, f.TrapWalls)
	if f.Border == nil || *f.Border {
		m.AddBorderWalls()
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFile loads a single map file.
func LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := Parse(data, base)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return m, nil
}

// Loader loads every map file below a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new map loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans Root, skipping files that fail to parse.
// Maps are sorted by name.
func (l *Loader) LoadAll() ([]*Map, error) {
	var maps []*Map

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isMapFile(path) {
			return nil
		}

		m, err := LoadFile(path)
		if err != nil {
			return nil
		}
		maps = append(maps, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(maps, func(i, j int) bool {
		return maps[i].Name < maps[j].Name
	})
	return maps, nil
}

// LoadByName finds a map by name below Root.
func (l *Loader) LoadByName(name string) (*Map, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, m := range maps {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("map not found: %s", name)
}

// Resolve picks a map for the CLI: an explicit file wins, then a preset.
func Resolve(preset, file string) (*Map, error) {
	if file != "" {
		return LoadFile(file)
	}
	if preset == "" {
		preset = DefaultPreset
	}
	return Preset(preset)
}

func isMapFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
