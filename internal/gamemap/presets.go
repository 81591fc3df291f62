package gamemap

import (
	"fmt"
	"sort"
)

// DefaultPreset is the map used when none is chosen.
const DefaultPreset = "empty"

var presets = map[string][]WallSpec{
	"empty": nil,
	"ledges": {
		{CenterX: 20, CenterY: 35, Width: 40, Height: 5},
		{CenterX: 80, CenterY: 65, Width: 40, Height: 5},
	},
	"bars": {
		{CenterX: 50, CenterY: 30, Width: 30, Height: 5},
		{CenterX: 50, CenterY: 70, Width: 30, Height: 5},
	},
	"blocks": {
		{CenterX: 20, CenterY: 35, Width: 30, Height: 20},
		{CenterX: 80, CenterY: 65, Width: 30, Height: 20},
	},
	"pillars": {
		{CenterX: 30, CenterY: 50, Width: 10, Height: 60},
		{CenterX: 70, CenterY: 50, Width: 10, Height: 60},
	},
}

// Preset builds a bordered preset map by name.
func Preset(name string) (*Map, error) {
	safe, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("gamemap: unknown preset %q", name)
	}
	m := New(name, safe, nil)
	m.AddBorderWalls()
	return m, nil
}

// PresetNames lists preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
