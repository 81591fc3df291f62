// Package gamemap describes playing fields: SAFE walls that bounce the ball
// and TRAP walls that end a rally. Wall geometry lives on a 0-100 grid with
// y pointing up; WorldCenter converts it to world units centered on the
// origin.
package gamemap

import (
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Grid and world dimensions.
const (
	Size     = 100.0
	HalfSize = Size / 2
)

// WallType tells the rules layer how a contact with the wall is treated.
type WallType string

const (
	WallSafe WallType = "SAFE"
	WallTrap WallType = "TRAP"
)

// Valid reports whether t is a known wall type.
func (t WallType) Valid() bool {
	return t == WallSafe || t == WallTrap
}

// Side names the end of the field a trap wall guards.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "TOP"
	case SideBottom:
		return "BOTTOM"
	default:
		return "NONE"
	}
}

// Opposite returns the other end of the field. SideNone has no opposite.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	default:
		return SideNone
	}
}

// WallSpec is a wall as written by hand or in a map file.
type WallSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`
}

// Wall is a normalized wall. Sizes are whole grid units in [0, 100].
type Wall struct {
	Type    WallType
	Width   int
	Height  int
	CenterX float64
	CenterY float64
}

// WorldCenter converts the grid center to world coordinates.
func (w Wall) WorldCenter() mgl64.Vec2 {
	return mgl64.Vec2{ToWorld(w.CenterX), ToWorld(w.CenterY)}
}

// Side returns the field end a trap wall guards. Only trap walls spanning
// the horizontal center have one.
func (w Wall) Side() Side {
	if w.Type != WallTrap || w.CenterX != HalfSize {
		return SideNone
	}
	if w.CenterY > HalfSize {
		return SideTop
	}
	return SideBottom
}

// ToWorld maps a grid coordinate in [0, 100] to world units in [-50, 50].
func ToWorld(c float64) float64 {
	return (c*0.01 - 0.5) * Size
}

// WallSize is a width/height pair used to group walls.
type WallSize struct {
	Width  int
	Height int
}

func sizeKey(width, height int) int {
	return width*1000 + height
}

func keySize(key int) WallSize {
	return WallSize{Width: key / 1000, Height: key % 1000}
}

// Map is an ordered collection of walls indexed by type and by size.
type Map struct {
	Name string

	walls  []Wall
	byType map[WallType][]int
	bySize map[int][]int
}

// New creates a map holding the given safe walls followed by the trap walls.
func New(name string, safe, trap []WallSpec) *Map {
	m := &Map{
		Name:   name,
		byType: map[WallType][]int{WallSafe: nil, WallTrap: nil},
		bySize: make(map[int][]int),
	}
	m.AddWalls(WallSafe, safe...)
	m.AddWalls(WallTrap, trap...)
	return m
}

// AddWalls appends walls of one type. Sizes are clamped to [0, 100] and
// truncated to whole units; centers are kept as given.
func (m *Map) AddWalls(t WallType, specs ...WallSpec) {
	for _, s := range specs {
		w := Wall{
			Type:    t,
			Width:   int(math.Trunc(mgl64.Clamp(s.Width, 0, Size))),
			Height:  int(math.Trunc(mgl64.Clamp(s.Height, 0, Size))),
			CenterX: s.CenterX,
			CenterY: s.CenterY,
		}
		m.walls = append(m.walls, w)
		idx := len(m.walls) - 1
		m.byType[t] = append(m.byType[t], idx)
		key := sizeKey(w.Width, w.Height)
		m.bySize[key] = append(m.bySize[key], idx)
	}
}

// AddBorderWalls closes the field: SAFE walls on the left and right edges,
// TRAP walls behind each paddle.
func (m *Map) AddBorderWalls() {
	m.AddWalls(WallSafe,
		WallSpec{Width: 2, Height: Size, CenterX: 1, CenterY: HalfSize},
		WallSpec{Width: 2, Height: Size, CenterX: 99, CenterY: HalfSize},
	)
	m.AddWalls(WallTrap,
		WallSpec{Width: Size, Height: 2, CenterX: HalfSize, CenterY: 1},
		WallSpec{Width: Size, Height: 2, CenterX: HalfSize, CenterY: 99},
	)
}

func (m *Map) pick(indexes []int) []Wall {
	walls := make([]Wall, len(indexes))
	for i, idx := range indexes {
		walls[i] = m.walls[idx]
	}
	return walls
}

// WallsByType returns the walls of one type in insertion order.
func (m *Map) WallsByType(t WallType) []Wall {
	return m.pick(m.byType[t])
}

// WallsBySize returns the walls with the given size in insertion order.
func (m *Map) WallsBySize(width, height int) []Wall {
	return m.pick(m.bySize[sizeKey(width, height)])
}

// WallSizes lists the distinct wall sizes ordered by width, then height.
func (m *Map) WallSizes() []WallSize {
	keys := make([]int, 0, len(m.bySize))
	for k := range m.bySize {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	sizes := make([]WallSize, len(keys))
	for i, k := range keys {
		sizes[i] = keySize(k)
	}
	return sizes
}

// AllWalls returns a copy of every wall in insertion order.
func (m *Map) AllWalls() []Wall {
	return slices.Clone(m.walls)
}

// Len returns the number of walls.
func (m *Map) Len() int {
	return len(m.walls)
}

// Validate rejects walls that cannot be simulated.
func (m *Map) Validate() error {
	for i, w := range m.walls {
		if w.Width == 0 || w.Height == 0 {
			return fmt.Errorf("map %q: wall %d has zero size", m.Name, i)
		}
		if !w.Type.Valid() {
			return fmt.Errorf("map %q: wall %d has unknown type %q", m.Name, i, w.Type)
		}
	}
	return nil
}
