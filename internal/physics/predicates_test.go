package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCircleVsRect(t *testing.T) {
	// 10x10 box spanning [0, 10] on both axes.
	box := NewRect(RectParams{Width: 10, Height: 10, Center: mgl64.Vec2{5, 5}})

	tests := []struct {
		name     string
		center   mgl64.Vec2
		expected bool
	}{
		{"inside", mgl64.Vec2{5, 5}, true},
		{"overlapping left edge", mgl64.Vec2{-0.5, 5}, true},
		{"tangent to left edge", mgl64.Vec2{-1, 5}, false},
		{"clear of top edge", mgl64.Vec2{5, 11.5}, false},
		{"overlapping top edge", mgl64.Vec2{5, 10.9}, true},
		{"near corner miss", mgl64.Vec2{10.8, 10.8}, false},
		{"corner hit", mgl64.Vec2{10.6, 10.6}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCircle(CircleParams{Radius: 1, Center: tt.center})
			if got := CircleVsRect(c, box); got != tt.expected {
				t.Errorf("CircleVsRect() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestRectVsRect(t *testing.T) {
	rect := func(cx, cy, w, h float64) Entity {
		return NewRect(RectParams{Width: w, Height: h, Center: mgl64.Vec2{cx, cy}})
	}
	base := rect(0, 0, 4, 4)

	tests := []struct {
		name     string
		other    Entity
		expected bool
	}{
		{"overlapping", rect(3, 3, 4, 4), true},
		{"contained", rect(0, 0, 1, 1), true},
		{"identical", rect(0, 0, 4, 4), true},
		{"touching right edge", rect(4, 0, 4, 4), false},
		{"touching left edge", rect(-4, 0, 4, 4), false},
		{"touching top edge", rect(0, 4, 4, 4), false},
		{"touching bottom edge", rect(0, -4, 4, 4), false},
		{"separated on x", rect(10, 0, 4, 4), false},
		{"separated on y only", rect(1, -7, 4, 4), false},
		{"overlap on x only", rect(1, 9, 4, 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RectVsRect(base, tt.other); got != tt.expected {
				t.Errorf("RectVsRect(base, other) = %v, expected %v", got, tt.expected)
			}
			if got := RectVsRect(tt.other, base); got != tt.expected {
				t.Errorf("RectVsRect(other, base) = %v, expected %v", got, tt.expected)
			}
		})
	}
}
