package pong

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/physics"
)

func TestCPUDecide(t *testing.T) {
	tests := []struct {
		name   string
		center mgl64.Vec2
		v      mgl64.Vec2
		want   int
	}{
		{"ball approaching on the right", mgl64.Vec2{30, 0}, mgl64.Vec2{0, -40}, 1},
		{"ball approaching on the left", mgl64.Vec2{-30, 0}, mgl64.Vec2{5, -40}, -1},
		{"ball within reach", mgl64.Vec2{2, 0}, mgl64.Vec2{0, -40}, 0},
		{"ball moving away", mgl64.Vec2{30, 0}, mgl64.Vec2{0, 40}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newGame(t, nil, nil)
			serveAt(t, g, tc.center, tc.v)

			cpu := NewCPU(core.Player2, g.Config().CPU)
			in := cpu.Decide(g)
			if got := in.Horizontal(); got != tc.want {
				t.Errorf("Horizontal() = %d, expected %d", got, tc.want)
			}
			if in.Has(core.ActionPowerUp) {
				t.Error("CPU used a power-up it was never granted")
			}
		})
	}
}

func TestCPUReturnsToCenter(t *testing.T) {
	g := newGame(t, nil, nil)
	g.World().Patch(g.paddles[1], physics.Patch{}.WithPosition(mgl64.Vec2{20, -40.75}))

	cpu := NewCPU(core.Player2, g.Config().CPU)
	if got := cpu.Decide(g).Horizontal(); got != -1 {
		t.Errorf("Horizontal() = %d without a ball, expected a move back to the center", got)
	}
}

func TestCPUUsesPowerUpsOnOffense(t *testing.T) {
	g := newGame(t, withPowerUps, nil)
	g.granted[1] = []PowerUpKind{PaddleSizeDown}
	serveAt(t, g, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 40})

	cpu := NewCPU(core.Player2, g.Config().CPU)
	if !cpu.Decide(g).Has(core.ActionPowerUp) {
		t.Error("CPU kept its power-up while the ball headed to the opponent")
	}
}

func TestCPUSkillGrows(t *testing.T) {
	cfg := config.DefaultPongConfig().CPU
	g := newGame(t, nil, nil)
	cpu := NewCPU(core.Player2, cfg)

	for range 600 {
		cpu.Decide(g)
	}
	if !approx(cpu.Skill(), cfg.MinSkill+0.02) {
		t.Errorf("skill after 600 ticks = %v", cpu.Skill())
	}

	for range 60_000 {
		cpu.Decide(g)
	}
	if cpu.Skill() != cfg.MaxSkill {
		t.Errorf("skill = %v, expected capped at %v", cpu.Skill(), cfg.MaxSkill)
	}
}
