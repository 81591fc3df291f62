package pong

import (
	"math"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
)

// Ticks between CPU skill increases, and the increase.
const (
	cpuSkillInterval = 600
	cpuSkillStep     = 0.02
)

// CPU produces input for one paddle by tracking the ball with imperfect
// reactions.
type CPU struct {
	Player core.PlayerID

	skill    float64 // 0-1, 1 = perfect
	maxSkill float64
	ticks    int
}

// NewCPU creates a CPU driver for player p.
func NewCPU(p core.PlayerID, cfg config.PongCPU) *CPU {
	return &CPU{Player: p, skill: cfg.MinSkill, maxSkill: cfg.MaxSkill}
}

// Skill returns the current reaction skill.
func (c *CPU) Skill() float64 { return c.skill }

// Decide returns this tick's input for the CPU paddle.
func (c *CPU) Decide(g *Game) core.InputFrame {
	in := core.NewInputFrame()

	c.ticks++
	if c.ticks%cpuSkillInterval == 0 && c.skill < c.maxSkill {
		c.skill = min(c.skill+cpuSkillStep, c.maxSkill)
	}

	idx := c.Player.Index()
	paddle := g.PaddleState(idx)
	center := paddle.Position.X() + paddle.Width*0.5

	target := 0.0
	ball, ok := g.BallState()
	approaching := false
	if ok {
		vy := ball.Velocity.Y()
		approaching = (idx == 0 && vy > 0) || (idx == 1 && vy < 0)
		if approaching {
			target = ball.Position.X() + ball.Width*0.5
		}
	}

	// A less skilled CPU settles for a wider part of its paddle.
	deadZone := paddle.Width * 0.5 * (1 - c.skill)
	diff := target - center
	if math.Abs(diff) > deadZone {
		if diff > 0 {
			in.Set(core.ActionRight)
		} else {
			in.Set(core.ActionLeft)
		}
	}

	// Spend power-ups while the ball heads to the opponent.
	if ok && !approaching && g.rally == RallyInPlay && len(g.granted[idx]) > 0 {
		in.Set(core.ActionPowerUp)
	}
	return in
}
