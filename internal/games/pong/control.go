package pong

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/gamemap"
	"github.com/vovakirdan/tui-pong/internal/physics"
)

const (
	// Paddles pushed outside the field are put back this far inside it.
	paddleReentry = 45.0
	// Ball min-corner height beyond which a side has lost.
	envelope = 48.0
)

// controlPaddles turns each player's horizontal intent into paddle velocity.
func (g *Game) controlPaddles(in core.MultiInputFrame) {
	for i := range g.paddles {
		dir := in.Player(core.PlayerByIndex(i)).Horizontal()
		g.controlPaddle(i, dir)
	}
}

func (g *Game) controlPaddle(i, dir int) {
	p := g.cfg.Paddles
	ratio := p.SpeedRatio
	accel := p.Accel * ratio
	// Release damping is never weaker than the configured ratio, or a fast
	// paddle would speed up on its own.
	decel := p.DecelRatio * min(ratio, 1)

	boost, boosted := g.speedBoost(i)
	tol := g.world.Tolerance()

	g.world.SetState(g.paddles[i], func(k physics.Kinematics) physics.Patch {
		vx := k.Velocity.X()
		if boosted {
			vx = boost.status.Velocity.X()
			switch boost.Kind {
			case PaddleSpeedUp:
				accel *= 2
				decel *= 2
			case PaddleSpeedDown:
				accel *= 0.5
				decel *= 0.5
			}
		}

		if dir == 0 {
			if tol.IsZero(vx) {
				vx = 0
			} else {
				vx *= decel
			}
		} else {
			vx += accel * float64(dir)
			if !boosted {
				limit := p.MaxSpeed * ratio
				vx = mgl64.Clamp(vx, -limit, limit)
			}
		}
		return physics.Patch{}.WithVelocity(mgl64.Vec2{vx, k.Velocity.Y()})
	})
}

// capturePaddles returns paddles that escaped the field.
func (g *Game) capturePaddles() {
	for _, h := range g.paddles {
		s := g.mustState(h)
		x := s.Position.X()
		switch {
		case x < -gamemap.HalfSize:
			x = -paddleReentry
		case x+s.Width > gamemap.HalfSize:
			x = paddleReentry - s.Width
		default:
			continue
		}
		g.world.Patch(h, physics.Patch{}.WithPosition(mgl64.Vec2{x, s.Position.Y()}))
	}
}

// captureBall ends the rally when the ball left the field without touching
// a trap wall.
func (g *Game) captureBall() {
	if g.ball.IsZero() {
		return
	}
	s := g.mustState(g.ball)
	y := s.Position.Y()
	switch {
	case y <= -envelope:
		g.loseRally(gamemap.SideBottom)
	case y > envelope:
		g.loseRally(gamemap.SideTop)
	}
}
