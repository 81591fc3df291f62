package pong

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-pong/internal/gamemap"
	"github.com/vovakirdan/tui-pong/internal/physics"
)

// RallyState tracks the ball between points.
type RallyState uint8

const (
	RallyIdle      RallyState = iota // no ball on the field
	RallyPreparing                   // ball at the center, waiting to launch
	RallyInPlay
)

func (s RallyState) String() string {
	switch s {
	case RallyIdle:
		return "idle"
	case RallyPreparing:
		return "preparing"
	case RallyInPlay:
		return "in-play"
	default:
		return fmt.Sprintf("RallyState(%d)", uint8(s))
	}
}

// Rally returns the current rally state.
func (g *Game) Rally() RallyState { return g.rally }

// ServeBall places a ball at the center and launches it after the prepare
// delay. It does nothing unless the field is empty and the match running.
func (g *Game) ServeBall() bool {
	if g.rally != RallyIdle || g.gameOver {
		return false
	}
	g.addBall()
	g.rally = RallyPreparing
	g.launchAt = g.world.Elapsed() + g.cfg.Ball.PrepareDelay
	g.logger.Debug("ball prepared", "launch_at", g.launchAt)
	if g.cfg.Ball.PrepareDelay <= 0 {
		g.launch()
	}
	return true
}

// ResetBall replaces a stuck ball with a fresh serve.
func (g *Game) ResetBall() bool {
	if !g.stuck || g.ball.IsZero() {
		return false
	}
	g.setStuck(false)
	g.stuckCount = 0
	g.removeBall()
	g.rally = RallyIdle
	return g.ServeBall()
}

// updateRally launches a prepared ball once its delay has passed.
func (g *Game) updateRally() {
	if g.rally != RallyPreparing {
		return
	}
	if g.world.Elapsed() < g.launchAt-float64(g.world.Tolerance()) {
		return
	}
	g.launch()
}

func (g *Game) launch() {
	v := g.serveVelocity()
	g.world.Patch(g.ball, physics.Patch{}.WithVelocity(v))
	g.rally = RallyInPlay
	g.logger.Debug("ball served", "vx", v.X(), "vy", v.Y())
	g.emit(Event{Kind: EventServe})
}

// serveVelocity picks a random horizontal direction and sends the ball
// toward the side that did not lose the last point.
func (g *Game) serveVelocity() mgl64.Vec2 {
	ratio := (g.cfg.Paddles.SpeedRatio-1)*0.8 + 1
	speed := g.difficulty.Speed(g.cfg.Ball.Speed, g.scores[0]+g.scores[1], g.ticks) * ratio

	sign := 1.0
	if g.rng.Float64() > 0.5 {
		sign = -1
	}
	vx := sign * speed * (1 + (g.rng.Float64()-0.5)*0.5)
	vy := speed
	if g.lastLost == gamemap.SideTop {
		vy = -vy
	}
	return mgl64.Vec2{vx, vy}
}
