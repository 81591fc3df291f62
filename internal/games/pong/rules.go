package pong

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/gamemap"
	"github.com/vovakirdan/tui-pong/internal/physics"
)

// Share of the paddle velocity carried into the ball on a hit.
const paddleSpin = 0.1

// contact is a resolved collision seen from the ball's side.
type contact struct {
	ball  physics.Entity
	other physics.Entity
}

// applyRules runs the collision rules over every contact of the last
// sub-step, in the order the world reported them.
func (g *Game) applyRules(events []physics.CollisionEvent) {
	for _, ev := range events {
		a, okA := g.world.Lookup(ev.Collider)
		b, okB := g.world.Lookup(ev.Collidee)
		if !okA || !okB {
			// An earlier rule removed one side.
			continue
		}
		if !a.IsShape(physics.ShapeCircle) && !b.IsShape(physics.ShapeCircle) {
			continue
		}

		c := contact{ball: a, other: b}
		if !isBall(a) {
			c = contact{ball: b, other: a}
		}

		g.hitCue(ev.SimTime)
		g.paddleHit(c)
		g.safeWallHit(c)
		g.trapWallHit(c)
	}
}

func (g *Game) hitCue(simTime float64) {
	if simTime-g.lastCue < g.cfg.Gameplay.HitCueInterval {
		return
	}
	g.lastCue = simTime
	g.emit(Event{Kind: EventHitCue})
}

// paddleHit keeps the returned ball inside the speed band and adds spin.
func (g *Game) paddleHit(c contact) {
	tag := tagOf(c.other)
	if tag.Role != RolePaddle {
		return
	}
	if g.stuck {
		g.setStuck(false)
	}
	g.stuckCount = 0

	ratio := g.cfg.Paddles.SpeedRatio
	lo, hi := g.cfg.Ball.MinSpeed*ratio, g.cfg.Ball.MaxSpeed*ratio

	// The ball copy may be stale if another rule already patched it.
	ball, ok := g.world.Lookup(c.ball.Handle())
	if !ok {
		return
	}
	vx := ball.Velocity.X()
	sign := 1.0
	if vx < 0 {
		sign = -1
	}
	vx = sign*mgl64.Clamp(math.Abs(vx), lo, hi) + c.other.Velocity.X()*paddleSpin
	g.world.Patch(ball.Handle(), physics.Patch{}.WithVelocity(mgl64.Vec2{vx, ball.Velocity.Y()}))

	g.hitEffect[tag.Paddle] = 1
	g.emit(Event{Kind: EventPaddleHit, Player: core.PlayerByIndex(tag.Paddle)})
}

// safeWallHit counts wall bounces since the last paddle touch; a ball that
// never reaches a paddle is stuck.
func (g *Game) safeWallHit(c contact) {
	tag := tagOf(c.other)
	if tag.Role != RoleWall || tag.WallType != gamemap.WallSafe {
		return
	}
	g.stuckCount++
	if g.stuckCount > g.cfg.Gameplay.SafeWallStuckThreshold && !g.stuck {
		g.setStuck(true)
	}
}

func (g *Game) trapWallHit(c contact) {
	tag := tagOf(c.other)
	if tag.Role != RoleWall || tag.WallType != gamemap.WallTrap {
		return
	}
	g.loseRally(tag.Side)
}

func (g *Game) setStuck(stuck bool) {
	g.stuck = stuck
	g.logger.Debug("ball stuck", "stuck", stuck)
	g.emit(Event{Kind: EventStuck, Stuck: stuck})
}

// Stuck reports whether the ball has bounced between safe walls for too long.
func (g *Game) Stuck() bool { return g.stuck }

// loseRally ends the rally lost at side. A trap wall that guards no side
// removes the ball without a point.
func (g *Game) loseRally(lost gamemap.Side) {
	if g.stuck {
		g.setStuck(false)
	}
	g.stuckCount = 0
	g.removeBall()
	g.rally = RallyIdle

	if lost == gamemap.SideNone {
		g.logger.Debug("ball out without a point")
		g.emit(Event{Kind: EventBallOut})
		g.afterRally()
		return
	}

	g.lastLost = lost
	winner := playerForSide(lost.Opposite())
	g.scores[winner.Index()]++
	g.logger.Info("point", "winner", winner, "score1", g.scores[0], "score2", g.scores[1])
	g.emit(Event{Kind: EventScore, Player: winner, Lost: lost, Score1: g.scores[0], Score2: g.scores[1]})

	if g.scores[winner.Index()] >= g.cfg.Gameplay.WinScore {
		g.endMatch(winner)
		return
	}
	g.afterRally()
}

func (g *Game) afterRally() {
	if g.cfg.Gameplay.AutoServe {
		g.ServeBall()
	}
}

func (g *Game) endMatch(winner core.PlayerID) {
	g.gameOver = true
	g.winner = winner
	g.revokePowerUp()
	g.logger.Info("match over", "winner", winner, "score1", g.scores[0], "score2", g.scores[1])
	g.emit(Event{Kind: EventMatchOver, Player: winner, Score1: g.scores[0], Score2: g.scores[1]})
}
