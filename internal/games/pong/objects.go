package pong

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/gamemap"
	"github.com/vovakirdan/tui-pong/internal/physics"
)

// Role says what a physics entity stands for in a match.
type Role uint8

const (
	RoleWall Role = iota
	RolePaddle
	RoleBall
)

// Tag is stored in physics.Entity.Data for every entity the game adds.
type Tag struct {
	Role     Role
	WallType gamemap.WallType // walls only
	Side     gamemap.Side     // trap walls guarding a field end
	Paddle   int              // paddle index, paddles only
}

func tagOf(e physics.Entity) Tag {
	t, _ := e.Data.(Tag)
	return t
}

func isBall(e physics.Entity) bool {
	return e.IsShape(physics.ShapeCircle) && tagOf(e).Role == RoleBall
}

// paddleSide returns the field end a paddle defends. Paddle 0 is on top.
func paddleSide(i int) gamemap.Side {
	if i == 0 {
		return gamemap.SideTop
	}
	return gamemap.SideBottom
}

// playerForSide maps a field end to the player defending it.
func playerForSide(s gamemap.Side) core.PlayerID {
	switch s {
	case gamemap.SideTop:
		return core.Player1
	case gamemap.SideBottom:
		return core.Player2
	default:
		return 0
	}
}

// addWalls registers the map walls grouped by size, in WallSizes order.
func (g *Game) addWalls() {
	g.walls = g.walls[:0]
	for _, size := range g.m.WallSizes() {
		for _, w := range g.m.WallsBySize(size.Width, size.Height) {
			e := physics.NewRect(physics.RectParams{
				Kind:        physics.Immovable,
				CollideType: physics.Static,
				Width:       float64(w.Width),
				Height:      float64(w.Height),
				Center:      w.WorldCenter(),
				Data:        Tag{Role: RoleWall, WallType: w.Type, Side: w.Side()},
			})
			g.walls = append(g.walls, g.world.Add(e)...)
		}
	}
}

func (g *Game) addPaddles() {
	p := g.cfg.Paddles
	for i := range g.paddles {
		y := p.Offset
		if i == 1 {
			y = -p.Offset
		}
		e := physics.NewRect(physics.RectParams{
			Kind:        physics.Movable,
			CollideType: physics.Static,
			Width:       p.Width,
			Height:      p.Height,
			Center:      mgl64.Vec2{0, y},
			Data:        Tag{Role: RolePaddle, Paddle: i},
		})
		g.paddles[i] = g.world.Add(e)[0]
	}
}

func (g *Game) addBall() {
	e := physics.NewCircle(physics.CircleParams{
		Kind:        physics.Movable,
		CollideType: physics.Dynamic,
		Radius:      g.cfg.Ball.Radius,
		Data:        Tag{Role: RoleBall},
	})
	g.ball = g.world.Add(e)[0]
}

func (g *Game) removeBall() {
	if g.ball.IsZero() {
		return
	}
	if err := g.world.Remove(g.ball); err != nil {
		g.logger.Warn("remove ball", "err", err)
	}
	g.ball = physics.Handle{}
}

// mustState panics on handles the game itself lost track of.
func (g *Game) mustState(h physics.Handle) physics.BodyState {
	s, err := g.world.State(h)
	if err != nil {
		panic(err)
	}
	return s
}

// PaddleState returns the state of paddle i (0 top, 1 bottom).
func (g *Game) PaddleState(i int) physics.BodyState {
	return g.mustState(g.paddles[i])
}

// BallState returns the ball state, or false between rallies.
func (g *Game) BallState() (physics.BodyState, bool) {
	if g.ball.IsZero() {
		return physics.BodyState{}, false
	}
	return g.mustState(g.ball), true
}

// World exposes the underlying physics world for inspection.
func (g *Game) World() *physics.World {
	return g.world
}
