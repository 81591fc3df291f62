package pong

import (
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/physics"
)

// Body is the serializable view of one entity. X/Y is the min corner.
type Body struct {
	X  float64 `msgpack:"x"`
	Y  float64 `msgpack:"y"`
	W  float64 `msgpack:"w"`
	H  float64 `msgpack:"h"`
	VX float64 `msgpack:"vx"`
	VY float64 `msgpack:"vy"`
}

// Snapshot is the complete observable state of a match at one tick, with
// plain fields so it encodes the same way everywhere.
type Snapshot struct {
	Tick     uint64        `msgpack:"tick"`
	SimTime  float64       `msgpack:"sim_time"`
	Rally    RallyState    `msgpack:"rally"`
	HasBall  bool          `msgpack:"has_ball"`
	Ball     Body          `msgpack:"ball"`
	Paddles  [2]Body       `msgpack:"paddles"`
	Score1   int           `msgpack:"score1"`
	Score2   int           `msgpack:"score2"`
	Winner   core.PlayerID `msgpack:"winner"`
	GameOver bool          `msgpack:"game_over"`
	Stuck    bool          `msgpack:"stuck"`
	PowerUp  PowerUpKind   `msgpack:"power_up"`
	Granted  [2]int        `msgpack:"granted"`
}

// Snapshot returns the current match state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     g.ticks,
		SimTime:  g.world.Elapsed(),
		Rally:    g.rally,
		Score1:   g.scores[0],
		Score2:   g.scores[1],
		Winner:   g.winner,
		GameOver: g.gameOver,
		Stuck:    g.stuck,
		Granted:  [2]int{len(g.granted[0]), len(g.granted[1])},
	}
	for i := range g.paddles {
		snap.Paddles[i] = body(g.PaddleState(i))
	}
	if ball, ok := g.BallState(); ok {
		snap.HasBall = true
		snap.Ball = body(ball)
	}
	if g.active != nil {
		snap.PowerUp = g.active.Kind
	}
	return snap
}

func body(s physics.BodyState) Body {
	return Body{
		X:  s.Position.X(),
		Y:  s.Position.Y(),
		W:  s.Width,
		H:  s.Height,
		VX: s.Velocity.X(),
		VY: s.Velocity.Y(),
	}
}
