package pong

import (
	"fmt"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/gamemap"
)

// EventKind classifies rules-layer events.
type EventKind uint8

const (
	EventHitCue     EventKind = iota // a ball contact worth a sound or flash
	EventPaddleHit                   // ball returned by a paddle
	EventStuck                       // ball entered or left the stuck state
	EventServe                       // ball launched
	EventScore                       // point awarded
	EventBallOut                     // ball lost through a trap wall guarding no side
	EventMatchOver                   // a player reached the win score
	EventPowerUp                     // power-up applied
	EventPowerUpEnd                  // power-up revoked
)

func (k EventKind) String() string {
	switch k {
	case EventHitCue:
		return "hit-cue"
	case EventPaddleHit:
		return "paddle-hit"
	case EventStuck:
		return "stuck"
	case EventServe:
		return "serve"
	case EventScore:
		return "score"
	case EventBallOut:
		return "ball-out"
	case EventMatchOver:
		return "match-over"
	case EventPowerUp:
		return "power-up"
	case EventPowerUpEnd:
		return "power-up-end"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is one thing the rules layer decided during a Step. Only the fields
// relevant to the kind are set.
type Event struct {
	Kind    EventKind     `msgpack:"kind"`
	SimTime float64       `msgpack:"t"`
	Player  core.PlayerID `msgpack:"player,omitempty"`
	Lost    gamemap.Side  `msgpack:"lost,omitempty"`
	Stuck   bool          `msgpack:"stuck,omitempty"`
	Score1  int           `msgpack:"s1,omitempty"`
	Score2  int           `msgpack:"s2,omitempty"`
	PowerUp PowerUpKind   `msgpack:"power_up,omitempty"`
}

func (e Event) String() string {
	switch e.Kind {
	case EventScore, EventMatchOver:
		return fmt.Sprintf("%.2fs %s %s %d-%d", e.SimTime, e.Kind, e.Player, e.Score1, e.Score2)
	case EventStuck:
		return fmt.Sprintf("%.2fs %s %t", e.SimTime, e.Kind, e.Stuck)
	case EventPaddleHit:
		return fmt.Sprintf("%.2fs %s %s", e.SimTime, e.Kind, e.Player)
	case EventPowerUp, EventPowerUpEnd:
		return fmt.Sprintf("%.2fs %s %s %s", e.SimTime, e.Kind, e.Player, e.PowerUp)
	default:
		return fmt.Sprintf("%.2fs %s", e.SimTime, e.Kind)
	}
}

func (g *Game) emit(e Event) {
	e.SimTime = g.world.Elapsed()
	g.events = append(g.events, e)
}

// Events returns the events queued since the previous call.
func (g *Game) Events() []Event {
	events := g.events
	g.events = nil
	return events
}
