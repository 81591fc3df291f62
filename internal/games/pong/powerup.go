package pong

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/physics"
)

// PowerUpKind identifies a paddle power-up.
type PowerUpKind uint8

const (
	PowerUpNone PowerUpKind = iota
	PaddleSizeUp
	PaddleSpeedUp
	PaddleSizeDown
	PaddleSpeedDown
)

// PowerUpKinds lists every grantable kind.
var PowerUpKinds = []PowerUpKind{PaddleSizeUp, PaddleSpeedUp, PaddleSizeDown, PaddleSpeedDown}

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpNone:
		return "NONE"
	case PaddleSizeUp:
		return "PADDLE_SIZE_UP"
	case PaddleSpeedUp:
		return "PADDLE_SPEED_UP"
	case PaddleSizeDown:
		return "PADDLE_SIZE_DOWN"
	case PaddleSpeedDown:
		return "PADDLE_SPEED_DOWN"
	default:
		return fmt.Sprintf("PowerUpKind(%d)", uint8(k))
	}
}

// Label is the short HUD text for the kind.
func (k PowerUpKind) Label() string {
	switch k {
	case PaddleSizeUp:
		return "size up"
	case PaddleSpeedUp:
		return "speed up"
	case PaddleSizeDown:
		return "size down"
	case PaddleSpeedDown:
		return "handle lock"
	default:
		return ""
	}
}

// IsBuff reports whether the kind helps its user. Buffs land on the user's
// paddle, debuffs on the opponent's.
func (k PowerUpKind) IsBuff() bool {
	return k == PaddleSizeUp || k == PaddleSpeedUp
}

func (k PowerUpKind) resizes() bool {
	return k == PaddleSizeUp || k == PaddleSizeDown
}

func (k PowerUpKind) duration(cfg config.PowerUpConfig) float64 {
	switch k {
	case PaddleSpeedUp:
		return cfg.SpeedUpDuration
	case PaddleSpeedDown:
		return cfg.SpeedDownDuration
	default:
		return cfg.Duration
	}
}

// paddleStatus is the part of a paddle a power-up changes.
type paddleStatus struct {
	Width    float64
	Height   float64
	Velocity mgl64.Vec2
}

// PowerUp is an applied power-up counting down on the sim clock.
type PowerUp struct {
	Kind   PowerUpKind
	Owner  core.PlayerID
	Target int // paddle index

	remaining float64
	total     float64
	base      paddleStatus
	status    paddleStatus
}

func newPowerUp(kind PowerUpKind, owner core.PlayerID, cfg config.PowerUpConfig) *PowerUp {
	target := owner.Index()
	if !kind.IsBuff() {
		target = owner.Opponent().Index()
	}
	d := kind.duration(cfg)
	return &PowerUp{Kind: kind, Owner: owner, Target: target, remaining: d, total: d}
}

// Remaining returns the seconds left before the power-up is revoked.
func (p *PowerUp) Remaining() float64 { return p.remaining }

// apply snapshots the target paddle and changes it.
func (p *PowerUp) apply(w *physics.World, h physics.Handle, cfg config.PowerUpConfig) {
	e, ok := w.Lookup(h)
	if !ok {
		return
	}
	p.base = paddleStatus{Width: e.Width(), Height: e.Height(), Velocity: e.Velocity}
	p.status = p.base

	vx := p.status.Velocity.X()
	switch p.Kind {
	case PaddleSizeUp:
		p.status.Width *= cfg.SizeUpScale
	case PaddleSizeDown:
		p.status.Width *= cfg.SizeDownScale
	case PaddleSpeedUp:
		if vx > 0 {
			vx += cfg.SpeedDelta
		} else {
			vx -= cfg.SpeedDelta
		}
	case PaddleSpeedDown:
		if vx > 0 {
			vx = max(vx-cfg.SpeedDelta, 0)
		} else {
			vx = min(vx+cfg.SpeedDelta, 0)
		}
	}
	p.status.Velocity[0] = vx

	if !p.Kind.resizes() {
		// Speed kinds are read by paddle control every frame.
		return
	}
	width := p.status.Width
	w.SetState(h, func(k physics.Kinematics) physics.Patch {
		pos := k.Position
		if pos.X() > 0 {
			pos[0] -= width * 0.5
		}
		return physics.Patch{}.WithPosition(pos).WithWidth(width)
	})
}

// tick counts down and eases a speed change back toward the original.
func (p *PowerUp) tick(frame float64) {
	if p.remaining == 0 {
		return
	}
	p.remaining = max(p.remaining-frame, 0)
	if p.Kind.resizes() {
		return
	}
	ratio := p.remaining / p.total
	p.status.Velocity[0] = p.base.Velocity.X()*(1-ratio) + p.status.Velocity.X()*ratio
}

func (p *PowerUp) done() bool { return p.remaining == 0 }

func (p *PowerUp) revoke(w *physics.World, h physics.Handle) {
	p.status = p.base
	if p.Kind.resizes() {
		w.Patch(h, physics.Patch{}.WithWidth(p.base.Width))
		return
	}
	w.Patch(h, physics.Patch{}.WithVelocity(p.base.Velocity))
}

// grantPowerUps gives each player WinScore random power-ups.
func (g *Game) grantPowerUps() {
	for i := range g.granted {
		g.granted[i] = g.granted[i][:0]
		if !g.cfg.PowerUps.Enabled {
			continue
		}
		for range g.cfg.Gameplay.WinScore {
			g.granted[i] = append(g.granted[i], PowerUpKinds[g.rng.Intn(len(PowerUpKinds))])
		}
	}
}

// PowerUps returns the power-ups player p has left, next first.
func (g *Game) PowerUps(p core.PlayerID) []PowerUpKind {
	i := p.Index()
	if i < 0 {
		return nil
	}
	return append([]PowerUpKind(nil), g.granted[i]...)
}

// ActivePowerUp returns the power-up in effect, if any.
func (g *Game) ActivePowerUp() (*PowerUp, bool) {
	return g.active, g.active != nil
}

// UsePowerUp applies player p's next power-up. Only one power-up may be in
// effect at a time.
func (g *Game) UsePowerUp(p core.PlayerID) (PowerUpKind, bool) {
	i := p.Index()
	if i < 0 || !g.cfg.PowerUps.Enabled || g.active != nil || g.gameOver || len(g.granted[i]) == 0 {
		return PowerUpNone, false
	}
	kind := g.granted[i][0]
	g.granted[i] = g.granted[i][1:]

	pu := newPowerUp(kind, p, g.cfg.PowerUps)
	pu.apply(g.world, g.paddles[pu.Target], g.cfg.PowerUps)
	g.active = pu

	g.logger.Debug("power-up applied", "player", p, "kind", kind, "target", pu.Target)
	g.emit(Event{Kind: EventPowerUp, Player: p, PowerUp: kind})
	return kind, true
}

// updatePowerUps runs the active power-up timer for one frame.
func (g *Game) updatePowerUps(frame float64) {
	if g.active == nil {
		return
	}
	g.active.tick(frame)
	if g.active.done() {
		g.revokePowerUp()
	}
}

func (g *Game) revokePowerUp() {
	pu := g.active
	if pu == nil {
		return
	}
	pu.revoke(g.world, g.paddles[pu.Target])
	g.active = nil
	g.logger.Debug("power-up revoked", "player", pu.Owner, "kind", pu.Kind)
	g.emit(Event{Kind: EventPowerUpEnd, Player: pu.Owner, PowerUp: pu.Kind})
}

// speedBoost returns the speed power-up acting on paddle i.
func (g *Game) speedBoost(i int) (*PowerUp, bool) {
	if g.active == nil || g.active.Target != i || g.active.Kind.resizes() {
		return nil, false
	}
	return g.active, true
}
