package pong

import (
	"math"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/gamemap"
	"github.com/vovakirdan/tui-pong/internal/physics"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

// newGame builds a match without auto-serve unless mutate turns it back on.
func newGame(t *testing.T, mutate func(*config.PongConfig), m *gamemap.Map) *Game {
	t.Helper()
	cfg := config.DefaultPongConfig()
	cfg.Gameplay.AutoServe = false
	if mutate != nil {
		mutate(&cfg)
	}
	g := New(Options{Config: &cfg, Map: m})
	g.Reset(runtimeConfig(1))
	return g
}

// serveAt launches a ball immediately and moves it to center with velocity v.
func serveAt(t *testing.T, g *Game, center, v mgl64.Vec2) {
	t.Helper()
	g.cfg.Ball.PrepareDelay = 0
	if !g.ServeBall() {
		t.Fatal("ServeBall() refused")
	}
	r := g.cfg.Ball.Radius
	g.World().Patch(g.ball, physics.Patch{}.
		WithPosition(center.Sub(mgl64.Vec2{r, r})).
		WithVelocity(v))
	g.Events()
}

func idle() core.MultiInputFrame {
	return core.NewMultiInputFrame()
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

// stepUntil steps idle frames until an event of kind k shows up.
func stepUntil(t *testing.T, g *Game, k EventKind, maxFrames int) Event {
	t.Helper()
	for range maxFrames {
		g.Step(idle())
		for _, e := range g.Events() {
			if e.Kind == k {
				return e
			}
		}
	}
	t.Fatalf("no %s event within %d frames", k, maxFrames)
	return Event{}
}

func TestResetWiresEntities(t *testing.T) {
	g := newGame(t, func(c *config.PongConfig) { c.Gameplay.AutoServe = true }, nil)

	handles := g.World().Handles()
	if len(handles) != 7 {
		t.Fatalf("world holds %d entities, expected 4 walls, 2 paddles and a ball", len(handles))
	}

	var roles []Role
	sides := map[gamemap.Side]int{}
	for _, h := range handles {
		e, _ := g.World().Lookup(h)
		tag := tagOf(e)
		roles = append(roles, tag.Role)
		if tag.Role == RoleWall && tag.WallType == gamemap.WallTrap {
			sides[tag.Side]++
		}
	}
	want := []Role{RoleWall, RoleWall, RoleWall, RoleWall, RolePaddle, RolePaddle, RoleBall}
	if !slices.Equal(roles, want) {
		t.Errorf("roles = %v, expected %v", roles, want)
	}
	if sides[gamemap.SideTop] != 1 || sides[gamemap.SideBottom] != 1 {
		t.Errorf("trap wall sides = %v", sides)
	}

	top, bottom := g.PaddleState(0), g.PaddleState(1)
	if !approx(top.Position.X(), -7.5) || !approx(top.Position.Y(), 39.25) {
		t.Errorf("top paddle at %v", top.Position)
	}
	if !approx(bottom.Position.Y(), -40.75) || bottom.Width != 15 || bottom.Height != 1.5 {
		t.Errorf("bottom paddle = %+v", bottom)
	}

	ball, ok := g.BallState()
	if !ok {
		t.Fatal("no ball after auto-serve")
	}
	if ball.Position != (mgl64.Vec2{-3, -3}) || ball.Velocity != (mgl64.Vec2{}) {
		t.Errorf("ball = %+v, expected at rest on the center", ball)
	}
	if g.Rally() != RallyPreparing {
		t.Errorf("rally = %s, expected preparing", g.Rally())
	}
}

func TestServeLaunchesAfterPrepareDelay(t *testing.T) {
	g := newGame(t, func(c *config.PongConfig) { c.Gameplay.AutoServe = true }, nil)

	for range 59 {
		g.Step(idle())
	}
	if g.Rally() != RallyPreparing {
		t.Fatalf("rally = %s before the delay passed", g.Rally())
	}
	if slices.Contains(kinds(g.Events()), EventServe) {
		t.Fatal("served early")
	}

	g.Step(idle())
	if g.Rally() != RallyInPlay {
		t.Fatalf("rally = %s after one second", g.Rally())
	}
	if !slices.Contains(kinds(g.Events()), EventServe) {
		t.Error("no serve event")
	}

	ball, _ := g.BallState()
	vx, vy := ball.Velocity.X(), ball.Velocity.Y()
	if vy != 40 {
		t.Errorf("vy = %v, expected 40 toward the top", vy)
	}
	if math.Abs(vx) < 30 || math.Abs(vx) > 50 {
		t.Errorf("vx = %v, expected magnitude in [30, 50]", vx)
	}
}

func TestServeRequiresIdleField(t *testing.T) {
	g := newGame(t, nil, nil)

	if g.Rally() != RallyIdle {
		t.Fatalf("rally = %s without auto-serve", g.Rally())
	}
	in := idle()
	in.Press(core.Player2, core.ActionServe)
	g.Step(in)
	if g.Rally() != RallyPreparing {
		t.Fatalf("serve action left rally %s", g.Rally())
	}
	if g.ServeBall() {
		t.Error("ServeBall() accepted a second ball")
	}
}

func TestServeSpeedScalesWithPaddleRatio(t *testing.T) {
	g := newGame(t, func(c *config.PongConfig) { c.Paddles.SpeedRatio = 1.5 }, nil)
	serveAt(t, g, mgl64.Vec2{0, 0}, mgl64.Vec2{})

	g.lastLost = gamemap.SideTop
	v := g.serveVelocity()
	// (1.5-1)*0.8+1 = 1.4
	if !approx(v.Y(), -56) {
		t.Errorf("vy = %v, expected -56 toward the bottom after top lost", v.Y())
	}
	if math.Abs(v.X()) < 42-1e-9 || math.Abs(v.X()) > 70+1e-9 {
		t.Errorf("vx = %v out of band", v.X())
	}
}

func TestPaddleControl(t *testing.T) {
	g := newGame(t, nil, nil)

	right := idle()
	right.Press(core.Player1, core.ActionRight)
	left := idle()
	left.Press(core.Player2, core.ActionLeft)

	g.Step(right)
	if v := g.PaddleState(0).Velocity.X(); v != 6 {
		t.Fatalf("vx after one frame = %v, expected 6", v)
	}
	if !approx(g.PaddleState(0).Position.X(), -7.5+0.1) {
		t.Errorf("x = %v after one frame", g.PaddleState(0).Position.X())
	}

	g.Step(left)
	if v := g.PaddleState(1).Velocity.X(); v != -6 {
		t.Errorf("bottom paddle vx = %v, expected -6", v)
	}
	if v := g.PaddleState(0).Velocity.X(); !approx(v, 4.8) {
		t.Errorf("released paddle vx = %v, expected 4.8", v)
	}

	for range 20 {
		g.Step(right)
	}
	if v := g.PaddleState(0).Velocity.X(); v != 60 {
		t.Errorf("vx = %v, expected clamp at 60", v)
	}

	for range 100 {
		g.Step(idle())
	}
	if v := g.PaddleState(0).Velocity.X(); v != 0 {
		t.Errorf("vx = %v after release, expected exact zero", v)
	}
}

func TestPaddleStopsAtSideWall(t *testing.T) {
	g := newGame(t, nil, nil)

	right := idle()
	right.Press(core.Player1, core.ActionRight)
	for range 200 {
		g.Step(right)
	}

	s := g.PaddleState(0)
	if !approx(s.Position.X(), 33) {
		t.Errorf("x = %v, expected flush against the wall at 33", s.Position.X())
	}
	if s.Velocity.X() != 0 {
		t.Errorf("vx = %v, expected the wall to stop the paddle", s.Velocity.X())
	}
}

func TestCapturePaddles(t *testing.T) {
	tests := []struct {
		name  string
		x     float64
		wantX float64
	}{
		{"past left edge", -60, -45},
		{"past right edge", 40, 30},
		{"inside", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newGame(t, nil, nil)
			y := g.PaddleState(1).Position.Y()
			g.World().Patch(g.paddles[1], physics.Patch{}.WithPosition(mgl64.Vec2{tc.x, y}))

			g.Step(idle())
			if got := g.PaddleState(1).Position.X(); got != tc.wantX {
				t.Errorf("x = %v, expected %v", got, tc.wantX)
			}
		})
	}
}

func TestPaddleHitKeepsBallInSpeedBand(t *testing.T) {
	tests := []struct {
		name   string
		startX float64
		vx     float64
		wantVX float64
	}{
		{"slow right", 0, 5, 20},
		{"slow left", 0, -5, -20},
		{"still", 0, 0, 20},
		{"in band", 0, -35, -35},
		{"too fast", -10, 100, 70},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newGame(t, nil, nil)
			serveAt(t, g, mgl64.Vec2{tc.startX, 30}, mgl64.Vec2{tc.vx, 60})

			hit := stepUntil(t, g, EventPaddleHit, 30)
			if hit.Player != core.Player1 {
				t.Errorf("hit by %s, expected P1", hit.Player)
			}

			ball, _ := g.BallState()
			if !approx(ball.Velocity.X(), tc.wantVX) {
				t.Errorf("vx = %v, expected %v", ball.Velocity.X(), tc.wantVX)
			}
			if ball.Velocity.Y() != -60 {
				t.Errorf("vy = %v, expected the bounce to reverse it", ball.Velocity.Y())
			}
			if g.HitEffect(0) != 1 || g.HitEffect(1) != 0 {
				t.Errorf("hit effects = %v, %v", g.HitEffect(0), g.HitEffect(1))
			}
		})
	}
}

func TestPaddleHitAddsSpin(t *testing.T) {
	g := newGame(t, nil, nil)
	serveAt(t, g, mgl64.Vec2{0, 30}, mgl64.Vec2{30, 60})

	ball, _ := g.World().Lookup(g.ball)
	paddle, _ := g.World().Lookup(g.paddles[0])
	paddle.Velocity = mgl64.Vec2{10, 0}

	g.paddleHit(contact{ball: ball, other: paddle})
	got, _ := g.BallState()
	if !approx(got.Velocity.X(), 31) {
		t.Errorf("vx = %v, expected 30 + 0.1*10", got.Velocity.X())
	}
}

func TestHitCueThrottle(t *testing.T) {
	g := newGame(t, nil, nil)

	for _, at := range []float64{1.0, 1.05, 1.1, 1.15, 1.3} {
		g.hitCue(at)
	}
	if n := len(g.Events()); n != 3 {
		t.Errorf("%d cues, expected 3", n)
	}
}

func TestStuckBallDetection(t *testing.T) {
	g := newGame(t, nil, nil)
	serveAt(t, g, mgl64.Vec2{0, 0}, mgl64.Vec2{})

	ball, _ := g.World().Lookup(g.ball)
	var wall physics.Entity
	for _, h := range g.walls {
		e, _ := g.World().Lookup(h)
		if tagOf(e).WallType == gamemap.WallSafe {
			wall = e
			break
		}
	}

	for range 10 {
		g.safeWallHit(contact{ball: ball, other: wall})
	}
	if g.Stuck() {
		t.Fatal("stuck after only 10 safe wall hits")
	}
	g.safeWallHit(contact{ball: ball, other: wall})
	if !g.Stuck() {
		t.Fatal("not stuck after 11 safe wall hits")
	}
	events := g.Events()
	if len(events) != 1 || events[0].Kind != EventStuck || !events[0].Stuck {
		t.Fatalf("events = %v", events)
	}

	old := g.ball
	in := idle()
	in.Press(core.Player1, core.ActionResetBall)
	g.Step(in)
	if g.Stuck() || g.ball == old || g.ball.IsZero() {
		t.Errorf("reset ball: stuck=%v old=%s new=%s", g.Stuck(), old, g.ball)
	}
	if g.World().Contains(old) {
		t.Error("stuck ball still in the world")
	}
}

func TestPaddleHitClearsStuck(t *testing.T) {
	g := newGame(t, nil, nil)
	serveAt(t, g, mgl64.Vec2{0, 30}, mgl64.Vec2{0, 60})
	g.stuckCount = 11
	g.setStuck(true)
	g.Events()

	stepUntil(t, g, EventPaddleHit, 30)
	if g.Stuck() || g.stuckCount != 0 {
		t.Errorf("stuck=%v count=%d after a paddle hit", g.Stuck(), g.stuckCount)
	}
}

func TestTrapWallScores(t *testing.T) {
	g := newGame(t, nil, nil)
	serveAt(t, g, mgl64.Vec2{20, 40}, mgl64.Vec2{0, 60})

	score := stepUntil(t, g, EventScore, 30)
	if score.Player != core.Player2 || score.Lost != gamemap.SideTop {
		t.Errorf("score event = %+v, expected P2 scoring on the top side", score)
	}
	if score.Score1 != 0 || score.Score2 != 1 {
		t.Errorf("scores = %d-%d", score.Score1, score.Score2)
	}
	if _, ok := g.BallState(); ok || g.Rally() != RallyIdle {
		t.Error("ball should be removed after a point")
	}

	st := g.State()
	if st.Score(core.Player2) != 1 || st.GameOver {
		t.Errorf("state = %+v", st)
	}

	// The next serve goes toward the side that won.
	g.cfg.Ball.PrepareDelay = 0
	g.ServeBall()
	ball, _ := g.BallState()
	if ball.Velocity.Y() != -40 {
		t.Errorf("serve vy = %v, expected -40 after top lost", ball.Velocity.Y())
	}
}

func TestAutoServeAfterPoint(t *testing.T) {
	g := newGame(t, func(c *config.PongConfig) { c.Gameplay.AutoServe = true }, nil)
	for range 60 {
		g.Step(idle())
	}
	r := g.cfg.Ball.Radius
	g.World().Patch(g.ball, physics.Patch{}.
		WithPosition(mgl64.Vec2{20 - r, 40 - r}).
		WithVelocity(mgl64.Vec2{0, 60}))

	stepUntil(t, g, EventScore, 30)
	if g.Rally() != RallyPreparing {
		t.Errorf("rally = %s, expected a new ball waiting", g.Rally())
	}
}

func TestBallEnvelope(t *testing.T) {
	tests := []struct {
		name   string
		y      float64
		winner core.PlayerID
	}{
		{"below the field", -49, core.Player1},
		{"at the bottom line", -48, core.Player1},
		{"above the field", 48.5, core.Player2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newGame(t, nil, nil)
			serveAt(t, g, mgl64.Vec2{0, 0}, mgl64.Vec2{})
			g.World().Patch(g.ball, physics.Patch{}.
				WithPosition(mgl64.Vec2{-3, tc.y}).
				WithVelocity(mgl64.Vec2{}))

			g.Step(idle())
			st := g.State()
			if st.Score(tc.winner) != 1 || st.Score(tc.winner.Opponent()) != 0 {
				t.Errorf("state = %+v, expected a point for %s", st, tc.winner)
			}
		})
	}
}

func TestOffCenterTrapWallGivesNoPoint(t *testing.T) {
	m := gamemap.New("trap", nil, []gamemap.WallSpec{{CenterX: 30, CenterY: 70, Width: 20, Height: 4}})
	m.AddBorderWalls()
	g := newGame(t, nil, m)
	serveAt(t, g, mgl64.Vec2{-20, 10}, mgl64.Vec2{0, 60})

	stepUntil(t, g, EventBallOut, 30)
	st := g.State()
	if st.Score1 != 0 || st.Score2 != 0 {
		t.Errorf("scores = %d-%d, expected no point", st.Score1, st.Score2)
	}
	if _, ok := g.BallState(); ok {
		t.Error("ball should be removed")
	}
}

func TestMatchOverAndRestart(t *testing.T) {
	g := newGame(t, func(c *config.PongConfig) { c.Gameplay.WinScore = 2 }, nil)

	g.loseRally(gamemap.SideBottom)
	g.loseRally(gamemap.SideBottom)

	st := g.State()
	if !st.GameOver || st.Winner != core.Player1 || st.Score1 != 2 {
		t.Fatalf("state = %+v, expected P1 to win 2-0", st)
	}
	if !slices.Contains(kinds(g.Events()), EventMatchOver) {
		t.Error("no match-over event")
	}
	if g.ServeBall() {
		t.Error("served after the match ended")
	}

	g.Step(idle())
	if g.State().Ticks != 0 {
		t.Error("finished match kept ticking")
	}

	in := idle()
	in.Press(core.Player2, core.ActionRestart)
	g.Step(in)
	if st := g.State(); st.GameOver || st.Score1 != 0 {
		t.Errorf("state after restart = %+v", st)
	}
}

func TestPauseFreezesMatch(t *testing.T) {
	g := newGame(t, nil, nil)

	pause := idle()
	pause.Press(core.Player1, core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("pause action ignored")
	}

	right := idle()
	right.Press(core.Player1, core.ActionRight)
	g.Step(right)
	if g.PaddleState(0).Velocity.X() != 0 || g.State().Ticks != 0 {
		t.Error("paused match moved")
	}

	g.Step(pause)
	g.Step(right)
	if g.State().Paused || g.State().Ticks != 2 {
		t.Errorf("state after resume = %+v", g.State())
	}
}

func TestAdvanceSubSteps(t *testing.T) {
	g := newGame(t, nil, nil)

	g.Advance(0.025, idle())
	if !approx(g.World().Elapsed(), 0.025) {
		t.Errorf("elapsed = %v, expected 0.025", g.World().Elapsed())
	}
}

func TestDeterminism(t *testing.T) {
	play := func() Snapshot {
		cfg := config.DefaultPongConfig()
		cfg.PowerUps.Enabled = true
		g := New(Options{Config: &cfg, CPU: true})
		g.Reset(runtimeConfig(42))

		for i := range 900 {
			in := idle()
			if i%50 < 20 {
				in.Press(core.Player1, core.ActionLeft)
			}
			if i == 300 {
				in.Press(core.Player1, core.ActionPowerUp)
			}
			g.Step(in)
		}
		return g.Snapshot()
	}

	a, b := play(), play()
	if a != b {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}

func TestCPUMatchFinishes(t *testing.T) {
	cfg := config.DefaultPongConfig()
	g := New(Options{Config: &cfg, CPU: true})
	g.Reset(runtimeConfig(7))

	for range 100_000 {
		if g.State().GameOver {
			break
		}
		g.Step(idle())
	}

	st := g.State()
	if !st.GameOver {
		t.Fatalf("match still running: %+v", st)
	}
	if st.Score(st.Winner) != cfg.Gameplay.WinScore {
		t.Errorf("winner %s has %d points", st.Winner, st.Score(st.Winner))
	}
}

func TestSnapshot(t *testing.T) {
	g := newGame(t, nil, nil)
	snap := g.Snapshot()
	if snap.HasBall || snap.Rally != RallyIdle {
		t.Errorf("snapshot before serve = %+v", snap)
	}
	if snap.Paddles[0].W != 15 || !approx(snap.Paddles[1].Y, -40.75) {
		t.Errorf("paddles = %+v", snap.Paddles)
	}

	serveAt(t, g, mgl64.Vec2{5, 5}, mgl64.Vec2{10, -20})
	snap = g.Snapshot()
	if !snap.HasBall || snap.Ball.X != 2 || snap.Ball.VY != -20 {
		t.Errorf("ball = %+v", snap.Ball)
	}
}

func TestRegisteredModes(t *testing.T) {
	for _, id := range []string{ModeVersus, ModeCPU} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%s).ID() = %s", id, g.ID())
		}
	}
}
