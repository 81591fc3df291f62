// Package pong implements two-player Pong on top of the physics world.
// Player 1 defends the top of the field and Player 2 the bottom; paddles move
// horizontally and the ball bounces off SAFE walls until it reaches a TRAP
// wall behind a paddle.
package pong

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/gamemap"
	"github.com/vovakirdan/tui-pong/internal/physics"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

// Game mode identifiers.
const (
	ModeVersus = "pong"
	ModeCPU    = "pong-cpu"
)

// configPath is the custom config path (set via SetConfigPath).
var configPath string

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// difficultyPreset is the difficulty preset to apply.
var difficultyPreset config.DifficultyPreset

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

var (
	selectedMap      *gamemap.Map
	powerUpsOverride *bool
	winScoreOverride int
	sharedLogger     *log.Logger
)

// SetMap selects the map used by games created through the registry.
func SetMap(m *gamemap.Map) {
	selectedMap = m
}

// SetPowerUps overrides the power_ups.enabled config value.
func SetPowerUps(enabled bool) {
	powerUpsOverride = &enabled
}

// SetWinScore overrides gameplay.win_score. Zero keeps the config value.
func SetWinScore(score int) {
	winScoreOverride = score
}

// SetLogger sets the logger used by games created through the registry.
func SetLogger(l *log.Logger) {
	sharedLogger = l
}

// Options configures a Game.
type Options struct {
	// Config is used as is. Nil loads the config file and applies the
	// package-level overrides on every Reset.
	Config *config.PongConfig
	// Map defaults to the DefaultPreset map.
	Map    *gamemap.Map
	Logger *log.Logger
	// CPU drives Player 2.
	CPU bool
	// FrameTime overrides the runtime tick length, in seconds.
	FrameTime float64
}

// Game implements a Pong match.
type Game struct {
	opts   Options
	cfg    config.PongConfig
	m      *gamemap.Map
	logger *log.Logger

	runtime    core.RuntimeConfig
	frame      float64
	rng        *rand.Rand
	difficulty *config.DifficultyManager
	cpu        *CPU

	world   *physics.World
	walls   []physics.Handle
	paddles [2]physics.Handle
	ball    physics.Handle // zero between rallies

	rally    RallyState
	launchAt float64
	lastLost gamemap.Side

	scores   [2]int
	winner   core.PlayerID
	gameOver bool
	paused   bool
	ticks    uint64

	stuck      bool
	stuckCount int
	lastCue    float64
	hitEffect  [2]float64

	granted [2][]PowerUpKind
	active  *PowerUp

	events []Event
}

// New creates a new Pong game. Call Reset before stepping it.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{opts: opts, logger: logger}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.opts.CPU {
		return ModeCPU
	}
	return ModeVersus
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.opts.CPU {
		return "Pong vs CPU"
	}
	return "Pong (local versus)"
}

// Reset initializes or restarts the match.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()

	g.m = g.opts.Map
	if g.m == nil {
		m, err := gamemap.Preset(gamemap.DefaultPreset)
		if err != nil {
			panic(err)
		}
		g.m = m
	}

	g.frame = runtime.FrameTime()
	if g.opts.FrameTime > 0 {
		g.frame = g.opts.FrameTime
	}

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.world = physics.NewWorld(
		physics.WithTolerance(physics.Tolerance(g.cfg.Physics.Tolerance)),
		physics.WithSeed(runtime.Seed),
		physics.WithLogger(g.logger),
	)
	g.cpu = nil
	if g.opts.CPU {
		g.cpu = NewCPU(core.Player2, g.cfg.CPU)
	}

	g.addWalls()
	g.addPaddles()
	g.ball = physics.Handle{}

	g.rally = RallyIdle
	g.launchAt = 0
	g.lastLost = gamemap.SideNone
	g.scores = [2]int{}
	g.winner = 0
	g.gameOver = false
	g.paused = false
	g.ticks = 0
	g.stuck = false
	g.stuckCount = 0
	g.lastCue = -g.cfg.Gameplay.HitCueInterval
	g.hitEffect = [2]float64{}
	g.active = nil
	g.events = nil
	g.grantPowerUps()

	g.logger.Debug("match reset", "mode", g.ID(), "map", g.m.Name, "walls", len(g.walls), "seed", runtime.Seed)

	if g.cfg.Gameplay.AutoServe {
		g.ServeBall()
	}
}

func (g *Game) loadConfig() config.PongConfig {
	if g.opts.Config != nil {
		return *g.opts.Config
	}

	cfg, err := config.LoadPong(configPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		cfg = config.DefaultPongConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPongPreset(&cfg, difficultyPreset)
	}
	if powerUpsOverride != nil {
		cfg.PowerUps.Enabled = *powerUpsOverride
	}
	if winScoreOverride > 0 {
		cfg.Gameplay.WinScore = winScoreOverride
	}
	return cfg
}

// Config returns the configuration of the current match.
func (g *Game) Config() config.PongConfig { return g.cfg }

// Map returns the map of the current match.
func (g *Game) Map() *gamemap.Map { return g.m }

// Step advances the match by one tick.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	if g.gameOver {
		if in.Any(core.ActionRestart) {
			g.Reset(g.runtime)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Any(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.ticks++

	if g.cpu != nil {
		in = in.Clone()
		in.SetPlayer(g.cpu.Player, g.cpu.Decide(g))
	}

	if in.Any(core.ActionServe) {
		g.ServeBall()
	}
	if in.Any(core.ActionResetBall) {
		g.ResetBall()
	}
	for _, p := range []core.PlayerID{core.Player1, core.Player2} {
		if in.Player(p).Has(core.ActionPowerUp) {
			g.UsePowerUp(p)
		}
	}

	g.Advance(g.frame, in)
	return core.StepResult{State: g.State()}
}

// Advance runs one frame of frameTime seconds: effect timers, paddle
// control, then physics in sub-steps no longer than the configured
// threshold, with the collision rules applied after each.
func (g *Game) Advance(frameTime float64, in core.MultiInputFrame) {
	for i := range g.hitEffect {
		g.hitEffect[i] = max(g.hitEffect[i]-frameTime, 0)
	}
	g.updatePowerUps(frameTime)
	g.controlPaddles(in)

	tol := float64(g.world.Tolerance())
	threshold := g.cfg.Physics.FrameTimeThreshold
	slice := min(frameTime, threshold)
	for frameTime > tol {
		g.world.Update(slice)
		g.applyRules(g.world.DrainEvents())
		frameTime -= slice
		slice = min(frameTime, threshold)
	}

	g.capturePaddles()
	g.captureBall()
	g.updateRally()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score1:   g.scores[0],
		Score2:   g.scores[1],
		Winner:   g.winner,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Ticks:    g.ticks,
	}
}

// HitEffect returns the flash level of paddle i, from 1 right after a hit
// down to 0.
func (g *Game) HitEffect(i int) float64 { return g.hitEffect[i] }

func init() {
	registry.Register(ModeVersus, func() registry.Game {
		return New(Options{Map: selectedMap, Logger: sharedLogger})
	})
	registry.Register(ModeCPU, func() registry.Game {
		return New(Options{Map: selectedMap, Logger: sharedLogger, CPU: true})
	})
}
