package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/gamemap"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/replay"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// holdWindow is how long a movement key counts as held after a press.
// It bridges the terminal's auto-repeat gaps.
const holdWindow = 150 * time.Millisecond

// Options configures a terminal match.
type Options struct {
	Player1  string // Names stored with the match result
	Player2  string
	CPU      bool
	Logger   *log.Logger
	Recorder *replay.Recorder // Optional; records the first match only
}

// recordable is implemented by games that expose replay data.
type recordable interface {
	Snapshot() pong.Snapshot
	Events() []pong.Event
}

// mapped is implemented by games played on a wall map.
type mapped interface {
	Map() *gamemap.Map
}

// Model is the Bubble Tea model for running a match.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	opts      Options
	logger    *log.Logger
	keys      KeyMap
	help      help.Model
	input     *Input
	gameState core.GameState
	started   time.Time
	quitting  bool
	saved     bool // Whether the result has been saved for the current match
	recorder  *replay.Recorder
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) *Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if opts.Player1 == "" {
		opts.Player1 = core.Player1.String()
	}
	if opts.Player2 == "" {
		opts.Player2 = core.Player2.String()
		if opts.CPU {
			opts.Player2 = "CPU"
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	holdTicks := int(holdWindow.Seconds()*float64(cfg.TickRate) + 0.5)

	return &Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:    store,
		config:   cfg,
		opts:     opts,
		logger:   logger.WithPrefix("tui"),
		keys:     DefaultKeyMap(opts.CPU),
		help:     help.New(),
		input:    NewInput(holdTicks),
		recorder: opts.Recorder,
	}
}

// Init starts the match and the tick loop.
func (m *Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.started = time.Now()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finish(storage.EndAbandoned)
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeScreen()
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	c, ok := m.keys.Resolve(msg)
	if !ok {
		return m, nil
	}
	if c.Action == core.ActionRestart && !m.gameState.GameOver {
		return m, nil
	}
	m.input.Press(c)
	return m, nil
}

// handleResize processes window resize events. The field is laid out on
// every render, so the match keeps running.
func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.resizeScreen()
	return m, nil
}

// resizeScreen leaves room for the help footer below the field.
func (m *Model) resizeScreen() {
	footer := lipgloss.Height(m.help.View(m.keys))
	m.screen.Resize(m.config.ScreenW, max(m.config.ScreenH-footer, 1))
}

// handleTick processes simulation ticks.
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	in := m.input.Frame()

	if in.Any(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.started = time.Now()
		m.saved = false
		m.input.Release()
		m.logger.Info("match restarted", "game", m.game.ID(), "seed", m.config.Seed)
		return m, tickCmd(m.config.TickRate)
	}

	prev := m.gameState.Ticks
	result := m.game.Step(in)
	m.gameState = result.State
	if m.gameState.Paused {
		m.input.Release()
	}

	m.drainEvents(m.gameState.Ticks != prev)

	if m.gameState.GameOver {
		m.finish(storage.EndCompleted)
	}

	return m, tickCmd(m.config.TickRate)
}

// drainEvents empties the game's event queue and appends the tick to the
// replay, if one is being written and the simulation advanced.
func (m *Model) drainEvents(advanced bool) {
	g, ok := m.game.(recordable)
	if !ok {
		return
	}

	events := g.Events()
	for _, e := range events {
		m.logger.Debug("event", "event", e)
	}
	if m.recorder == nil || !advanced {
		return
	}

	snap := g.Snapshot()
	if err := m.recorder.Record(replay.Frame{Tick: snap.Tick, Snapshot: snap, Events: events}); err != nil {
		m.logger.Warn("replay disabled", "err", err)
		m.closeRecorder()
	}
}

func (m *Model) closeRecorder() {
	if m.recorder == nil {
		return
	}
	if err := m.recorder.Close(); err != nil {
		m.logger.Warn("cannot close replay", "err", err)
	}
	m.recorder = nil
}

// finish saves the match result once. Matches quit before anything
// happened are not worth a row.
func (m *Model) finish(reason string) {
	if m.saved {
		return
	}
	m.saved = true
	m.closeRecorder()

	st := m.gameState
	if reason == storage.EndAbandoned && st.Ticks == 0 {
		return
	}
	if m.store == nil {
		return
	}

	rec := storage.MatchRecord{
		GameID:    m.game.ID(),
		Player1:   m.opts.Player1,
		Player2:   m.opts.Player2,
		Score1:    st.Score1,
		Score2:    st.Score2,
		EndReason: reason,
		Ticks:     int(st.Ticks),
		Duration:  int(time.Since(m.started).Seconds()),
		Seed:      m.config.Seed,
	}
	if g, ok := m.game.(mapped); ok {
		rec.MapName = g.Map().Name
	}
	switch st.Winner {
	case core.Player1:
		rec.Winner = m.opts.Player1
	case core.Player2:
		rec.Winner = m.opts.Player2
	}

	if _, err := m.store.SaveMatch(rec); err != nil {
		m.logger.Error("cannot save match", "err", err)
		return
	}
	m.logger.Info("match saved", "game", rec.GameID, "score", fmt.Sprintf("%d:%d", rec.Score1, rec.Score2), "reason", reason)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".pong", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for one game mode.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)
	defer model.closeRecorder()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
