package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// KeyMap defines the match key bindings. Player 2 bindings are disabled
// when the CPU drives the bottom paddle.
type KeyMap struct {
	P1Left    key.Binding
	P1Right   key.Binding
	P1PowerUp key.Binding
	P2Left    key.Binding
	P2Right   key.Binding
	P2PowerUp key.Binding
	Serve     key.Binding
	ResetBall key.Binding
	Pause     key.Binding
	Restart   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.P1Left, k.P1Right, k.P2Left, k.P2Right, k.Serve, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1Left, k.P1Right, k.P1PowerUp},
		{k.P2Left, k.P2Right, k.P2PowerUp},
		{k.Serve, k.ResetBall, k.Pause, k.Restart},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap(cpu bool) KeyMap {
	k := KeyMap{
		P1Left: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "P1 left"),
		),
		P1Right: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "P1 right"),
		),
		P1PowerUp: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "P1 power-up"),
		),
		P2Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "P2 left"),
		),
		P2Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "P2 right"),
		),
		P2PowerUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "P2 power-up"),
		),
		Serve: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "serve"),
		),
		ResetBall: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset stuck ball"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	if cpu {
		k.P2Left.SetEnabled(false)
		k.P2Right.SetEnabled(false)
		k.P2PowerUp.SetEnabled(false)
	}
	return k
}

// Control is the player action a key binding triggers.
type Control struct {
	Player core.PlayerID
	Action core.Action
	Hold   bool // movement keys stay pressed for the hold window
}

type binding struct {
	key *key.Binding
	Control
}

func (k *KeyMap) bindings() []binding {
	return []binding{
		{&k.P1Left, Control{core.Player1, core.ActionLeft, true}},
		{&k.P1Right, Control{core.Player1, core.ActionRight, true}},
		{&k.P1PowerUp, Control{core.Player1, core.ActionPowerUp, false}},
		{&k.P2Left, Control{core.Player2, core.ActionLeft, true}},
		{&k.P2Right, Control{core.Player2, core.ActionRight, true}},
		{&k.P2PowerUp, Control{core.Player2, core.ActionPowerUp, false}},
		{&k.Serve, Control{core.Player1, core.ActionServe, false}},
		{&k.ResetBall, Control{core.Player1, core.ActionResetBall, false}},
		{&k.Pause, Control{core.Player1, core.ActionPause, false}},
		{&k.Restart, Control{core.Player1, core.ActionRestart, false}},
	}
}

// Resolve maps a key message to the player action it triggers.
// ok is false for keys that are not match controls.
func (k *KeyMap) Resolve(msg tea.KeyMsg) (Control, bool) {
	for _, b := range k.bindings() {
		if key.Matches(msg, *b.key) {
			return b.Control, true
		}
	}
	return Control{}, false
}

// heldKey identifies a movement key in the hold window.
type heldKey struct {
	player core.PlayerID
	action core.Action
}

// Input accumulates key presses between ticks. Terminals report presses
// and auto-repeats but never releases, so a movement key counts as held
// until holdTicks ticks pass without another press.
type Input struct {
	holdTicks int
	held      map[heldKey]int
	pending   core.MultiInputFrame
}

// NewInput creates an input accumulator with the given hold window in ticks.
func NewInput(holdTicks int) *Input {
	return &Input{
		holdTicks: max(holdTicks, 1),
		held:      make(map[heldKey]int),
		pending:   core.NewMultiInputFrame(),
	}
}

// Press records a resolved control.
func (in *Input) Press(c Control) {
	if !c.Hold {
		in.pending.Press(c.Player, c.Action)
		return
	}

	opposite := core.ActionLeft
	if c.Action == core.ActionLeft {
		opposite = core.ActionRight
	}
	delete(in.held, heldKey{c.Player, opposite})
	in.held[heldKey{c.Player, c.Action}] = in.holdTicks
}

// Frame returns the input for the next tick and ages the held keys.
func (in *Input) Frame() core.MultiInputFrame {
	frame := in.pending
	in.pending = core.NewMultiInputFrame()

	for k, left := range in.held {
		frame.Press(k.player, k.action)
		if left <= 1 {
			delete(in.held, k)
		} else {
			in.held[k] = left - 1
		}
	}
	return frame
}

// Release drops every held key, e.g. when the match is paused.
func (in *Input) Release() {
	clear(in.held)
}
