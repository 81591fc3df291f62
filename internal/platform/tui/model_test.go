package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/replay"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapResolve(t *testing.T) {
	tests := []struct {
		name   string
		cpu    bool
		msg    tea.KeyMsg
		want   Control
		wantOK bool
	}{
		{"P1 left", false, runes("a"), Control{core.Player1, core.ActionLeft, true}, true},
		{"P1 power-up", false, runes("w"), Control{core.Player1, core.ActionPowerUp, false}, true},
		{"P2 right", false, tea.KeyMsg{Type: tea.KeyRight}, Control{core.Player2, core.ActionRight, true}, true},
		{"P2 power-up", false, tea.KeyMsg{Type: tea.KeyUp}, Control{core.Player2, core.ActionPowerUp, false}, true},
		{"serve", false, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, Control{core.Player1, core.ActionServe, false}, true},
		{"reset ball", false, runes("x"), Control{core.Player1, core.ActionResetBall, false}, true},
		{"pause", false, runes("p"), Control{core.Player1, core.ActionPause, false}, true},
		{"P2 keys off against the CPU", true, tea.KeyMsg{Type: tea.KeyLeft}, Control{}, false},
		{"unbound", false, runes("z"), Control{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			keys := DefaultKeyMap(tc.cpu)
			got, ok := keys.Resolve(tc.msg)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("Resolve() = %+v, %v; expected %+v, %v", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestInputHoldWindow(t *testing.T) {
	in := NewInput(3)
	left := Control{core.Player1, core.ActionLeft, true}

	in.Press(left)
	in.Press(Control{core.Player1, core.ActionServe, false})

	first := in.Frame()
	if !first.Player(core.Player1).Has(core.ActionServe) {
		t.Error("one-shot action missing from the first frame")
	}
	for i := range 3 {
		f := first
		if i > 0 {
			f = in.Frame()
		}
		if f.Player(core.Player1).Horizontal() != -1 {
			t.Fatalf("frame %d lost the held key", i)
		}
		if i > 0 && f.Any(core.ActionServe) {
			t.Fatal("one-shot action repeated")
		}
	}
	if in.Frame().Player(core.Player1).Horizontal() != 0 {
		t.Error("key still held after the window")
	}

	in.Press(left)
	in.Press(Control{core.Player1, core.ActionRight, true})
	if got := in.Frame().Player(core.Player1).Horizontal(); got != 1 {
		t.Errorf("Horizontal() = %d, the newer direction should win", got)
	}

	in.Press(left)
	in.Release()
	if in.Frame().Player(core.Player1).Horizontal() != 0 {
		t.Error("Release() kept a held key")
	}
}

func newModel(t *testing.T, winScore int, rec *replay.Recorder) (*Model, *storage.Store) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "pong.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := config.DefaultPongConfig()
	cfg.Gameplay.WinScore = winScore
	game := pong.New(pong.Options{Config: &cfg, CPU: true})

	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3}, Options{
		Player1:  "alice",
		CPU:      true,
		Logger:   log.New(io.Discard),
		Recorder: rec,
	})
	m.Init()
	return m, store
}

func TestModelSavesFinishedMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.pongrec")
	rec, err := replay.Create(path, replay.Header{GameID: pong.ModeCPU, Seed: 3, TickRate: 60})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	m, store := newModel(t, 1, rec)
	for range 100_000 {
		m.Update(TickMsg{})
		if m.gameState.GameOver {
			break
		}
	}
	if !m.gameState.GameOver {
		t.Fatal("match never finished")
	}
	m.Update(TickMsg{})
	m.Update(runes("q"))

	matches, err := store.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("saved %d matches, expected exactly 1", len(matches))
	}
	got := matches[0]
	if got.GameID != pong.ModeCPU || got.Player1 != "alice" || got.Player2 != "CPU" || got.MapName == "" {
		t.Errorf("saved match = %+v", got)
	}
	if got.EndReason != storage.EndCompleted || got.Score1+got.Score2 != 1 {
		t.Errorf("saved result = %+v", got)
	}
	if want := map[bool]string{true: "alice", false: "CPU"}[got.Score1 == 1]; got.Winner != want {
		t.Errorf("winner = %q, expected %q", got.Winner, want)
	}

	s, err := replay.Summarize(path)
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}
	if uint64(s.Frames) != m.gameState.Ticks || !s.Final.GameOver {
		t.Errorf("replay has %d frames (game over %v), expected %d", s.Frames, s.Final.GameOver, m.gameState.Ticks)
	}
}

func TestModelQuit(t *testing.T) {
	t.Run("before the first tick", func(t *testing.T) {
		m, store := newModel(t, 5, nil)
		if _, cmd := m.Update(runes("q")); cmd == nil {
			t.Error("quit did not return a command")
		}
		if matches, _ := store.RecentMatches(10); len(matches) != 0 {
			t.Errorf("saved %d matches for an empty session", len(matches))
		}
	})

	t.Run("mid match", func(t *testing.T) {
		m, store := newModel(t, 5, nil)
		for range 30 {
			m.Update(TickMsg{})
		}
		m.Update(runes("q"))

		matches, _ := store.RecentMatches(10)
		if len(matches) != 1 || matches[0].EndReason != storage.EndAbandoned || matches[0].Winner != "" {
			t.Errorf("matches = %+v, expected one abandoned match", matches)
		}
		if matches[0].Ticks != 30 {
			t.Errorf("ticks = %d, expected 30", matches[0].Ticks)
		}
	})
}

func TestModelPauseReleasesKeys(t *testing.T) {
	m, _ := newModel(t, 5, nil)

	m.Update(runes("a"))
	m.Update(runes("p"))
	m.Update(TickMsg{})
	if !m.gameState.Paused {
		t.Fatal("match not paused")
	}
	if len(m.input.held) != 0 {
		t.Error("held keys survived the pause")
	}
}

func TestModelView(t *testing.T) {
	m, _ := newModel(t, 5, nil)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(TickMsg{})

	view := m.View()
	for _, want := range []string{"P1 0", "0 CPU", "serve", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
	if strings.Contains(view, "P2 left") {
		t.Error("help lists player 2 keys in a CPU match")
	}
}
