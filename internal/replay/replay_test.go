package replay

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

// playMatch runs a CPU match for n ticks and returns every frame.
func playMatch(n int) []Frame {
	cfg := config.DefaultPongConfig()
	g := pong.New(pong.Options{Config: &cfg, CPU: true})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})

	frames := make([]Frame, 0, n)
	for range n {
		g.Step(core.NewMultiInputFrame())
		snap := g.Snapshot()
		frames = append(frames, Frame{Tick: snap.Tick, Snapshot: snap, Events: g.Events()})
	}
	return frames
}

func TestRecordAndRead(t *testing.T) {
	frames := playMatch(240)
	header := Header{GameID: pong.ModeCPU, Map: "empty", Seed: 7, TickRate: 60}

	var buf bytes.Buffer
	rec, err := NewRecorder(&buf, header)
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}
	for _, f := range frames {
		if err := rec.Record(f); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if rec.Frames() != len(frames) {
		t.Errorf("Frames() = %d, expected %d", rec.Frames(), len(frames))
	}

	rd, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader() failed: %v", err)
	}
	header.Version = Version
	if rd.Header() != header {
		t.Errorf("Header() = %+v, expected %+v", rd.Header(), header)
	}

	for i, want := range frames {
		got, err := rd.Next()
		if err != nil {
			t.Fatalf("Next() at frame %d failed: %v", i, err)
		}
		if got.Tick != want.Tick || got.Snapshot != want.Snapshot {
			t.Fatalf("frame %d = %+v, expected %+v", i, got, want)
		}
		if !slices.Equal(got.Events, want.Events) {
			t.Fatalf("frame %d events = %v, expected %v", i, got.Events, want.Events)
		}
	}

	if _, err := rd.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() after the last frame = %v, expected io.EOF", err)
	}
}

func TestReaderRejectsBadStreams(t *testing.T) {
	tests := []struct {
		name string
		data func() []byte
	}{
		{"empty", func() []byte { return nil }},
		{"future version", func() []byte {
			var buf bytes.Buffer
			rec, _ := NewRecorder(&buf, Header{Version: Version + 1})
			rec.Close()
			return buf.Bytes()
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewReader(bytes.NewReader(tc.data())); err == nil {
				t.Error("NewReader() accepted a bad stream")
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.pongrec")
	frames := playMatch(600)

	rec, err := Create(path, Header{GameID: pong.ModeCPU, Map: "empty", Seed: 7, TickRate: 60})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	serves := 0
	for _, f := range frames {
		for _, e := range f.Events {
			if e.Kind == pong.EventServe {
				serves++
			}
		}
		if err := rec.Record(f); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	s, err := Summarize(path)
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}
	last := frames[len(frames)-1].Snapshot
	if s.Frames != len(frames) || s.Final != last || s.Duration != last.SimTime {
		t.Errorf("summary = %+v", s)
	}
	if s.Header.Map != "empty" || s.Header.Version != Version {
		t.Errorf("summary header = %+v", s.Header)
	}
	if s.Events[pong.EventServe] != serves || serves == 0 {
		t.Errorf("serves = %d, expected %d (at least one)", s.Events[pong.EventServe], serves)
	}

	if _, err := Summarize(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Summarize() of a missing file succeeded")
	}
}
