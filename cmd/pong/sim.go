package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/replay"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// Player names stored for simulated matches.
const (
	simPlayer1 = "script"
	simPlayer2 = "CPU"
)

var (
	flagTicks  int
	flagEvents bool
	flagNoSave bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless CPU match",
	Long: `Run a match without a terminal UI: a scripted tracker plays the top
paddle against the CPU until someone wins or the tick limit is reached.
With a fixed --seed the result is reproducible.

Examples:
  pong sim --seed 42
  pong sim --map pillars --power-ups --events
  pong sim --ticks 3600 --record sim.pongrec --no-save`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	addGameFlags(simCmd)
	simCmd.Flags().IntVar(&flagTicks, "ticks", 36000, "Maximum ticks to simulate")
	simCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay to this file")
	simCmd.Flags().BoolVar(&flagEvents, "events", false, "Print every rules event")
	simCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store the result in match history")
}

// simResult is the outcome of a headless match.
type simResult struct {
	State  core.GameState
	Final  pong.Snapshot
	Events map[pong.EventKind]int
}

// simulate steps g until the match ends or maxTicks pass. The script drives
// its paddle and keeps the rally going: it serves an idle field and
// replaces stuck balls.
func simulate(g *pong.Game, script *pong.CPU, maxTicks int, onFrame func(replay.Frame) error) (simResult, error) {
	res := simResult{Events: make(map[pong.EventKind]int)}

	for range maxTicks {
		if g.State().GameOver {
			break
		}

		in := core.NewMultiInputFrame()
		in.SetPlayer(script.Player, script.Decide(g))
		if g.Rally() == pong.RallyIdle {
			in.Press(script.Player, core.ActionServe)
		}
		if g.Stuck() {
			in.Press(script.Player, core.ActionResetBall)
		}
		g.Step(in)

		events := g.Events()
		for _, e := range events {
			res.Events[e.Kind]++
		}
		if onFrame != nil {
			snap := g.Snapshot()
			if err := onFrame(replay.Frame{Tick: snap.Tick, Snapshot: snap, Events: events}); err != nil {
				return res, err
			}
		}
	}

	res.State = g.State()
	res.Final = g.Snapshot()
	return res, nil
}

func runSim(cmd *cobra.Command, args []string) error {
	m, err := configureGame(cmd)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := pong.New(pong.Options{Map: m, Logger: logger, CPU: true})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed})
	script := pong.NewCPU(core.Player1, g.Config().CPU)

	var rec *replay.Recorder
	if flagRecord != "" {
		rec, err = replay.Create(flagRecord, replay.Header{GameID: pong.ModeCPU, Map: m.Name, Seed: seed, TickRate: flagFPS})
		if err != nil {
			return err
		}
		defer rec.Close()
	}

	onFrame := func(f replay.Frame) error {
		if flagEvents {
			for _, e := range f.Events {
				fmt.Printf("%6d  %s\n", f.Tick, e)
			}
		}
		if rec != nil {
			return rec.Record(f)
		}
		return nil
	}

	logger.Info("simulating", "map", m.Name, "seed", seed, "max_ticks", flagTicks)
	res, err := simulate(g, script, flagTicks, onFrame)
	if err != nil {
		return err
	}

	st := res.State
	fmt.Printf("Map:    %s\n", m.Name)
	fmt.Printf("Seed:   %d\n", seed)
	fmt.Printf("Ticks:  %d (%.1fs simulated)\n", st.Ticks, res.Final.SimTime)
	fmt.Printf("Score:  %s %d - %d %s\n", simPlayer1, st.Score1, st.Score2, simPlayer2)
	fmt.Printf("Serves: %d  Paddle hits: %d  Stuck: %d\n",
		res.Events[pong.EventServe], res.Events[pong.EventPaddleHit], res.Events[pong.EventStuck])
	if st.GameOver {
		fmt.Printf("Winner: %s\n", map[core.PlayerID]string{core.Player1: simPlayer1, core.Player2: simPlayer2}[st.Winner])
	} else {
		fmt.Println("Winner: none (tick limit reached)")
	}

	if flagNoSave {
		return nil
	}
	return saveSim(m.Name, seed, res)
}

func saveSim(mapName string, seed int64, res simResult) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	st := res.State
	rec := storage.MatchRecord{
		GameID:    pong.ModeCPU,
		MapName:   mapName,
		Player1:   simPlayer1,
		Player2:   simPlayer2,
		Score1:    st.Score1,
		Score2:    st.Score2,
		EndReason: storage.EndCompleted,
		Ticks:     int(st.Ticks),
		Duration:  int(res.Final.SimTime),
		Seed:      seed,
	}
	switch {
	case !st.GameOver:
		rec.EndReason = storage.EndAbandoned
	case st.Winner == core.Player1:
		rec.Winner = simPlayer1
	default:
		rec.Winner = simPlayer2
	}

	id, err := store.SaveMatch(rec)
	if err != nil {
		return err
	}
	logger.Info("match saved", "id", id)
	return nil
}
