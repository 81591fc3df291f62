package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Summarize a replay file",
	Long: `Reads a replay written by 'pong play --record' or 'pong sim --record'
and prints the match header, the final state and event counts.

Examples:
  pong replay match.pongrec`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	s, err := replay.Summarize(args[0])
	if err != nil {
		return err
	}

	h := s.Header
	fmt.Printf("Mode:     %s\n", h.GameID)
	fmt.Printf("Map:      %s\n", h.Map)
	fmt.Printf("Seed:     %d\n", h.Seed)
	fmt.Printf("Frames:   %d at %d fps (%.1fs simulated)\n", s.Frames, h.TickRate, s.Duration)
	fmt.Printf("Score:    %d - %d\n", s.Final.Score1, s.Final.Score2)
	if s.Final.GameOver {
		fmt.Printf("Winner:   %s\n", s.Final.Winner)
	}

	if len(s.Events) == 0 {
		return nil
	}
	kinds := make([]pong.EventKind, 0, len(s.Events))
	for k := range s.Events {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	fmt.Println()
	fmt.Println("Events:")
	for _, k := range kinds {
		fmt.Printf("  %-14s %d\n", k, s.Events[k])
	}
	return nil
}
