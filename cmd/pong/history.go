package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagLimit  int
	flagPlayer string
	flagTUI    bool
	flagClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded matches",
	Long: `Display the most recent matches, optionally for one player together
with their wins, losses and points.

Examples:
  pong history
  pong history --player alice --limit 50
  pong history --tui
  pong history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of matches to show")
	historyCmd.Flags().StringVar(&flagPlayer, "player", "", "Only show matches of this player")
	historyCmd.Flags().BoolVar(&flagTUI, "tui", false, "Browse the history in an interactive table")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded match")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening match database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearMatches(); err != nil {
			return err
		}
		fmt.Println("Match history cleared.")
		return nil
	}

	if flagTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunHistory(store, flagPlayer, width, height)
	}

	var matches []storage.MatchRecord
	if flagPlayer == "" {
		fmt.Println("Recent matches")
		matches, err = store.RecentMatches(flagLimit)
	} else {
		fmt.Printf("Matches of %s\n", flagPlayer)
		matches, err = store.PlayerMatches(flagPlayer, flagLimit)
	}
	if err != nil {
		return err
	}
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pong play' or run 'pong sim' to record the first one!")
		return nil
	}

	fmt.Printf("  %-5s  %-8s  %-8s  %-20s  %-5s  %-8s  %s\n", "ID", "Mode", "Map", "Players", "Score", "Winner", "Date")
	fmt.Printf("  %-5s  %-8s  %-8s  %-20s  %-5s  %-8s  %s\n", "--", "----", "---", "-------", "-----", "------", "----")
	for _, m := range matches {
		winner := m.Winner
		if m.EndReason == storage.EndAbandoned {
			winner = "-"
		}
		fmt.Printf("  %-5d  %-8s  %-8s  %-20s  %-5s  %-8s  %s\n",
			m.ID, m.GameID, m.MapName,
			m.Player1+" v "+m.Player2,
			fmt.Sprintf("%d:%d", m.Score1, m.Score2),
			winner,
			m.CreatedAt.Format("2006-01-02 15:04"))
	}

	if flagPlayer != "" {
		stats, err := store.PlayerStats(flagPlayer)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Printf("%d matches, %d wins, %d losses, points %d:%d\n",
			stats.Matches, stats.Wins, stats.Losses, stats.PointsFor, stats.PointsAgainst)
	}
	return nil
}
