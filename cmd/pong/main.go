// pong is a terminal Pong game built on a small deterministic 2D physics
// engine.
//
// Usage:
//
//	pong list                 - List game modes
//	pong play [mode]          - Play a match in the terminal
//	pong sim                  - Run a headless CPU match
//	pong maps                 - List wall maps
//	pong history              - Show recorded matches
//	pong replay <file>        - Summarize a recorded replay
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible matches
//	--db <path>          - Set database path (default: ~/.pong/matches.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

// logger is configured from the global flags before any command runs.
var logger = log.New(os.Stderr)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "TUI Pong - two paddles, one ball, your terminal",
	Long: `TUI Pong is a terminal Pong game with wall maps, power-ups,
a CPU opponent and recorded match history.

Available commands:
  list     - Show game modes
  play     - Play a match
  sim      - Run a headless CPU match
  maps     - List wall maps
  history  - View recorded matches
  replay   - Summarize a replay file

Examples:
  pong play
  pong play pong-cpu --map pillars --power-ups
  pong sim --ticks 7200 --events
  pong history --player alice`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger(cmd == playCmd)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pong/matches.db", "Path to match database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(replayCmd)
}

// setupLogger applies the logging flags. The terminal UI owns the screen,
// so play discards logs unless a log file is given.
func setupLogger(playing bool) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
	case playing:
		w = io.Discard
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pong",
		Level:           level,
	})
	pong.SetLogger(logger)
	return nil
}
