package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/gamemap"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/replay"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMap        string
	flagMapFile    string
	flagPowerUps   bool
	flagWinScore   int
	flagRecord     string
	flagPlayer1    string
	flagPlayer2    string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a match",
	Long: `Start a Pong match in the terminal. The mode is "pong" for two players
on one keyboard (default) or "pong-cpu" against the computer.

Controls:
  A/D        - Player 1 left/right     W  - Player 1 power-up
  Left/Right - Player 2 left/right     Up - Player 2 power-up
  Space      - Serve
  X          - Replace a stuck ball
  P/Esc      - Pause
  R          - Restart (after match over)
  ?          - More keys
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower ball, no speed-up during rallies
  normal - Ball speeds up as the match goes on
  hard   - Fast ball from the first serve
  fixed  - No progression, stays at config's serve speed

Examples:
  pong play
  pong play pong-cpu --difficulty hard
  pong play --map pillars --power-ups --win-score 7
  pong play --map-file ./maps/zigzag.yaml --record match.pongrec`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay of the first match to this file")
	playCmd.Flags().StringVar(&flagPlayer1, "p1", "", "Player 1 name for match history")
	playCmd.Flags().StringVar(&flagPlayer2, "p2", "", "Player 2 name for match history")
}

// addGameFlags registers the match setup flags shared by play and sim.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagMap, "map", gamemap.DefaultPreset, "Preset map name (see 'pong maps')")
	cmd.Flags().StringVar(&flagMapFile, "map-file", "", "Load the map from a YAML file instead of a preset")
	cmd.Flags().BoolVar(&flagPowerUps, "power-ups", false, "Grant power-ups at the start of each match")
	cmd.Flags().IntVar(&flagWinScore, "win-score", 0, "Points needed to win (0 = config value)")
}

// configureGame applies the command line to games created through the registry.
func configureGame(cmd *cobra.Command) (*gamemap.Map, error) {
	if flagDifficulty != "" {
		if _, err := config.ParseDifficultyPreset(flagDifficulty); err != nil {
			return nil, err
		}
	}

	m, err := gamemap.Resolve(flagMap, flagMapFile)
	if err != nil {
		return nil, err
	}

	pong.SetConfigPath(flagConfig)
	pong.SetDifficultyPreset(flagDifficulty)
	pong.SetMap(m)
	if cmd.Flags().Changed("power-ups") {
		pong.SetPowerUps(flagPowerUps)
	}
	pong.SetWinScore(flagWinScore)
	return m, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	mode := pong.ModeVersus
	if len(args) == 1 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown game mode %q, run 'pong list' to see available modes", mode)
	}

	m, err := configureGame(cmd)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	game, err := registry.Create(mode)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// The game still works without storage.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open match database", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{
		Player1: flagPlayer1,
		Player2: flagPlayer2,
		CPU:     mode == pong.ModeCPU,
		Logger:  logger,
	}
	if flagRecord != "" {
		rec, err := replay.Create(flagRecord, replay.Header{
			GameID:   mode,
			Map:      m.Name,
			Seed:     cfg.Seed,
			TickRate: cfg.TickRate,
		})
		if err != nil {
			return err
		}
		opts.Recorder = rec
	}

	logger.Info("starting match", "mode", mode, "map", m.Name, "seed", cfg.Seed)
	if err := tui.Run(game, store, cfg, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
