package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/gamemap"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

var (
	flagMapsFile    string
	flagMapsDir     string
	flagMapsPreview bool
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List wall maps",
	Long: `Lists the preset maps, or the maps found in a directory of YAML files.
With --file a single map file is validated and its walls are listed.

Map files look like:

  name: zigzag
  border: true        # add the default border walls (default)
  safe_walls:
    - {center_x: 30, center_y: 40, width: 20, height: 4}
  trap_walls:
    - {center_x: 70, center_y: 60, width: 10, height: 4}

Examples:
  pong maps
  pong maps --preview
  pong maps --dir ./maps
  pong maps --file ./maps/zigzag.yaml --preview`,
	Args: cobra.NoArgs,
	RunE: runMaps,
}

func init() {
	mapsCmd.Flags().StringVar(&flagMapsFile, "file", "", "Validate and describe a single map file")
	mapsCmd.Flags().StringVar(&flagMapsDir, "dir", "", "List every map file below this directory")
	mapsCmd.Flags().BoolVar(&flagMapsPreview, "preview", false, "Draw each map")
}

func runMaps(cmd *cobra.Command, args []string) error {
	var maps []*gamemap.Map

	switch {
	case flagMapsFile != "":
		m, err := gamemap.LoadFile(flagMapsFile)
		if err != nil {
			return err
		}
		printWalls(m)
		if flagMapsPreview {
			fmt.Println(previewMap(m))
		}
		return nil

	case flagMapsDir != "":
		loaded, err := gamemap.NewLoader(flagMapsDir).LoadAll()
		if err != nil {
			return err
		}
		maps = loaded

	default:
		for _, name := range gamemap.PresetNames() {
			m, err := gamemap.Preset(name)
			if err != nil {
				return err
			}
			maps = append(maps, m)
		}
	}

	if len(maps) == 0 {
		fmt.Println("No maps found.")
		return nil
	}

	maxNameLen := 4 // "Name" header
	for _, m := range maps {
		maxNameLen = max(maxNameLen, len(m.Name))
	}

	fmt.Printf("  %-*s  %-5s  %s\n", maxNameLen, "Name", "Safe", "Trap")
	fmt.Printf("  %-*s  %-5s  %s\n", maxNameLen, "----", "----", "----")
	for _, m := range maps {
		fmt.Printf("  %-*s  %-5d  %d\n", maxNameLen, m.Name,
			len(m.WallsByType(gamemap.WallSafe)), len(m.WallsByType(gamemap.WallTrap)))
		if flagMapsPreview {
			fmt.Println(previewMap(m))
		}
	}
	return nil
}

func printWalls(m *gamemap.Map) {
	fmt.Printf("Map %q: %d walls\n\n", m.Name, m.Len())
	fmt.Printf("  %-4s  %-6s  %-8s  %-8s  %s\n", "Type", "Side", "Center", "Size", "World center")
	for _, w := range m.AllWalls() {
		c := w.WorldCenter()
		fmt.Printf("  %-4s  %-6s  %-8s  %-8s  (%.0f, %.0f)\n",
			w.Type, w.Side(),
			fmt.Sprintf("%g,%g", w.CenterX, w.CenterY),
			fmt.Sprintf("%dx%d", w.Width, w.Height),
			c.X(), c.Y())
	}
	fmt.Println()
}

// previewMap draws the map with paddles and ball at their start positions.
func previewMap(m *gamemap.Map) string {
	cfg := config.DefaultPongConfig()
	cfg.Gameplay.AutoServe = false

	g := pong.New(pong.Options{Config: &cfg, Map: m})
	g.Reset(core.RuntimeConfig{ScreenW: 50, ScreenH: 26, TickRate: 60, Seed: 1})

	screen := core.NewScreen(50, 26)
	g.Render(screen)
	return screen.String()
}
