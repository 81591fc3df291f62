package pong

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/gamemap"
	"github.com/vovakirdan/tui-pong/internal/physics"
)

// Visual characters for rendering
const (
	SafeWallChar = '█'
	TrapWallChar = '▒'
	PaddleChar   = '▀'
	BallChar     = '●'
	NetChar      = '┄'
)

var paddleColors = [2]core.Color{core.ColorCyan, core.ColorMagenta}

// Field returns the screen area the field is drawn in: everything below the
// HUD row, at most twice as wide as tall since cells are about 1:2.
func Field(screen core.Rect) core.Rect {
	h := max(screen.H-1, 1)
	w := min(screen.W, h*2)
	return core.NewRect(screen.X+(screen.W-w)/2, screen.Y+1, w, h)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	vp := core.NewViewport(Field(dst.Bounds()), gamemap.HalfSize)

	mid := vp.Row(0)
	for x := vp.Area.X; x < vp.Area.Right(); x += 2 {
		dst.SetColored(x, mid, NetChar, core.ColorGray)
	}

	for _, h := range g.walls {
		e, ok := g.world.Lookup(h)
		if !ok {
			continue
		}
		r := project(vp, e)
		if tagOf(e).WallType == gamemap.WallTrap {
			dst.FillRect(r, TrapWallChar, core.ColorRed)
		} else {
			dst.FillRect(r, SafeWallChar, core.ColorGray)
		}
	}

	for i, h := range g.paddles {
		e, ok := g.world.Lookup(h)
		if !ok {
			continue
		}
		c := paddleColors[i]
		if g.hitEffect[i] > 0 {
			c = c.Bright()
		}
		if g.active != nil && g.active.Target == i {
			c = core.ColorOrange
		}
		dst.FillRect(project(vp, e), PaddleChar, c)
	}

	if e, ok := g.world.Lookup(g.ball); ok {
		// Blink while the ball waits to launch.
		if g.rally != RallyPreparing || int(g.world.Elapsed()*5)%2 == 0 {
			dst.SetColored(vp.Col(e.MidX()), vp.Row(e.MidY()), BallChar, core.ColorYellow)
		}
	}

	g.drawHUD(dst)

	switch {
	case g.gameOver:
		g.drawCenteredMessage(dst, fmt.Sprintf("%s WINS!", g.winner),
			fmt.Sprintf("%d - %d  |  Press R to restart", g.scores[0], g.scores[1]))
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case g.stuck:
		dst.DrawTextCentered(mid, " Ball stuck - press X to reset ")
	case g.rally == RallyIdle:
		dst.DrawTextCentered(mid, " Press SPACE to serve ")
	}
}

func project(vp core.Viewport, e physics.Entity) core.Rect {
	return vp.Project(e.Position.X(), e.Position.Y(), e.Width(), e.Height())
}

func (g *Game) drawHUD(dst *core.Screen) {
	left := fmt.Sprintf("P1 %d", g.scores[0])
	dst.DrawTextColored(1, 0, left, paddleColors[0])

	right := fmt.Sprintf("%d P2", g.scores[1])
	if g.opts.CPU {
		right = fmt.Sprintf("%d CPU", g.scores[1])
	}
	dst.DrawTextColored(dst.Width()-len(right)-1, 0, right, paddleColors[1])

	center := fmt.Sprintf("first to %d", g.cfg.Gameplay.WinScore)
	if g.m != nil && g.m.Name != "" {
		center = g.m.Name + " | " + center
	}
	if g.cfg.PowerUps.Enabled {
		center += " | " + g.powerUpSummary()
	}
	dst.DrawTextCentered(0, center)
}

func (g *Game) powerUpSummary() string {
	if g.active != nil {
		return fmt.Sprintf("%s: %s %.1fs", g.active.Owner, g.active.Kind.Label(), g.active.remaining)
	}
	parts := make([]string, 0, 2)
	for i, kinds := range g.granted {
		next := "-"
		if len(kinds) > 0 {
			next = kinds[0].Label()
		}
		parts = append(parts, fmt.Sprintf("%s %s x%d", core.PlayerByIndex(i), next, len(kinds)))
	}
	return strings.Join(parts, " / ")
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
