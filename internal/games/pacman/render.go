package pacman

import (
	"fmt"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
)

// HUDHeight is the number of terminal rows above the arena.
const HUDHeight = 2

// Layout maps arena pixels onto screen cells.
type Layout struct {
	OriginX    int // Screen column of arena pixel x=0
	OriginY    int // Screen row of arena pixel y=0
	CellWidth  int // Pixels per column
	CellHeight int // Pixels per row
}

// TerminalLayout sizes the arena to fill a cols x rows terminal below the HUD.
func TerminalLayout(cols, rows int, arena config.PacmanArena) (Bounds, Layout) {
	layout := Layout{
		OriginX:    0,
		OriginY:    HUDHeight,
		CellWidth:  arena.CellWidth,
		CellHeight: arena.CellHeight,
	}
	bounds := Bounds{
		Width:  cols * arena.CellWidth,
		Height: (rows - HUDHeight) * arena.CellHeight,
	}
	return bounds, layout
}

// Glyphs
const (
	glyphCoin   = '•'
	glyphCherry = '♦'
	glyphEnemy  = 'ᗣ'
	glyphDead   = '✕'
)

// DrawSnapshot draws the field: coins, cherries, enemies, then the player.
// Consumed entities are not drawn.
func DrawSnapshot(dst *core.Screen, snap Snapshot, layout Layout) {
	if layout.CellWidth <= 0 || layout.CellHeight <= 0 {
		return
	}

	for _, c := range snap.Coins {
		drawEntity(dst, c, layout)
	}
	for _, c := range snap.Cherries {
		drawEntity(dst, c, layout)
	}
	for _, e := range snap.Enemies {
		drawEntity(dst, e, layout)
	}

	p := snap.Player
	glyph := playerGlyph(p.Facing.Orientation())
	color := core.ColorBrightYellow
	if p.Consumed {
		glyph, color = glyphDead, core.ColorGray
	}
	dst.DrawRect(cellRect(p.Pos, p.Size, layout), glyph, color)
}

func drawEntity(dst *core.Screen, e Entity, layout Layout) {
	if e.Consumed {
		return
	}
	glyph, color := skinStyle(e.Skin)
	dst.DrawRect(cellRect(e.Pos, e.Size, layout), glyph, color)
}

// cellRect converts a pixel hitbox into the screen cells it covers.
// Every entity covers at least one cell.
func cellRect(pos Point, size Size, layout Layout) core.Rect {
	x0 := pos.X / layout.CellWidth
	y0 := pos.Y / layout.CellHeight
	x1 := max(core.CeilDiv(pos.X+size.W, layout.CellWidth), x0+1)
	y1 := max(core.CeilDiv(pos.Y+size.H, layout.CellHeight), y0+1)
	return core.Rect{X: layout.OriginX + x0, Y: layout.OriginY + y0, W: x1 - x0, H: y1 - y0}
}

func skinStyle(s Skin) (rune, core.Color) {
	switch s {
	case SkinCoin:
		return glyphCoin, core.ColorYellow
	case SkinCherry:
		return glyphCherry, core.ColorRed
	case SkinEnemyRed:
		return glyphEnemy, core.ColorBrightRed
	case SkinEnemyBlue:
		return glyphEnemy, core.ColorBrightCyan
	case SkinEnemyVulnerable:
		return glyphEnemy, core.ColorBlue
	default:
		return '?', core.ColorDefault
	}
}

// playerGlyph picks a sprite whose mouth opens toward the facing direction.
func playerGlyph(o Orientation) rune {
	switch {
	case o.Mirror:
		return 'ᗤ'
	case o.Angle == 90:
		return 'Λ'
	case o.Angle == -90:
		return 'V'
	default:
		return 'ᗧ'
	}
}

// StatusLine returns the end-of-game message, or "" while the game is on.
func StatusLine(snap Snapshot) string {
	switch {
	case snap.Won:
		return fmt.Sprintf("Level completed! Points: %d", snap.Score)
	case snap.Over:
		return fmt.Sprintf("You lost. Points: %d of %d", snap.Score, snap.MaxScore)
	default:
		return ""
	}
}

// ReasonText describes why the game ended.
func ReasonText(r Reason) string {
	switch r {
	case ReasonCleared:
		return "Every point collected"
	case ReasonTimeout:
		return "Time is up"
	case ReasonCaptured:
		return "Caught by a ghost"
	default:
		return ""
	}
}

// RenderFrame draws a full frame: HUD, field and any overlay.
func RenderFrame(dst *core.Screen, snap Snapshot, layout Layout, paused bool) {
	renderHUD(dst, snap)
	DrawSnapshot(dst, snap, layout)

	switch {
	case snap.Over:
		lines := []string{StatusLine(snap)}
		if reason := ReasonText(snap.Reason); reason != "" {
			lines = append(lines, reason)
		}
		lines = append(lines, "Press R for a new game")
		drawOverlay(dst, lines...)
	case paused:
		drawOverlay(dst, "PAUSED", "Press P to resume")
	case snap.Phase == PhaseNotStarted:
		drawOverlay(dst, "PAC-MAN", "Press R to start")
	}
}

func renderHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawTextColored(1, 0, "PAC-MAN", core.ColorBrightYellow)

	score := fmt.Sprintf("Points: %d/%d", snap.Score, snap.MaxScore)
	dst.DrawText((dst.Width()-len(score))/2, 0, score)

	timer := fmt.Sprintf("Time: %2ds", snap.RemainingSeconds)
	color := core.ColorDefault
	if snap.RemainingSeconds <= 5 {
		color = core.ColorBrightRed
	}
	dst.DrawTextColored(dst.Width()-len(timer)-1, 0, timer, color)

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// RenderTooSmall shows a resize hint in place of the arena.
func RenderTooSmall(dst *core.Screen, reason string) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, "Please resize terminal")
	if reason != "" {
		dst.DrawTextCentered(y+1, reason)
	}
}

// drawOverlay draws a boxed message in the middle of the screen.
func drawOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.Rect{X: (dst.Width() - boxW) / 2, Y: (dst.Height() - boxH) / 2, W: boxW, H: boxH}

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	for i, line := range lines {
		dst.DrawTextCentered(box.Y+1+i, line)
	}
}
