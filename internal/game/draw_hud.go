package game

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	hudCharW = 6  // debug font char width at 1x
	hudLineH = 12 // debug font line height at 1x
)

// drawHUD renders scores, phase overlays, and transient status messages into
// the offscreen HUD buffer at 1x, then blits it scaled so the debug font
// stays crisp.
func (app *App) drawHUD(screen *ebiten.Image) {
	app.hudBuf.Clear()
	s := app.engine.State()

	ebitenutil.DebugPrintAt(app.hudBuf, app.scoreLine(), 4, 2)
	ebitenutil.DebugPrintAt(app.hudBuf, "arrows/AD turn  space jump  V camera  P pause  C report", 4, 16)

	switch s.Phase {
	case PhaseCountdown:
		if s.Countdown > 0 {
			app.centerText(fmt.Sprintf("%d", s.Countdown), -1)
		} else {
			app.centerText("GO", -1)
		}
	case PhasePaused:
		app.centerText("PAUSED", -1)
	case PhaseGameOver:
		if w := s.Agent(s.Winner); w != nil {
			app.centerText(w.Label()+" WINS", -2)
		} else {
			app.centerText("DRAW", -2)
		}
		if s.IsAutonomousMode {
			app.centerText("next round shortly...", 0)
		} else {
			app.centerText("press enter to restart", 0)
		}
	}

	if app.statusFrames > 0 && app.statusMsg != "" {
		lastLine := screenH/hudScale/hudLineH - 2
		app.centerTextAtLine(app.statusMsg, lastLine)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(app.hudBuf, opts)
}

// centerText draws a line horizontally centred in the HUD buffer, offset from
// the vertical centre by dy lines.
func (app *App) centerText(str string, dy int) {
	bufH := screenH / hudScale
	line := bufH / 2 / hudLineH
	app.centerTextAtLine(str, line+dy)
}

func (app *App) centerTextAtLine(str string, line int) {
	bufW := screenW / hudScale
	x := (bufW - len(str)*hudCharW) / 2
	ebitenutil.DebugPrintAt(app.hudBuf, str, x, line*hudLineH)
}

// scoreLine formats the running score tally, e.g. "P0:2  A1:0  A2:1  A3:0".
func (app *App) scoreLine() string {
	s := app.engine.State()
	parts := make([]string, 0, len(s.Agents))
	for _, a := range s.Agents {
		parts = append(parts, fmt.Sprintf("%s:%d", a.Label(), s.Scores[a.ID]))
	}
	return strings.Join(parts, "  ")
}
