package game

import (
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	screenW = 960
	screenH = 960

	// hudScale is the integer upscale factor applied to all HUD text.
	hudScale = 3
)

// App is the windowed front-end: it owns the frame clock, translates raw
// keys into named input actions, runs the engine, and renders its output.
// The simulation itself never touches ebiten; App is the presentation
// collaborator around a headless Engine.
type App struct {
	engine *Engine
	tun    *Tuning

	lastFrame time.Time
	started   bool
	prevKeys  map[ebiten.Key]bool

	// Camera pan state for follow mode.
	camX, camZ float64

	// Offscreen buffer for HUD text, rendered at 1x then blitted at hudScale.
	hudBuf *ebiten.Image

	statusMsg    string
	statusFrames int
}

// NewApp creates the windowed game around a fresh engine.
func NewApp(tun *Tuning, seed int64) *App {
	return &App{
		engine:   NewEngine(tun, seed, NewSimLog(false)),
		tun:      tun,
		prevKeys: make(map[ebiten.Key]bool),
		hudBuf:   ebiten.NewImage(screenW/hudScale, screenH/hudScale),
	}
}

// Update advances the simulation by the elapsed wall-clock time. Input is
// handled every frame regardless of phase so pause and restart always work.
func (app *App) Update() error {
	now := time.Now()
	if !app.started {
		app.lastFrame = now
		app.started = true
	}
	deltaMs := float64(now.Sub(app.lastFrame)) / float64(time.Millisecond)
	app.lastFrame = now

	app.handleInput()
	app.engine.Advance(deltaMs)

	if app.statusFrames > 0 {
		app.statusFrames--
	}
	return nil
}

// Layout reports the fixed logical screen size.
func (app *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

// keyJustPressed is edge-triggered key detection: true only on the frame the
// key goes down. This is the input collaborator's key-repeat suppression.
func (app *App) keyJustPressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := app.prevKeys[k]
	app.prevKeys[k] = down
	return down && !was
}

func (app *App) handleInput() {
	left := app.keyJustPressed(ebiten.KeyArrowLeft)
	keyA := app.keyJustPressed(ebiten.KeyA)
	right := app.keyJustPressed(ebiten.KeyArrowRight)
	keyD := app.keyJustPressed(ebiten.KeyD)
	space := app.keyJustPressed(ebiten.KeySpace)
	cam := app.keyJustPressed(ebiten.KeyV)
	pause := app.keyJustPressed(ebiten.KeyP)
	confirm := app.keyJustPressed(ebiten.KeyEnter)
	report := app.keyJustPressed(ebiten.KeyC)

	if left || keyA {
		app.engine.Apply(ActionTurnLeft)
	}
	if right || keyD {
		app.engine.Apply(ActionTurnRight)
	}
	if space {
		app.engine.Apply(ActionJump)
	}
	if cam {
		app.engine.Apply(ActionToggleCamera)
	}
	if pause {
		app.engine.Apply(ActionPause)
	}
	if confirm {
		app.engine.Apply(ActionConfirm)
	}
	if report {
		app.copyReport()
	}
}

// copyReport puts the round debug report on the system clipboard.
func (app *App) copyReport() {
	text := BuildRoundReport(app.engine, 40)
	if err := clipboard.WriteAll(text); err != nil {
		log.Printf("clipboard copy failed: %v", err)
		app.setStatus("clipboard copy failed")
		return
	}
	app.setStatus("report copied to clipboard")
}

func (app *App) setStatus(msg string) {
	app.statusMsg = msg
	app.statusFrames = 180 // ~3s at 60fps
}
