package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// agentColors maps agent id to its trail/cycle colour. The player is cyan.
var agentColors = [4]color.RGBA{
	{R: 60, G: 220, B: 255, A: 255},  // cyan, player
	{R: 255, G: 150, B: 40, A: 255},  // orange
	{R: 120, G: 255, B: 100, A: 255}, // green
	{R: 220, G: 90, B: 255, A: 255},  // purple
}

var (
	floorColor    = color.RGBA{R: 8, G: 10, B: 18, A: 255}
	gridLineColor = color.RGBA{R: 24, G: 32, B: 52, A: 255}
	boundaryColor = color.RGBA{R: 90, G: 140, B: 255, A: 255}
)

// gridSpacing is the world-unit spacing of the cosmetic floor grid.
const gridSpacing = 8.0

// camera converts world coordinates to screen pixels for the current camera
// mode: a fixed overview of the whole arena, or a zoomed follow view panned
// toward the player's interpolated position.
type camera struct {
	cx, cz float64 // world point at the screen centre
	scale  float64 // pixels per world unit
}

func (app *App) currentCamera() camera {
	s := app.engine.State()
	if s.CameraMode == CameraFollow {
		if p := s.Player(); p != nil {
			pos, _ := app.engine.RenderPose(p.ID, app.engine.Alpha())
			// Ease the pan so camera toggles don't snap.
			app.camX += (pos.X - app.camX) * 0.15
			app.camZ += (pos.Z - app.camZ) * 0.15
			return camera{cx: app.camX, cz: app.camZ, scale: 14}
		}
	}
	return camera{cx: 0, cz: 0, scale: float64(screenW) / (2 * (app.tun.ArenaHalf + 4))}
}

func (c camera) toScreen(p Vec2) (float32, float32) {
	x := (p.X-c.cx)*c.scale + screenW/2
	z := (p.Z-c.cz)*c.scale + screenH/2
	return float32(x), float32(z)
}

// Draw renders the arena, trails, cycles, and HUD.
func (app *App) Draw(screen *ebiten.Image) {
	screen.Fill(floorColor)
	cam := app.currentCamera()

	app.drawFloorGrid(screen, cam)
	app.drawBoundary(screen, cam)

	alpha := app.engine.Alpha()
	for _, a := range app.engine.State().Agents {
		app.drawTrail(screen, cam, a)
	}
	for _, a := range app.engine.State().Agents {
		if a.IsAlive {
			app.drawCycle(screen, cam, a, alpha)
		}
	}

	app.drawHUD(screen)
}

func (app *App) drawFloorGrid(screen *ebiten.Image, cam camera) {
	half := app.tun.ArenaHalf
	for g := -half; g <= half; g += gridSpacing {
		x0, z0 := cam.toScreen(Vec2{g, -half})
		x1, z1 := cam.toScreen(Vec2{g, half})
		vector.StrokeLine(screen, x0, z0, x1, z1, 1, gridLineColor, false)
		x0, z0 = cam.toScreen(Vec2{-half, g})
		x1, z1 = cam.toScreen(Vec2{half, g})
		vector.StrokeLine(screen, x0, z0, x1, z1, 1, gridLineColor, false)
	}
}

func (app *App) drawBoundary(screen *ebiten.Image, cam camera) {
	half := app.tun.ArenaHalf
	x0, z0 := cam.toScreen(Vec2{-half, -half})
	x1, z1 := cam.toScreen(Vec2{half, half})
	vector.StrokeRect(screen, x0, z0, x1-x0, z1-z0, 2, boundaryColor, false)
}

func (app *App) drawTrail(screen *ebiten.Image, cam camera, a *AgentState) {
	col := agentColors[a.ID%len(agentColors)]
	if !a.IsAlive {
		// Dead cycles' walls stay lethal; render them dimmed, not gone.
		col.R = col.R / 2
		col.G = col.G / 2
		col.B = col.B / 2
	}
	width := float32(math.Max(app.tun.TrailWidth*cam.scale, 1.5))
	for _, seg := range a.Trail {
		x0, z0 := cam.toScreen(seg.Start)
		x1, z1 := cam.toScreen(seg.End)
		vector.StrokeLine(screen, x0, z0, x1, z1, width, col, false)
	}
}

// drawCycle renders an agent as a filled disc with a heading line. A jumping
// cycle lifts off: the body shifts up-screen with its arc height while a
// shadow stays on the floor.
func (app *App) drawCycle(screen *ebiten.Image, cam camera, a *AgentState, alpha float64) {
	pos, angle := app.engine.RenderPose(a.ID, alpha)
	cx, cz := cam.toScreen(pos)
	col := agentColors[a.ID%len(agentColors)]

	height := app.engine.JumpOffset(a.ID)
	if height > 0 {
		shadow := color.RGBA{R: 0, G: 0, B: 0, A: 120}
		vector.FillCircle(screen, cx, cz, float32(app.tun.AgentRadius*cam.scale*1.5), shadow, true)
		cz -= float32(height * cam.scale * 0.6)
	}

	radius := float32(math.Max(app.tun.AgentRadius*cam.scale*2, 4))
	vector.FillCircle(screen, cx, cz, radius, col, true)

	// White outline marks the player's cycle.
	if a.IsPlayer {
		vector.StrokeCircle(screen, cx, cz, radius+2, 1.0,
			color.RGBA{R: 255, G: 255, B: 255, A: 200}, true)
	}

	// Heading line; angle 0 points up-screen.
	hLen := float64(radius) * 2.0
	hx := cx + float32(math.Sin(angle)*hLen)
	hz := cz + float32(-math.Cos(angle)*hLen)
	vector.StrokeLine(screen, cx, cz, hx, hz, 2, col, true)
}
