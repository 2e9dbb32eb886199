package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/egodrive/components"
	"github.com/pthm-cable/egodrive/scene"
	"github.com/pthm-cable/egodrive/ui"
)

// World layout.
const (
	groundSize = 200.0 // m
	gridStep   = 10.0  // m
	axisLength = 100.0 // m
	wheelAxis  = 0.6   // m, wheel frame gizmo length
)

var (
	skyColor    = rl.Color{R: 135, G: 170, B: 200, A: 255}
	groundColor = rl.Color{R: 90, G: 120, B: 80, A: 255}
	trailColor  = rl.Color{R: 255, G: 200, B: 0, A: 255}
)

// toRL maps a Z-up world vector onto raylib's Y-up frame.
func toRL(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Z), Z: float32(-v.Y)}
}

func tint(t components.Tint) rl.Color {
	return rl.Color{R: t.R, G: t.G, B: t.B, A: t.A}
}

// syncCamera points the raylib camera along the orbit.
func (g *Game) syncCamera() {
	if g.headless {
		return
	}
	g.camera.Position = toRL(g.last.Camera.Eye)
	g.camera.Target = toRL(g.last.Camera.Focus)
}

// Draw renders the frame.
func (g *Game) Draw() {
	g.session.Perf().RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(skyColor)

	rl.BeginMode3D(g.camera)
	g.drawGround()
	g.scene.Each(drawDrawable)
	g.drawActiveOverlays()
	rl.EndMode3D()

	g.drawUI()

	rl.EndDrawing()
}

// drawGround draws the ground plane under the grid.
func (g *Game) drawGround() {
	rl.DrawPlane(rl.Vector3{Y: -0.01}, rl.Vector2{X: groundSize, Y: groundSize}, groundColor)
}

// drawActiveOverlays renders all currently enabled overlays.
func (g *Game) drawActiveOverlays() {
	for _, id := range g.uiOverlays.EnabledOverlays() {
		switch id {
		case ui.OverlayGrid:
			rl.DrawGrid(int32(groundSize/gridStep), gridStep)
		case ui.OverlayAxes:
			drawAxes(components.Identity(), axisLength)
		case ui.OverlayTrail:
			g.drawTrail()
		case ui.OverlayWheelAxes:
			g.scene.Each(func(d scene.Drawable) {
				if d.Entity.Kind == components.KindWheel {
					drawAxes(d.Transform, wheelAxis)
				}
			})
		case ui.OverlayCameraFocus:
			rl.DrawSphere(toRL(g.last.Camera.Focus), 0.15, rl.Yellow)
			rl.DrawLine3D(toRL(g.last.Camera.Focus), toRL(r3.Vec{X: g.last.State.X, Y: g.last.State.Y}), rl.Yellow)
		}
	}
}

// drawAxes draws the X (red), Y (green) and Z (blue) axes of a transform.
func drawAxes(t components.Transform, length float64) {
	origin := toRL(t.Position)
	for _, a := range []struct {
		dir   r3.Vec
		color rl.Color
	}{
		{r3.Vec{X: 1}, rl.Red},
		{r3.Vec{Y: 1}, rl.Green},
		{r3.Vec{Z: 1}, rl.Blue},
	} {
		end := r3.Add(t.Position, r3.Scale(length, t.Rotation.Rotate(a.dir)))
		rl.DrawLine3D(origin, toRL(end), a.color)
	}
}

// drawTrail draws the recent rear axle path just above the ground.
func (g *Game) drawTrail() {
	for i := 1; i < len(g.trail); i++ {
		a, b := g.trail[i-1], g.trail[i]
		a.Z, b.Z = 0.02, 0.02
		rl.DrawLine3D(toRL(a), toRL(b), trailColor)
	}
}

// drawDrawable draws one scene entity. The matrix stack composes the world
// transform (rotated into raylib's frame) with the model-to-world flip, so
// primitives are drawn in model coordinates.
func drawDrawable(d scene.Drawable) {
	t, s := d.Transform, d.Shape

	rl.PushMatrix()
	p := toRL(t.Position)
	rl.Translatef(p.X, p.Y, p.Z)
	if angle, axis := scene.AxisAngle(t.Rotation); angle != 0 {
		a := toRL(axis)
		rl.Rotatef(float32(angle*180/math.Pi), a.X, a.Y, a.Z)
	}
	rl.Rotatef(-90, 1, 0, 0)

	color := tint(s.Tint)
	switch s.Kind {
	case components.ShapeBox:
		x, y, z := float32(s.Size.X), float32(s.Size.Y), float32(s.Size.Z)
		rl.DrawCube(rl.Vector3{}, x, y, z, color)
		if s.Wire {
			rl.DrawCubeWires(rl.Vector3{}, x, y, z, rl.Black)
		}
	case components.ShapeCylinder:
		// Size.X is the radius, Size.Y the width along the model Y axis.
		r, w := float32(s.Size.X), float32(s.Size.Y)
		base := rl.Vector3{Y: -w / 2}
		rl.DrawCylinder(base, r, r, w, 24, color)
		if s.Wire {
			rl.DrawCylinderWires(base, r, r, w, 12, rl.LightGray)
		}
	}

	rl.PopMatrix()
}

// drawUI renders the HUD and panels.
func (g *Game) drawUI() {
	title := "egodrive"
	if mode, ok := g.hud.Draw(ui.HUDData{
		Title:        title,
		Snap:         g.last,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		ScreenWidth:  g.screenWidth,
		ScreenHeight: g.screenHeight,
	}); ok {
		g.session.SelectMode(mode)
		g.last = g.session.Snapshot()
	}

	g.debugPanel.Draw(ui.DebugData{
		Snap:        g.last,
		MaxSteerDeg: float32(g.cfg.Steering.MaxAngleDeg),
	}, g.screenWidth, g.screenHeight)

	g.helpPanel.Draw(g.uiOverlays)

	if g.uiOverlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.session.Perf().Stats())
	}
}
