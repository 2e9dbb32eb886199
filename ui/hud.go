package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/egodrive/angle"
	"github.com/pthm-cable/egodrive/camera"
	"github.com/pthm-cable/egodrive/sim"
)

// Speedometer scale.
const (
	dialMaxKmh   = 240.0
	dialMajorKmh = 20
	dialMinorKmh = 10
	dialLabelKmh = 40
	dialSweep    = 0.75 * math.Pi // each side of straight up
)

// HUDData holds everything the main HUD shows for a frame.
type HUDData struct {
	Title        string
	Snap         sim.Snapshot
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the driving readouts.
type HUD struct {
	renderer *Renderer
	radius   float32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		radius:   90,
	}
}

// Draw renders the HUD. It returns the camera mode picked with the mode
// buttons, if any.
func (h *HUD) Draw(data HUDData) (camera.Mode, bool) {
	snap := data.Snap

	// Title and status
	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Tick: %d | Time: %.1fs | FPS: %d", snap.Tick, snap.Time, data.FPS), 10, 35, 16, rl.LightGray)
	if data.Paused {
		rl.DrawText("PAUSED", 10, 55, 16, rl.Yellow)
	}

	// Dials at bottom center
	cx := float32(data.ScreenWidth) / 2
	cy := float32(data.ScreenHeight) - h.radius - 20
	h.drawSpeedometer(rl.Vector2{X: cx - h.radius - 10, Y: cy}, snap.SpeedKmh(), snap.OdometerKm())
	h.drawSteeringWheel(rl.Vector2{X: cx + h.radius + 10, Y: cy}, h.radius*0.7, snap.Control.SteeringWheelAngle)
	h.drawPedals(cx-h.radius*2-150, cy-20, float32(snap.Control.Throttle), float32(snap.Control.Brake))

	return h.drawInfo(data)
}

// drawSpeedometer draws a needle dial with the odometer below the speed.
func (h *HUD) drawSpeedometer(center rl.Vector2, kmh, km float64) {
	r := h.radius
	rl.DrawCircleV(center, r, rl.Color{R: 30, G: 30, B: 40, A: 230})
	rl.DrawRing(center, r-3, r+2, 0, 360, 64, rl.Color{R: 80, G: 80, B: 100, A: 255})

	inner, outer := r*0.85, r*0.95
	for v := 0; v <= dialMaxKmh; v += dialMinorKmh {
		dir := dialDirection(float64(v))
		from := inner
		width := float32(2)
		col := rl.White
		if v%dialMajorKmh != 0 {
			from = outer - r*0.05
			width = 1
			col = rl.Gray
		}
		rl.DrawLineEx(along(center, dir, from), along(center, dir, outer), width, col)

		if v%dialLabelKmh == 0 {
			label := fmt.Sprintf("%d", v)
			size := int32(r * 0.15)
			p := along(center, dir, inner-r*0.12)
			w := rl.MeasureText(label, size)
			rl.DrawText(label, int32(p.X)-w/2, int32(p.Y)-size/2, size, rl.White)
		}
	}

	// Needle
	dir := dialDirection(math.Min(math.Max(kmh, 0), dialMaxKmh))
	perp := rl.Vector2{X: -dir.Y, Y: dir.X}
	base := r * 0.03
	tip := along(center, dir, r*0.8)
	b1 := rl.Vector2{X: center.X - dir.X*base*0.5 + perp.X*base, Y: center.Y - dir.Y*base*0.5 + perp.Y*base}
	b2 := rl.Vector2{X: center.X - dir.X*base*0.5 - perp.X*base, Y: center.Y - dir.Y*base*0.5 - perp.Y*base}
	rl.DrawTriangle(tip, b2, b1, rl.Red)
	rl.DrawTriangle(tip, b1, b2, rl.Red)
	rl.DrawCircleV(center, base*0.8, rl.DarkGray)

	speed := fmt.Sprintf("%.0f", kmh)
	size := int32(r * 0.2)
	rl.DrawText(speed, int32(center.X)-rl.MeasureText(speed, size)/2, int32(center.Y-r*0.3), size, rl.White)
	odo := fmt.Sprintf("%.1f km", km)
	size = int32(r * 0.18)
	rl.DrawText(odo, int32(center.X)-rl.MeasureText(odo, size)/2, int32(center.Y+r*0.25), size, rl.Color{R: 200, G: 200, B: 100, A: 255})
}

// dialDirection maps a speed onto the dial: 0 at -135° and the top of the
// scale at +135°, measured clockwise from straight up.
func dialDirection(kmh float64) rl.Vector2 {
	a := -dialSweep + kmh/dialMaxKmh*2*dialSweep
	return rl.Vector2{X: float32(math.Sin(a)), Y: float32(-math.Cos(a))}
}

func along(c, dir rl.Vector2, d float32) rl.Vector2 {
	return rl.Vector2{X: c.X + dir.X*d, Y: c.Y + dir.Y*d}
}

// drawSteeringWheel draws a rim with three spokes turned by the steering
// wheel angle. Positive angles (left) turn counterclockwise on screen.
func (h *HUD) drawSteeringWheel(center rl.Vector2, r float32, wheelAngle float64) {
	rl.DrawRing(center, r*0.85, r, 0, 360, 64, rl.Color{R: 60, G: 60, B: 60, A: 255})
	rl.DrawCircleV(center, r*0.18, rl.Color{R: 50, G: 50, B: 50, A: 255})
	for _, spoke := range []float64{math.Pi / 2, math.Pi * 7 / 6, -math.Pi / 6} {
		a := spoke - wheelAngle
		dir := rl.Vector2{X: float32(math.Cos(a)), Y: float32(math.Sin(a))}
		rl.DrawLineEx(center, along(center, dir, r*0.85), 6, rl.Color{R: 70, G: 70, B: 70, A: 255})
	}
	// Top marker
	top := -math.Pi/2 - wheelAngle
	mark := along(center, rl.Vector2{X: float32(math.Cos(top)), Y: float32(math.Sin(top))}, r*0.92)
	rl.DrawCircleV(mark, r*0.07, rl.Red)

	label := fmt.Sprintf("%.0f°", angle.ToDeg(wheelAngle))
	rl.DrawText(label, int32(center.X)-rl.MeasureText(label, 16)/2, int32(center.Y+r+6), 16, rl.LightGray)
}

// drawPedals draws throttle and brake travel.
func (h *HUD) drawPedals(x, y, throttle, brake float32) {
	gui.ProgressBar(rl.Rectangle{X: x + 60, Y: y, Width: 120, Height: 16}, "Throttle", fmt.Sprintf("%.2f", throttle), throttle, 0, 1)
	gui.ProgressBar(rl.Rectangle{X: x + 60, Y: y + 24, Width: 120, Height: 16}, "Brake", fmt.Sprintf("%.2f", brake), brake, 0, 1)
}

// drawInfo draws the text readout and the camera mode buttons at bottom
// right.
func (h *HUD) drawInfo(data HUDData) (camera.Mode, bool) {
	r := h.renderer
	snap := data.Snap
	st, in := snap.State, snap.Control

	lines := []string{
		fmt.Sprintf("Position: (%.2f, %.2f)", st.X, st.Y),
		fmt.Sprintf("Speed: %.2f m/s (%.1f km/h)", st.V, snap.SpeedKmh()),
		fmt.Sprintf("Theta: %.2f°", snap.HeadingDeg()),
		fmt.Sprintf("Trip Distance: %.2fm", st.S),
		fmt.Sprintf("Throttle: %.2f", in.Throttle),
		fmt.Sprintf("Brake: %.2f", in.Brake),
		fmt.Sprintf("Steer Angle: %.2f°", angle.ToDeg(in.FrontWheelAngle)),
	}

	width := int32(230)
	buttons := int32(3)
	height := int32(len(lines))*r.Theme.LineHeight + r.Theme.LineHeight + buttons*24 + r.Theme.LineHeight + r.Theme.Padding*2
	x := data.ScreenWidth - width - 15
	y := data.ScreenHeight - height - 10
	r.DrawPanel(x, y, width, height)

	ty := y + r.Theme.Padding
	for _, line := range lines {
		rl.DrawText(line, x+r.Theme.Padding, ty, r.Theme.FontSize, r.Theme.ValueColor)
		ty += r.Theme.LineHeight
	}

	rl.DrawText("Camera Mode:", x+r.Theme.Padding, ty, r.Theme.FontSize, r.Theme.LabelColor)
	ty += r.Theme.LineHeight

	picked, ok := snap.Mode, false
	for _, m := range []camera.Mode{camera.FirstPerson, camera.ThirdPerson, camera.OverShoulder} {
		label := m.Label()
		if m == snap.Mode {
			label = "> " + label
		}
		bounds := rl.Rectangle{X: float32(x + r.Theme.Padding), Y: float32(ty), Width: float32(width - r.Theme.Padding*2), Height: 20}
		if gui.Button(bounds, label) && m != snap.Mode {
			picked, ok = m, true
		}
		ty += 24
	}

	rl.DrawText("[F1 or /] Help", x+r.Theme.Padding, ty, r.Theme.FontSize, rl.Gray)
	return picked, ok
}
