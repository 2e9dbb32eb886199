// Pedal and steering response preview - interactive plots with sliders.
//
// Usage: go run ./cmd/curvepreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/egodrive/config"
	"github.com/pthm-cable/egodrive/control"
)

const (
	windowWidth  = 1100
	windowHeight = 760
	graphWidth   = 600
	graphHeight  = 210
	panelX       = graphWidth + 50
	panelWidth   = windowWidth - panelX - 20
	samples      = 200
)

// graph is a plot area with fixed axis ranges.
type graph struct {
	title      string
	x, y       int32
	xMax, yMin float64
	yMax       float64
	xLabel     string
}

func (g graph) point(x, y float64) rl.Vector2 {
	px := float32(g.x) + float32(x/g.xMax)*graphWidth
	py := float32(g.y+graphHeight) - float32((y-g.yMin)/(g.yMax-g.yMin))*graphHeight
	return rl.Vector2{X: px, Y: py}
}

func (g graph) frame() {
	rl.DrawRectangle(g.x, g.y, graphWidth, graphHeight, rl.Color{R: 245, G: 245, B: 245, A: 255})
	rl.DrawRectangleLines(g.x, g.y, graphWidth, graphHeight, rl.DarkGray)
	rl.DrawText(g.title, g.x, g.y-20, 16, rl.DarkGray)
	rl.DrawText(g.xLabel, g.x+graphWidth-rl.MeasureText(g.xLabel, 12), g.y+graphHeight+4, 12, rl.Gray)
	if g.yMin < 0 && g.yMax > 0 {
		zero := g.point(0, 0)
		rl.DrawLine(g.x, int32(zero.Y), g.x+graphWidth, int32(zero.Y), rl.LightGray)
	}
	rl.DrawText(fmt.Sprintf("%.1f", g.yMax), g.x-40, g.y, 12, rl.Gray)
	rl.DrawText(fmt.Sprintf("%.1f", g.yMin), g.x-40, g.y+graphHeight-12, 12, rl.Gray)
}

func (g graph) curve(fn func(x float64) float64, col rl.Color) {
	prev := g.point(0, fn(0))
	for i := 1; i <= samples; i++ {
		x := g.xMax * float64(i) / samples
		p := g.point(x, fn(x))
		rl.DrawLineEx(prev, p, 2, col)
		prev = p
	}
}

// slider draws a labelled raygui slider and returns the new value.
func slider(y *float32, label string, value, lo, hi float64, format string) float64 {
	rl.DrawText(label, panelX, int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: *y, Width: panelWidth - 70, Height: 20},
		"", "",
		float32(value), float32(lo), float32(hi),
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(panelX+panelWidth-60), int32(*y+2), 16, rl.DarkGray)
	*y += 32
	return float64(v)
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	curves := control.Curves{
		MaxAccel:      cfg.Vehicle.MaxAccel,
		MaxSpeed:      cfg.Vehicle.MaxSpeed,
		BrakeMidpoint: cfg.Brake.Midpoint,
		BrakeGain:     cfg.Brake.Gain,
		StopThreshold: cfg.Brake.StopThreshold,
	}
	steering := control.Steering{
		OmegaMin: cfg.Steering.OmegaMin,
		Omega0:   cfg.Steering.Omega0,
		Lambda:   cfg.Steering.Lambda,
		RefSpeed: cfg.Steering.RefSpeed,
		Ratio:    cfg.Steering.Ratio,
		MaxAngle: cfg.Derived.MaxSteerAngle,
	}
	defaults := struct {
		c control.Curves
		s control.Steering
	}{curves, steering}

	rl.InitWindow(windowWidth, windowHeight, "Control Curve Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	throttle := 1.0
	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		accel := graph{title: "Throttle acceleration (m/s²)", x: 50, y: 40, xMax: 50, yMin: -5, yMax: 12, xLabel: "speed (m/s)"}
		brake := graph{title: "Brake deceleration (m/s²)", x: 50, y: 290, xMax: 1, yMin: -12, yMax: 0, xLabel: "pedal"}
		rate := graph{title: "Steering wheel rate (rad/s)", x: 50, y: 540, xMax: 50, yMin: 0, yMax: 30, xLabel: "speed (m/s)"}

		accel.frame()
		accel.curve(func(v float64) float64 { return curves.Acceleration(throttle, v) }, rl.DarkGreen)
		accel.curve(func(v float64) float64 { return curves.Acceleration(0.5*throttle, v) }, rl.Lime)

		brake.frame()
		brake.curve(func(p float64) float64 { return curves.Deceleration(p, 10) }, rl.Maroon)
		mid := brake.point(curves.BrakeMidpoint, curves.Deceleration(curves.BrakeMidpoint, 10))
		rl.DrawCircleV(mid, 4, rl.Red)

		rate.frame()
		rate.curve(steering.Rate, rl.DarkBlue)
		lock := func(v float64) float64 { return steering.MaxAngle * steering.Ratio / steering.Rate(v) }
		rl.DrawText(fmt.Sprintf("Lock to lock at rest: %.2fs  at 30 m/s: %.2fs", 2*lock(0), 2*lock(30)),
			rate.x, rate.y+graphHeight+4, 12, rl.DarkBlue)

		y := float32(20)
		rl.DrawText("Pedals", panelX, int32(y), 20, rl.DarkGray)
		y += 30
		throttle = slider(&y, "Throttle (plotted)", throttle, 0, 1, "%.2f")
		curves.MaxAccel = slider(&y, "Max accel (m/s²)", curves.MaxAccel, 1, 12, "%.2f")
		curves.MaxSpeed = slider(&y, "Max speed (m/s)", curves.MaxSpeed, 10, 50, "%.1f")
		curves.BrakeMidpoint = slider(&y, "Brake midpoint", curves.BrakeMidpoint, 0.05, 0.95, "%.2f")
		curves.BrakeGain = slider(&y, "Brake gain", curves.BrakeGain, 1, 20, "%.1f")

		y += 10
		rl.DrawText("Steering", panelX, int32(y), 20, rl.DarkGray)
		y += 30
		steering.OmegaMin = slider(&y, "Omega min (rad/s)", steering.OmegaMin, 0.5, 10, "%.2f")
		steering.Omega0 = slider(&y, "Omega0 (rad/s)", steering.Omega0, 0, 25, "%.2f")
		steering.Lambda = slider(&y, "Lambda", steering.Lambda, 0.01, 2, "%.2f")
		steering.RefSpeed = slider(&y, "Ref speed (m/s)", steering.RefSpeed, 0, 40, "%.1f")
		steering.Ratio = slider(&y, "Ratio", steering.Ratio, 5, 25, "%.1f")

		y += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, "Reset") {
			curves, steering = defaults.c, defaults.s
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: y, Width: 120, Height: 30}, "Print YAML") {
			printYAML(curves, steering)
		}

		rl.EndDrawing()
	}
}

// printYAML prints the current values as config overrides.
func printYAML(c control.Curves, s control.Steering) {
	fmt.Printf("vehicle:\n  max_accel: %.3f\n  max_speed: %.3f\n", c.MaxAccel, c.MaxSpeed)
	fmt.Printf("brake:\n  midpoint: %.3f\n  gain: %.3f\n", c.BrakeMidpoint, c.BrakeGain)
	fmt.Printf("steering:\n  omega_min: %.3f\n  omega0: %.3f\n  lambda: %.3f\n  ref_speed: %.3f\n  ratio: %.3f\n  max_angle_deg: %.1f\n",
		s.OmegaMin, s.Omega0, s.Lambda, s.RefSpeed, s.Ratio, s.MaxAngle*180/math.Pi)
}
