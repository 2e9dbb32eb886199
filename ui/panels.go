package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/egodrive/angle"
	"github.com/pthm-cable/egodrive/sim"
	"github.com/pthm-cable/egodrive/telemetry"
)

// DebugData is the data bound to the debug panel.
type DebugData struct {
	Snap        sim.Snapshot
	MaxSteerDeg float32
}

func debugSnap(d any) sim.Snapshot {
	return d.(DebugData).Snap
}

func deg(r float64) float32 {
	return float32(angle.ToDeg(r))
}

// DebugPanelDescriptor lays out the vehicle, control, camera and audio state.
func DebugPanelDescriptor() PanelDescriptor {
	return PanelDescriptor{
		Title:  "Debug",
		Width:  280,
		Anchor: AnchorTopRight,
		Sections: []SectionDescriptor{
			{
				Title: "Vehicle",
				Fields: []FieldDescriptor{
					{Label: "X", Widget: WidgetText, Format: "%.2f m", Value: func(d any) float32 { return float32(debugSnap(d).State.X) }},
					{Label: "Y", Widget: WidgetText, Format: "%.2f m", Value: func(d any) float32 { return float32(debugSnap(d).State.Y) }},
					{Label: "Heading", Widget: WidgetText, Format: "%.1f°", Value: func(d any) float32 { return deg(debugSnap(d).State.Yaw) }},
					{Label: "Speed", Widget: WidgetText, Format: "%.2f m/s", Value: func(d any) float32 { return float32(debugSnap(d).State.V) }},
					{Label: "Odometer", Widget: WidgetText, Format: "%.1f m", Value: func(d any) float32 { return float32(debugSnap(d).State.S) }},
					{Label: "Yaw rate", Widget: WidgetText, Format: "%.1f°/s", Value: func(d any) float32 { return deg(debugSnap(d).YawRate) }},
				},
			},
			{
				Title: "Control",
				Fields: []FieldDescriptor{
					{Label: "Throttle", Widget: WidgetBar, Value: func(d any) float32 { return float32(debugSnap(d).Control.Throttle) }},
					{Label: "Brake", Widget: WidgetBar, Value: func(d any) float32 { return float32(debugSnap(d).Control.Brake) }},
					{Label: "Front wheel", Widget: WidgetCenteredBar, Value: func(d any) float32 {
						dd := d.(DebugData)
						if dd.MaxSteerDeg == 0 {
							return 0
						}
						return deg(dd.Snap.Control.FrontWheelAngle) / dd.MaxSteerDeg
					}},
					{Label: "Wheel angle", Widget: WidgetText, Format: "%.0f°", Value: func(d any) float32 { return deg(debugSnap(d).Control.SteeringWheelAngle) }},
				},
			},
			{
				Title: "Camera",
				Fields: []FieldDescriptor{
					{Label: "Mode", Widget: WidgetText, Text: func(d any) string { return debugSnap(d).Mode.Label() }},
					{Label: "Yaw", Widget: WidgetText, Text: func(d any) string {
						c := debugSnap(d).Camera
						return fmt.Sprintf("%.1f° -> %.1f°", deg(c.Yaw), deg(c.TargetYaw))
					}},
					{Label: "Pitch", Widget: WidgetText, Format: "%.1f°", Value: func(d any) float32 { return deg(debugSnap(d).Camera.Pitch) }},
					{Label: "Radius", Widget: WidgetText, Format: "%.2f m", Value: func(d any) float32 { return float32(debugSnap(d).Camera.Radius) }},
				},
			},
			{
				Title: "Audio",
				Fields: []FieldDescriptor{
					{Label: "Cue", Widget: WidgetText, Text: func(d any) string { return debugSnap(d).Cue.String() }},
				},
			},
		},
	}
}

// DebugPanel renders the descriptor-driven debug panel.
type DebugPanel struct {
	renderer   *Renderer
	descriptor PanelDescriptor
	visible    bool
}

// NewDebugPanel creates a hidden debug panel.
func NewDebugPanel() *DebugPanel {
	return &DebugPanel{
		renderer:   NewRenderer(),
		descriptor: DebugPanelDescriptor(),
	}
}

// Toggle switches panel visibility.
func (p *DebugPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *DebugPanel) IsVisible() bool {
	return p.visible
}

// Draw renders the panel when visible.
func (p *DebugPanel) Draw(data DebugData, screenW, screenH int32) rl.Rectangle {
	if !p.visible {
		return rl.Rectangle{}
	}
	return p.renderer.DrawPanelDescriptor(p.descriptor, data, screenW, screenH)
}

// PerfPanel renders the per-phase step timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y
	height := int32(len(telemetry.Phases))*14 + 78
	p.renderer.DrawPanel(x-6, y-6, 260, height)

	rl.DrawText("Tick Timing", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s", stats.AvgTick.Round(time.Microsecond), stats.MaxTick.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 18

	rtfColor := rl.Green
	if stats.RealTimeFactor > 0 && stats.RealTimeFactor < 1 {
		rtfColor = rl.Red
	}
	rl.DrawText(fmt.Sprintf("Realtime x%.0f", stats.RealTimeFactor), x, y, 14, rtfColor)
	y += 18

	for _, ph := range telemetry.Phases {
		pct := stats.PhasePct[ph]
		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", ph, stats.PhaseAvg[ph].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
