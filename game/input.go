package game

import (
	"fmt"
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/egodrive/input"
	"github.com/pthm-cable/egodrive/telemetry"
)

// gamepadEps is the dead zone for triggers and sticks.
const gamepadEps = 0.01

// handleInput processes viewer keys that do not reach the session.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyT) {
		g.debugPanel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF1) || rl.IsKeyPressed(rl.KeySlash) {
		g.helpPanel.Toggle()
	}

	if rl.IsKeyPressed(rl.KeyB) {
		g.manualBookmark()
	}

	g.handleOverlayKeys()
}

// handleResize picks up the new window size.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.screenWidth = int32(rl.GetScreenWidth())
	g.screenHeight = int32(rl.GetScreenHeight())
	g.perfPanel.SetPosition(16, g.screenHeight-200)
}

// manualBookmark saves the session on request.
func (g *Game) manualBookmark() {
	if g.saveDir == "" {
		slog.Warn("bookmark ignored, no save directory")
		return
	}
	bm := telemetry.Bookmark{
		Type:        telemetry.BookmarkManual,
		Tick:        g.session.Tick(),
		Description: fmt.Sprintf("manual at %.1f m/s", g.last.State.V),
	}
	bm.LogBookmark()
	if g.outputManager != nil {
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
	g.saveSession(&bm)
}

// readFrame maps the keyboard, mouse wheel and the first gamepad onto a
// command frame. Pedals drop to zero when released; a pulled trigger
// overrides the key.
func (g *Game) readFrame(dt float64) input.Frame {
	f := input.Frame{DT: dt}

	if rl.IsKeyDown(rl.KeyW) {
		f.Throttle = 1
	}
	if rl.IsKeyDown(rl.KeyS) {
		f.Brake = 1
	}
	if rl.IsKeyDown(rl.KeyA) {
		f.Steer++
	}
	if rl.IsKeyDown(rl.KeyD) {
		f.Steer--
	}

	f.CameraToggle = rl.IsKeyPressed(rl.KeyH)
	f.Respawn = rl.IsKeyPressed(rl.KeyR)

	// Manual orbit
	if rl.IsKeyDown(rl.KeyJ) {
		f.OrbitYaw++
	}
	if rl.IsKeyDown(rl.KeyL) {
		f.OrbitYaw--
	}
	if rl.IsKeyDown(rl.KeyI) {
		f.OrbitPitch++
	}
	if rl.IsKeyDown(rl.KeyK) {
		f.OrbitPitch--
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		f.Zoom = math.Pow(g.cfg.Camera.ZoomStep, -float64(wheel))
	}

	g.readGamepad(&f)
	return f
}

// readGamepad layers the first gamepad over the keyboard frame.
func (g *Game) readGamepad(f *input.Frame) {
	const pad = 0
	if !rl.IsGamepadAvailable(pad) {
		return
	}

	// Triggers rest at -1
	rt := triggerTravel(rl.GetGamepadAxisMovement(pad, rl.GamepadAxisRightTrigger))
	lt := triggerTravel(rl.GetGamepadAxisMovement(pad, rl.GamepadAxisLeftTrigger))
	if rt > gamepadEps {
		f.Throttle = rt
	}
	if lt > gamepadEps {
		f.Brake = lt
	}

	if lx := float64(rl.GetGamepadAxisMovement(pad, rl.GamepadAxisLeftX)); math.Abs(lx) > gamepadEps {
		f.Steer = -lx
	}

	if rx := float64(rl.GetGamepadAxisMovement(pad, rl.GamepadAxisRightX)); math.Abs(rx) > gamepadEps {
		f.OrbitYaw = -rx
	}
	if ry := float64(rl.GetGamepadAxisMovement(pad, rl.GamepadAxisRightY)); math.Abs(ry) > gamepadEps {
		f.OrbitPitch = -ry
	}
}

func triggerTravel(axis float32) float64 {
	return (float64(axis) + 1) / 2
}

// handleOverlayKeys toggles overlays from their keys.
func (g *Game) handleOverlayKeys() {
	for _, id := range g.uiOverlays.HandleKeys(rl.IsKeyPressed) {
		slog.Debug("overlay", "id", id.String(), "enabled", g.uiOverlays.IsEnabled(id))
	}
}
