package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID identifies a toggleable overlay.
type OverlayID uint8

const (
	OverlayGrid OverlayID = iota
	OverlayAxes
	OverlayTrail
	OverlayWheelAxes
	OverlayCameraFocus
	OverlayPerf
	numOverlays
)

// Overlay describes one toggle as listed in the help panel.
type Overlay struct {
	ID       OverlayID
	Name     string
	Key      int32
	KeyLabel string
	Debug    bool // listed under Debug instead of World
	Default  bool // enabled at startup
}

var overlayTable = [numOverlays]Overlay{
	{ID: OverlayGrid, Name: "Ground Grid", Key: rl.KeyG, KeyLabel: "G", Default: true},
	{ID: OverlayAxes, Name: "World Axes", Key: rl.KeyX, KeyLabel: "X", Default: true},
	{ID: OverlayTrail, Name: "Trail", Key: rl.KeyP, KeyLabel: "P"},
	{ID: OverlayWheelAxes, Name: "Wheel Axes", Key: rl.KeyV, KeyLabel: "V", Debug: true},
	{ID: OverlayCameraFocus, Name: "Camera Focus", Key: rl.KeyC, KeyLabel: "C", Debug: true},
	{ID: OverlayPerf, Name: "Tick Timing", Key: rl.KeyF3, KeyLabel: "F3", Debug: true},
}

func (id OverlayID) String() string {
	if id < numOverlays {
		return overlayTable[id].Name
	}
	return "unknown"
}

// OverlayRegistry holds which overlays are on.
type OverlayRegistry struct {
	enabled [numOverlays]bool
}

// NewOverlayRegistry creates a registry with the startup defaults applied.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{}
	for _, o := range overlayTable {
		r.enabled[o.ID] = o.Default
	}
	return r
}

// All returns every overlay in display order.
func (r *OverlayRegistry) All() []Overlay {
	return overlayTable[:]
}

// Group returns the debug overlays, or the world overlays when debug is false.
func (r *OverlayRegistry) Group(debug bool) []Overlay {
	var out []Overlay
	for _, o := range overlayTable {
		if o.Debug == debug {
			out = append(out, o)
		}
	}
	return out
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if id >= numOverlays {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return id < numOverlays && r.enabled[id]
}

// EnabledOverlays lists the overlays that are on, in display order.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var out []OverlayID
	for id, on := range r.enabled {
		if on {
			out = append(out, OverlayID(id))
		}
	}
	return out
}

// HandleKeys toggles every overlay whose key reports pressed and returns
// the toggled IDs.
func (r *OverlayRegistry) HandleKeys(pressed func(key int32) bool) []OverlayID {
	var toggled []OverlayID
	for _, o := range overlayTable {
		if o.Key != 0 && pressed(o.Key) {
			r.Toggle(o.ID)
			toggled = append(toggled, o.ID)
		}
	}
	return toggled
}
