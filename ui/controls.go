package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// KeyBinding is one line of the help panel.
type KeyBinding struct {
	Keys   string
	Action string
}

// DriveBindings lists the driving and camera keys.
func DriveBindings() []KeyBinding {
	return []KeyBinding{
		{"W / RT", "Throttle"},
		{"S / LT", "Brake"},
		{"A / D", "Steer left / right"},
		{"Left stick", "Steer"},
		{"R", "Respawn"},
		{"H", "Cycle camera mode"},
		{"J / L", "Orbit yaw (third person)"},
		{"I / K", "Orbit pitch (third person)"},
		{"Right stick", "Orbit (third person)"},
		{"Wheel", "Zoom"},
		{"Space", "Pause"},
		{"B", "Bookmark and save"},
		{"T", "Debug panel"},
		{"F1 or /", "Help"},
	}
}

// HelpPanel renders the key bindings and the overlay toggles.
type HelpPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	bindings []KeyBinding
}

// NewHelpPanel creates a hidden help panel.
func NewHelpPanel(x, y, width int32) *HelpPanel {
	return &HelpPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		bindings: DriveBindings(),
	}
}

// SetVisible shows or hides the panel.
func (c *HelpPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *HelpPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *HelpPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the help panel and returns the y below it.
func (c *HelpPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	groups := []bool{false, true}
	totalItems := len(c.bindings) + 1
	for _, debug := range groups {
		totalItems += len(overlays.Group(debug)) + 1 // +1 for the group header
	}
	panelHeight := int32(totalItems)*lineHeight + padding*3 + lineHeight + int32(len(groups))*4

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding

	rl.DrawText("Help", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	rl.DrawText("Controls", c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += lineHeight
	for _, b := range c.bindings {
		c.drawBinding(c.x+padding, y, b, c.width-padding*2)
		y += lineHeight
	}

	for _, debug := range groups {
		y += 4
		rl.DrawText(groupLabel(debug), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, o := range overlays.Group(debug) {
			c.drawToggle(c.x+padding, y, o, overlays.IsEnabled(o.ID), c.width-padding*2)
			y += lineHeight
		}
	}

	return y
}

func (c *HelpPanel) drawBinding(x, y int32, b KeyBinding, width int32) {
	r := c.renderer
	rl.DrawText(b.Action, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	keyText := fmt.Sprintf("[%s]", b.Keys)
	keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
	rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, r.Theme.KeyColor)
}

// drawToggle draws a single overlay toggle line.
func (c *HelpPanel) drawToggle(x, y int32, o Overlay, enabled bool, width int32) {
	r := c.renderer

	// Status indicator
	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(o.Name, x+14, y, r.Theme.FontSize, nameColor)

	if o.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", o.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, r.Theme.KeyColor)
	}
}

func groupLabel(debug bool) string {
	if debug {
		return "Debug"
	}
	return "World"
}
