package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const defaultPanelWidth = 260

// Renderer draws panels in a shared theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawPanelDescriptor draws a panel at its anchor and returns its bounds.
func (r *Renderer) DrawPanelDescriptor(pd PanelDescriptor, data any, screenW, screenH int32) rl.Rectangle {
	t := r.Theme
	width := pd.Width
	if width == 0 {
		width = defaultPanelWidth
	}
	height := r.panelHeight(pd)
	x, y := anchorOrigin(pd.Anchor, width, height, screenW, screenH, t.Margin)

	r.DrawPanel(x, y, width, height)
	cx, cy := x+t.Padding, y+t.Padding
	if pd.Title != "" {
		rl.DrawText(pd.Title, cx, cy, 16, rl.White)
		cy += t.LineHeight + 4
	}
	inner := width - t.Padding*2
	for _, sd := range pd.Sections {
		if sd.Title != "" {
			rl.DrawText(sd.Title, cx, cy, t.HeaderFontSize, t.SectionHeader)
			cy += t.LineHeight
		}
		for _, fd := range sd.Fields {
			cy = r.drawField(cx, cy, inner, fd, data)
		}
		cy += 4
	}

	return rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(height)}
}

// anchorOrigin places a width x height panel in a screen corner.
func anchorOrigin(a PanelAnchor, width, height, screenW, screenH, margin int32) (x, y int32) {
	x, y = margin, margin
	if a == AnchorTopRight || a == AnchorBottomRight {
		x = screenW - width - margin
	}
	if a == AnchorBottomLeft || a == AnchorBottomRight {
		y = screenH - height - margin
	}
	return x, y
}

func (r *Renderer) panelHeight(pd PanelDescriptor) int32 {
	t := r.Theme
	h := t.Padding * 2
	if pd.Title != "" {
		h += t.LineHeight + 4
	}
	for _, sd := range pd.Sections {
		if sd.Title != "" {
			h += t.LineHeight
		}
		for _, fd := range sd.Fields {
			h += r.fieldHeight(fd)
		}
		h += 4
	}
	return h
}

func (r *Renderer) fieldHeight(fd FieldDescriptor) int32 {
	if fd.Widget == WidgetText {
		return r.Theme.LineHeight
	}
	return r.Theme.LineHeight + 2
}

// drawField draws one labelled readout and returns the y below it.
func (r *Renderer) drawField(x, y, width int32, fd FieldDescriptor, data any) int32 {
	t := r.Theme
	rl.DrawText(fd.Label+":", x, y, t.FontSize, t.LabelColor)
	vx := x + t.LabelWidth

	if fd.Widget == WidgetText {
		rl.DrawText(fd.text(data), vx, y, t.FontSize, t.ValueColor)
		return y + r.fieldHeight(fd)
	}

	var v float32
	if fd.Value != nil {
		v = fd.Value(data)
	}
	r.drawBar(vx, y+2, width-t.LabelWidth-50, v, fd.Widget == WidgetCenteredBar)
	return y + r.fieldHeight(fd)
}

func (fd FieldDescriptor) text(data any) string {
	switch {
	case fd.Text != nil:
		return fd.Text(data)
	case fd.Value != nil:
		return fmt.Sprintf(fd.Format, fd.Value(data))
	}
	return ""
}

// drawBar fills a bar from its left edge, or from the middle when centered
// (green right, red left). The clamped value is printed after the bar.
func (r *Renderer) drawBar(x, y, width int32, v float32, centered bool) {
	t := r.Theme
	rl.DrawRectangle(x, y, width, t.BarHeight, t.BarBg)

	var label string
	if centered {
		v = max(-1, min(v, 1))
		mid := x + width/2
		fill := int32(float32(width/2) * max(v, -v))
		from, color := mid, t.BarFill
		if v < 0 {
			from, color = mid-fill, t.BarFillNegative
		}
		rl.DrawRectangle(from, y, fill, t.BarHeight, color)
		rl.DrawLine(mid, y, mid, y+t.BarHeight, rl.Gray)
		label = fmt.Sprintf("%+.2f", v)
	} else {
		v = max(0, min(v, 1))
		rl.DrawRectangle(x, y, int32(float32(width)*v), t.BarHeight, t.BarFill)
		label = fmt.Sprintf("%.2f", v)
	}
	rl.DrawText(label, x+width+5, y-2, t.FontSize, t.ValueColor)
}
