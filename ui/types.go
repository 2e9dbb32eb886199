// Package ui provides the viewer HUD, the debug and help panels, and a small
// descriptor-driven widget layer. Panels are described by field metadata so
// the readouts can change alongside the session without touching layout code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field is drawn.
type WidgetType int

const (
	WidgetText        WidgetType = iota // formatted value or text
	WidgetBar                           // fill from the left, value in [0, 1]
	WidgetCenteredBar                   // fill from the middle, value in [-1, 1]
)

// FieldDescriptor binds one readout to the panel data.
type FieldDescriptor struct {
	Label  string
	Widget WidgetType
	Format string            // printf format applied to Value
	Value  func(any) float32 // numeric readout
	Text   func(any) string  // text readout; takes precedence over Value
}

// SectionDescriptor is a titled group of fields.
type SectionDescriptor struct {
	Title  string
	Fields []FieldDescriptor
}

// PanelDescriptor is a complete anchored panel.
type PanelDescriptor struct {
	Title    string
	Width    int32 // 0 = 260
	Anchor   PanelAnchor
	Sections []SectionDescriptor
}

// PanelAnchor is the screen corner a panel sticks to.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	KeyColor        rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillNegative rl.Color
	Padding         int32
	Margin          int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:     rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:   rl.Yellow,
		LabelColor:      rl.LightGray,
		ValueColor:      rl.RayWhite,
		KeyColor:        rl.Yellow,
		BarBg:           rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:         rl.Color{R: 100, G: 200, B: 100, A: 255},
		BarFillNegative: rl.Color{R: 200, G: 100, B: 100, A: 255},
		Padding:         10,
		Margin:          10,
		LineHeight:      16,
		LabelWidth:      90,
		BarHeight:       12,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}
