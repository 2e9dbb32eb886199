package components

import "gonum.org/v1/gonum/spatial/r3"

// ShapeKind selects the primitive used to draw an entity.
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeCylinder
)

// Shape describes the drawn primitive in the entity's model frame.
// Boxes use Size as full extents. Cylinders run along the model Y axis with
// Size.X as radius and Size.Y as width.
type Shape struct {
	Kind ShapeKind
	Size r3.Vec
	Tint Tint
	Wire bool // also draw edges
}
