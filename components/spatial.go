package components

import "gonum.org/v1/gonum/spatial/r3"

// Transform places an entity in the world frame (Z up, meters).
type Transform struct {
	Position r3.Vec
	Rotation r3.Rotation
}

// Identity returns a transform at the origin with no rotation.
func Identity() Transform {
	return Transform{Rotation: r3.NewRotation(0, r3.Vec{Z: 1})}
}
