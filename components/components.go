// Package components defines ECS components for the render scene.
package components

// Kind identifies what a render entity represents.
type Kind uint8

const (
	KindBody Kind = iota
	KindWheel
	KindObstacle
)

func (k Kind) String() string {
	switch k {
	case KindBody:
		return "body"
	case KindWheel:
		return "wheel"
	case KindObstacle:
		return "obstacle"
	}
	return "unknown"
}

// Tint is an RGBA draw color.
type Tint struct {
	R, G, B, A uint8
}

// Entity holds render-entity identity.
type Entity struct {
	Kind Kind
	Name string
}

// Wheel links a wheel entity to its mount and the per-tick pose slot.
type Wheel struct {
	Index int // index into the session wheel mounts and poses
}
