// Package scene keeps the render entities (vehicle body, wheels, obstacle)
// in an ECS world and places them from session snapshots.
package scene

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/egodrive/components"
	"github.com/pthm-cable/egodrive/dynamics"
	"github.com/pthm-cable/egodrive/sim"
)

// Body geometry of the stock car, in the body frame (X lateral, Y up,
// Z forward).
const (
	BodyHeight = 0.64 // m, body origin above ground
	BodyWidth  = 2.0
	BodyTall   = 1.0
	BodyLength = 5.0
	WheelWidth = 0.34
)

// Obstacle is a static box placed in world coordinates.
type Obstacle struct {
	Name   string
	Center r3.Vec
	Size   r3.Vec
	Tint   components.Tint
}

// DefaultObstacles returns the single red block ahead of the spawn point.
func DefaultObstacles() []Obstacle {
	return []Obstacle{{
		Name:   "block",
		Center: r3.Vec{X: 10, Y: 0, Z: 1},
		Size:   r3.Vec{X: 5, Y: 2, Z: 1},
		Tint:   components.Tint{R: 230, G: 41, B: 55, A: 255},
	}}
}

// Drawable is one entity as handed to the renderer.
type Drawable struct {
	Entity    components.Entity
	Transform components.Transform
	Shape     components.Shape
}

// Scene owns the render world.
type Scene struct {
	world *ecs.World

	builder      *ecs.Map3[components.Entity, components.Transform, components.Shape]
	wheelBuilder *ecs.Map4[components.Entity, components.Transform, components.Shape, components.Wheel]
	drawables    *ecs.Filter3[components.Entity, components.Transform, components.Shape]
	transforms   *ecs.Map[components.Transform]

	body   ecs.Entity
	wheels []ecs.Entity
	mounts []dynamics.WheelMount
}

// New creates the scene with a body, one entity per wheel mount and the
// given obstacles.
func New(mounts []dynamics.WheelMount, wheelRadius float64, obstacles []Obstacle) *Scene {
	world := ecs.NewWorld()
	s := &Scene{
		world:        world,
		builder:      ecs.NewMap3[components.Entity, components.Transform, components.Shape](world),
		wheelBuilder: ecs.NewMap4[components.Entity, components.Transform, components.Shape, components.Wheel](world),
		drawables:    ecs.NewFilter3[components.Entity, components.Transform, components.Shape](world),
		transforms:   ecs.NewMap[components.Transform](world),
		mounts:       mounts,
	}

	s.body = s.builder.NewEntity(
		&components.Entity{Kind: components.KindBody, Name: "body"},
		ptr(components.Identity()),
		&components.Shape{
			Kind: components.ShapeBox,
			Size: r3.Vec{X: BodyWidth, Y: BodyTall, Z: BodyLength},
			Tint: components.Tint{R: 0, G: 121, B: 241, A: 255},
			Wire: true,
		},
	)

	for i, m := range mounts {
		e := s.wheelBuilder.NewEntity(
			&components.Entity{Kind: components.KindWheel, Name: m.Name},
			ptr(components.Identity()),
			&components.Shape{
				Kind: components.ShapeCylinder,
				Size: r3.Vec{X: wheelRadius, Y: WheelWidth},
				Tint: components.Tint{R: 40, G: 40, B: 40, A: 255},
				Wire: true,
			},
			&components.Wheel{Index: i},
		)
		s.wheels = append(s.wheels, e)
	}

	for _, o := range obstacles {
		s.builder.NewEntity(
			&components.Entity{Kind: components.KindObstacle, Name: o.Name},
			&components.Transform{Position: o.Center, Rotation: components.Identity().Rotation},
			&components.Shape{Kind: components.ShapeBox, Size: o.Size, Tint: o.Tint},
		)
	}

	return s
}

func ptr[T any](v T) *T {
	return &v
}

// Sync places the body and wheels for the snapshot.
func (s *Scene) Sync(snap sim.Snapshot) {
	body := BodyTransform(snap.State)
	*s.transforms.Get(s.body) = body

	for i, e := range s.wheels {
		if i >= len(snap.Wheels) {
			break
		}
		*s.transforms.Get(e) = WheelTransform(body, s.mounts[i], snap.Wheels[i])
	}
}

// Each calls fn for every drawable entity.
func (s *Scene) Each(fn func(Drawable)) {
	query := s.drawables.Query()
	for query.Next() {
		ent, tr, shape := query.Get()
		fn(Drawable{Entity: *ent, Transform: *tr, Shape: *shape})
	}
}

// Len returns the number of drawable entities.
func (s *Scene) Len() int {
	n := 0
	s.Each(func(Drawable) { n++ })
	return n
}

// BodyRotation maps the body frame onto the world frame for a heading:
// body Z (forward) to the heading direction, body Y (up) to world Z.
func BodyRotation(yaw float64) r3.Rotation {
	toWorld := quat.Mul(
		quat.Number(r3.NewRotation(math.Pi/2, r3.Vec{Z: 1})),
		quat.Number(r3.NewRotation(math.Pi/2, r3.Vec{X: 1})),
	)
	heading := quat.Number(r3.NewRotation(yaw, r3.Vec{Z: 1}))
	return r3.Rotation(quat.Mul(heading, toWorld))
}

// BodyTransform returns the world transform of the car body.
func BodyTransform(st dynamics.State) components.Transform {
	return components.Transform{
		Position: r3.Vec{X: st.X, Y: st.Y, Z: BodyHeight},
		Rotation: BodyRotation(st.Yaw),
	}
}

// WheelTransform composes a wheel pose with its mount on the body.
func WheelTransform(body components.Transform, m dynamics.WheelMount, p dynamics.WheelPose) components.Transform {
	return components.Transform{
		Position: r3.Add(body.Position, body.Rotation.Rotate(m.Offset)),
		Rotation: r3.Rotation(quat.Mul(quat.Number(body.Rotation), quat.Number(p.Rotation))),
	}
}

// AxisAngle returns the rotation as an angle in radians about a unit axis.
// The identity yields a zero angle about Z.
func AxisAngle(r r3.Rotation) (float64, r3.Vec) {
	q := quat.Number(r)
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	w := math.Min(q.Real, 1)
	s := math.Sqrt(1 - w*w)
	if s < 1e-9 {
		return 0, r3.Vec{Z: 1}
	}
	return 2 * math.Acos(w), r3.Vec{X: q.Imag / s, Y: q.Jmag / s, Z: q.Kmag / s}
}
