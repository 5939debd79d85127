package ecs

import "github.com/go-gl/mathgl/mgl32"

// Vector3 is a three component float vector.
type Vector3 = mgl32.Vec3

// ComponentKind identifies one of the fixed component types.
type ComponentKind uint8

const (
	KindTransform ComponentKind = iota
	KindRenderable
	KindCamera
	KindInput

	KindCount
)

var kindNames = [KindCount]string{"Transform", "Renderable", "Camera", "Input"}

func (k ComponentKind) String() string {
	if k >= KindCount {
		return "Unknown"
	}
	return kindNames[k]
}

// Mask records which component kinds an entity owns, one bit per kind.
type Mask uint32

// MaskOf builds a mask with the bits for all the given kinds set.
func MaskOf(kinds ...ComponentKind) Mask {
	var m Mask
	for _, k := range kinds {
		m |= 1 << k
	}
	return m
}

// Has reports whether the bit for kind is set.
func (m Mask) Has(kind ComponentKind) bool {
	return m&(1<<kind) != 0
}

// Contains reports whether every bit in other is also set in m.
func (m Mask) Contains(other Mask) bool {
	return m&other == other
}

// Kinds lists the kinds present in the mask in ascending order.
func (m Mask) Kinds() []ComponentKind {
	kinds := make([]ComponentKind, 0, KindCount)
	for k := ComponentKind(0); k < KindCount; k++ {
		if m.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	White = Color{255, 255, 255, 255}
	Black = Color{0, 0, 0, 255}
)

type Transform struct {
	Position Vector3
	Rotation Vector3
	Scale    Vector3
}

// Shape selects which primitive a Renderable draws.
type Shape int32

const (
	ShapeCube Shape = iota
	ShapeSphere
	ShapePlane
	ShapeGrid
)

func (s Shape) String() string {
	switch s {
	case ShapeCube:
		return "Cube"
	case ShapeSphere:
		return "Sphere"
	case ShapePlane:
		return "Plane"
	case ShapeGrid:
		return "Grid"
	}
	return "Unknown"
}

type Renderable struct {
	Shape Shape
	Color Color
	Size  Vector3
}

// Projection selects the camera projection mode.
type Projection int32

const (
	ProjectionPerspective Projection = iota
	ProjectionOrthographic
)

// View describes where a camera sits and what it looks at. Fovy is in degrees.
type View struct {
	Position   Vector3
	Target     Vector3
	Up         Vector3
	Fovy       float32
	Projection Projection
}

type Camera struct {
	View      View
	MoveSpeed float32
	LookSpeed float32

	// Pitch is the elevation of the view direction in radians, kept by the
	// camera controller. It is derived state and is not persisted.
	Pitch float32
}

// Input marks an entity as driven by the controller.
type Input struct {
	Active bool
}

// DefaultTransform returns a transform at the origin with unit scale.
func DefaultTransform() Transform {
	return Transform{Scale: Vector3{1, 1, 1}}
}

// DefaultRenderable returns a white unit cube.
func DefaultRenderable() Renderable {
	return Renderable{
		Shape: ShapeCube,
		Color: White,
		Size:  Vector3{1, 1, 1},
	}
}

// DefaultCamera returns a perspective camera at (10,10,10) looking at the origin.
func DefaultCamera() Camera {
	return Camera{
		View: View{
			Position:   Vector3{10, 10, 10},
			Target:     Vector3{0, 0, 0},
			Up:         Vector3{0, 1, 0},
			Fovy:       45,
			Projection: ProjectionPerspective,
		},
		MoveSpeed: 5,
		LookSpeed: 2,
	}
}

func DefaultInput() Input {
	return Input{Active: true}
}
