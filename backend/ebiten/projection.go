package ebiten

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/pspecs/ecs"
)

const (
	nearPlane = 0.05
	farPlane  = 1000
)

// projector maps world points to screen pixels for one camera view.
type projector struct {
	vp            mgl32.Mat4
	eye           ecs.Vector3
	right         ecs.Vector3
	width, height float32
}

func newProjector(view ecs.View, width, height int) projector {
	w, h := float32(width), float32(height)
	aspect := w / h

	var proj mgl32.Mat4
	if view.Projection == ecs.ProjectionOrthographic {
		top := view.Fovy / 2
		right := top * aspect
		proj = mgl32.Ortho(-right, right, -top, top, nearPlane, farPlane)
	} else {
		proj = mgl32.Perspective(mgl32.DegToRad(view.Fovy), aspect, nearPlane, farPlane)
	}
	look := mgl32.LookAtV(view.Position, view.Target, view.Up)

	forward := view.Target.Sub(view.Position)
	if forward.Len() > 0 {
		forward = forward.Normalize()
	}
	right := forward.Cross(view.Up)
	if right.Len() > 0 {
		right = right.Normalize()
	}

	return projector{
		vp:     proj.Mul4(look),
		eye:    view.Position,
		right:  right,
		width:  w,
		height: h,
	}
}

func (p projector) clip(v ecs.Vector3) mgl32.Vec4 {
	return p.vp.Mul4x1(v.Vec4(1))
}

func (p projector) toScreen(c mgl32.Vec4) mgl32.Vec2 {
	x := c.X() / c.W()
	y := c.Y() / c.W()
	return mgl32.Vec2{(x + 1) / 2 * p.width, (1 - y) / 2 * p.height}
}

// project returns the screen position of v, or false when v lies behind the
// near plane.
func (p projector) project(v ecs.Vector3) (mgl32.Vec2, bool) {
	c := p.clip(v)
	if c.W() < nearPlane {
		return mgl32.Vec2{}, false
	}
	return p.toScreen(c), true
}

// segment projects a line, trimming the part behind the near plane.
func (p projector) segment(a, b ecs.Vector3) (mgl32.Vec2, mgl32.Vec2, bool) {
	ca, cb := p.clip(a), p.clip(b)
	wa, wb := ca.W(), cb.W()
	switch {
	case wa < nearPlane && wb < nearPlane:
		return mgl32.Vec2{}, mgl32.Vec2{}, false
	case wa < nearPlane:
		ca = ca.Add(cb.Sub(ca).Mul((nearPlane - wa) / (wb - wa)))
	case wb < nearPlane:
		cb = cb.Add(ca.Sub(cb).Mul((nearPlane - wb) / (wa - wb)))
	}
	return p.toScreen(ca), p.toScreen(cb), true
}

// facing reports whether a face with the given outward normal through point
// is turned towards the camera.
func (p projector) facing(point, normal ecs.Vector3) bool {
	return normal.Dot(p.eye.Sub(point)) > 0
}

// radius converts a world radius at center into screen pixels.
func (p projector) radius(center ecs.Vector3, r float32) (float32, bool) {
	c, ok := p.project(center)
	if !ok {
		return 0, false
	}
	edge, ok := p.project(center.Add(p.right.Mul(r)))
	if !ok {
		return 0, false
	}
	return edge.Sub(c).Len(), true
}

type face struct {
	normal  ecs.Vector3
	corners [4]int
	shade   float32
}

// Corner i of a box has bit 0 set for +X, bit 1 for +Y and bit 2 for +Z.
var boxFaces = [6]face{
	{ecs.Vector3{0, 1, 0}, [4]int{2, 3, 7, 6}, 1.0},
	{ecs.Vector3{0, -1, 0}, [4]int{0, 4, 5, 1}, 0.5},
	{ecs.Vector3{1, 0, 0}, [4]int{1, 5, 7, 3}, 0.8},
	{ecs.Vector3{-1, 0, 0}, [4]int{0, 2, 6, 4}, 0.8},
	{ecs.Vector3{0, 0, 1}, [4]int{4, 6, 7, 5}, 0.65},
	{ecs.Vector3{0, 0, -1}, [4]int{0, 1, 3, 2}, 0.65},
}

var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func boxCorners(center ecs.Vector3, w, h, l float32) [8]ecs.Vector3 {
	half := ecs.Vector3{w / 2, h / 2, l / 2}
	var corners [8]ecs.Vector3
	for i := range corners {
		c := center.Sub(half)
		if i&1 != 0 {
			c[0] += w
		}
		if i&2 != 0 {
			c[1] += h
		}
		if i&4 != 0 {
			c[2] += l
		}
		corners[i] = c
	}
	return corners
}

// gridLines lists the segments of a square grid on the XZ plane centered on
// the origin, with the two center lines first.
func gridLines(slices int, spacing float32) [][2]ecs.Vector3 {
	half := slices / 2
	extent := float32(half) * spacing
	lines := [][2]ecs.Vector3{
		{{0, 0, -extent}, {0, 0, extent}},
		{{-extent, 0, 0}, {extent, 0, 0}},
	}
	for i := -half; i <= half; i++ {
		if i == 0 {
			continue
		}
		o := float32(i) * spacing
		lines = append(lines,
			[2]ecs.Vector3{{o, 0, -extent}, {o, 0, extent}},
			[2]ecs.Vector3{{-extent, 0, o}, {extent, 0, o}},
		)
	}
	return lines
}
