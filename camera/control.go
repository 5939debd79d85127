// Package camera drives a fly camera from controller input.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/pspecs/ecs"
	"github.com/plus3/pspecs/input"
)

// DefaultDeadZone is the stick deviation, as a fraction of full travel,
// below which an axis reads as zero.
const DefaultDeadZone = 0.15

// MaxPitch is the largest elevation, up or down, the controller lets the view reach.
var MaxPitch = mgl32.DegToRad(88)

var worldUp = ecs.Vector3{0, 1, 0}

// Controller applies movement and look input to a Camera component.
type Controller struct {
	DeadZone float32
}

// NewController returns a controller with DefaultDeadZone.
func NewController() *Controller {
	return &Controller{DeadZone: DefaultDeadZone}
}

type movement struct {
	action input.Action
	sign   float32
	axis   func(forward, right, up ecs.Vector3) ecs.Vector3
}

func alongForward(forward, _, _ ecs.Vector3) ecs.Vector3 { return forward }
func alongRight(_, right, _ ecs.Vector3) ecs.Vector3     { return right }
func alongUp(_, _, up ecs.Vector3) ecs.Vector3           { return up }

var movements = []movement{
	{input.ActionMoveForward, 1, alongForward},
	{input.ActionMoveBackward, -1, alongForward},
	{input.ActionMoveLeft, -1, alongRight},
	{input.ActionMoveRight, 1, alongRight},
	{input.ActionMoveUp, 1, alongUp},
	{input.ActionMoveDown, -1, alongUp},
}

// Update moves the camera for one frame. Held movement actions translate both
// position and target so the look direction is kept. The stick yaws the view
// about the world up axis and pitches it about the camera right vector,
// keeping the view distance and holding the pitch within MaxPitch. A view
// already past MaxPitch is brought back inside it. Pitch records the
// elevation the view ends up with.
// A nil camera is ignored.
func (c *Controller) Update(cam *ecs.Camera, binds *input.Bindings, f input.Frame, dt float32) {
	if cam == nil {
		return
	}
	view := &cam.View

	forward := normalize(view.Target.Sub(view.Position))
	right := normalize(forward.Cross(view.Up))
	step := cam.MoveSpeed * dt

	var move ecs.Vector3
	for _, m := range movements {
		if binds.Held(m.action, f) {
			move = move.Add(m.axis(forward, right, view.Up).Mul(m.sign * step))
		}
	}
	view.Position = view.Position.Add(move)
	view.Target = view.Target.Add(move)

	x, y := f.Cur.Axes()
	x = c.filter(x)
	y = c.filter(y)
	if x == 0 && y == 0 {
		return
	}

	dir := view.Target.Sub(view.Position)
	distance := dir.Len()
	if distance == 0 {
		return
	}
	dir = dir.Mul(1 / distance)

	yaw := x * cam.LookSpeed * dt
	dir = mgl32.QuatRotate(yaw, worldUp).Rotate(dir)

	pitch := elevation(dir)
	want := mgl32.Clamp(pitch+y*cam.LookSpeed*dt, -MaxPitch, MaxPitch)
	axis := dir.Cross(worldUp)
	if axis.Len() <= 1e-6 {
		axis = poleAxis(right)
	}
	dir = normalize(mgl32.QuatRotate(want-pitch, axis.Normalize()).Rotate(dir))
	cam.Pitch = mgl32.Clamp(elevation(dir), -MaxPitch, MaxPitch)

	view.Target = view.Position.Add(dir.Mul(distance))
}

// poleAxis is the pitch axis for a view looking straight up or down: the
// horizontal part of right, or world X when right has none.
func poleAxis(right ecs.Vector3) ecs.Vector3 {
	if h := (ecs.Vector3{right.X(), 0, right.Z()}); h.Len() > 1e-6 {
		return h
	}
	return ecs.Vector3{1, 0, 0}
}

// filter zeroes an axis reading inside the dead zone.
func (c *Controller) filter(v float32) float32 {
	if float32(math.Abs(float64(v))) <= c.DeadZone {
		return 0
	}
	return v
}

// elevation is the angle between a unit direction and the horizontal plane.
func elevation(dir ecs.Vector3) float32 {
	return float32(math.Asin(float64(mgl32.Clamp(dir.Y(), -1, 1))))
}

// normalize returns v scaled to unit length, or the zero vector when v has none.
func normalize(v ecs.Vector3) ecs.Vector3 {
	l := v.Len()
	if l == 0 {
		return ecs.Vector3{}
	}
	return v.Mul(1 / l)
}
