// Package input turns raw controller samples into held and pressed actions.
package input

// Button is a controller button bit, using the handheld's native codes.
type Button uint32

const (
	ButtonSelect   Button = 0x000001
	ButtonStart    Button = 0x000008
	ButtonUp       Button = 0x000010
	ButtonRight    Button = 0x000020
	ButtonDown     Button = 0x000040
	ButtonLeft     Button = 0x000080
	ButtonLTrigger Button = 0x000100
	ButtonRTrigger Button = 0x000200
	ButtonTriangle Button = 0x001000
	ButtonCircle   Button = 0x002000
	ButtonCross    Button = 0x004000
	ButtonSquare   Button = 0x008000
)

var buttonNames = []struct {
	button Button
	name   string
}{
	{ButtonSelect, "SELECT"},
	{ButtonStart, "START"},
	{ButtonUp, "UP"},
	{ButtonRight, "RIGHT"},
	{ButtonDown, "DOWN"},
	{ButtonLeft, "LEFT"},
	{ButtonLTrigger, "L"},
	{ButtonRTrigger, "R"},
	{ButtonTriangle, "TRIANGLE"},
	{ButtonCircle, "CIRCLE"},
	{ButtonCross, "CROSS"},
	{ButtonSquare, "SQUARE"},
}

func (b Button) String() string {
	for _, bn := range buttonNames {
		if bn.button == b {
			return bn.name
		}
	}
	return "NONE"
}

// ParseButton maps a button name back to its code.
func ParseButton(name string) (Button, bool) {
	for _, bn := range buttonNames {
		if bn.name == name {
			return bn.button, true
		}
	}
	return 0, false
}

// AxisCenter is the neutral reading of an analog axis.
const AxisCenter = 128

// Sample is one poll of the controller: a button bitmask plus the analog
// stick, each axis in [0,255] with AxisCenter at rest.
type Sample struct {
	Buttons Button
	Lx, Ly  uint8
}

// NeutralSample has no buttons held and the stick centered.
var NeutralSample = Sample{Lx: AxisCenter, Ly: AxisCenter}

// Held reports whether any bit of b is down in the sample.
func (s Sample) Held(b Button) bool {
	return s.Buttons&b != 0
}

// Axes returns the stick deviation from center scaled to [-1,1).
func (s Sample) Axes() (x, y float32) {
	return float32(int(s.Lx)-AxisCenter) / AxisCenter, float32(int(s.Ly)-AxisCenter) / AxisCenter
}

// AxisByte converts a normalized axis reading in [-1,1] to the native
// [0,255] range. Out of range values are clamped.
func AxisByte(v float32) uint8 {
	switch {
	case v <= -1:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(AxisCenter + v*127)
}

// Frame pairs the previous and current samples so edges can be detected
// without hidden state.
type Frame struct {
	Prev Sample
	Cur  Sample
}

// Next shifts cur into the frame, returning the new pair.
func (f Frame) Next(cur Sample) Frame {
	return Frame{Prev: f.Cur, Cur: cur}
}

// Held reports whether b is down this frame.
func (f Frame) Held(b Button) bool {
	return f.Cur.Held(b)
}

// Pressed reports whether b went from up to down between the two samples.
func (f Frame) Pressed(b Button) bool {
	return Pressed(f.Prev, f.Cur, b)
}

// Pressed reports a rising edge of b from prev to cur.
func Pressed(prev, cur Sample, b Button) bool {
	return cur.Held(b) && !prev.Held(b)
}

// Reader delivers controller samples.
type Reader interface {
	ReadSample() Sample
}
