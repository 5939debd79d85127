package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/pspecs/input"
)

var padButtons = []struct {
	button  input.Button
	gamepad ebiten.StandardGamepadButton
	keys    []ebiten.Key
}{
	{input.ButtonUp, ebiten.StandardGamepadButtonLeftTop, []ebiten.Key{ebiten.KeyArrowUp}},
	{input.ButtonDown, ebiten.StandardGamepadButtonLeftBottom, []ebiten.Key{ebiten.KeyArrowDown}},
	{input.ButtonLeft, ebiten.StandardGamepadButtonLeftLeft, []ebiten.Key{ebiten.KeyArrowLeft}},
	{input.ButtonRight, ebiten.StandardGamepadButtonLeftRight, []ebiten.Key{ebiten.KeyArrowRight}},
	{input.ButtonLTrigger, ebiten.StandardGamepadButtonFrontTopLeft, []ebiten.Key{ebiten.KeyQ}},
	{input.ButtonRTrigger, ebiten.StandardGamepadButtonFrontTopRight, []ebiten.Key{ebiten.KeyE}},
	{input.ButtonCross, ebiten.StandardGamepadButtonRightBottom, []ebiten.Key{ebiten.KeyZ, ebiten.KeySpace}},
	{input.ButtonCircle, ebiten.StandardGamepadButtonRightRight, []ebiten.Key{ebiten.KeyX, ebiten.KeyBackspace}},
	{input.ButtonSquare, ebiten.StandardGamepadButtonRightLeft, []ebiten.Key{ebiten.KeyA}},
	{input.ButtonTriangle, ebiten.StandardGamepadButtonRightTop, []ebiten.Key{ebiten.KeyS}},
	{input.ButtonStart, ebiten.StandardGamepadButtonCenterRight, []ebiten.Key{ebiten.KeyEnter, ebiten.KeyEscape}},
	{input.ButtonSelect, ebiten.StandardGamepadButtonCenterLeft, []ebiten.Key{ebiten.KeyTab}},
}

var _ input.Reader = (*Controller)(nil)

// Controller samples the first standard-layout gamepad merged with the
// keyboard. IJKL stand in for the analog stick.
type Controller struct {
	gamepads []ebiten.GamepadID

	// IgnoreKeyboard drops keyboard input, for when a debug window has focus.
	IgnoreKeyboard bool
}

func (c *Controller) pad() (ebiten.GamepadID, bool) {
	c.gamepads = ebiten.AppendGamepadIDs(c.gamepads[:0])
	for _, id := range c.gamepads {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			return id, true
		}
	}
	return 0, false
}

func (c *Controller) key(k ebiten.Key) bool {
	return !c.IgnoreKeyboard && ebiten.IsKeyPressed(k)
}

func (c *Controller) ReadSample() input.Sample {
	id, pad := c.pad()

	s := input.NeutralSample
	for _, b := range padButtons {
		down := pad && ebiten.IsStandardGamepadButtonPressed(id, b.gamepad)
		for _, k := range b.keys {
			down = down || c.key(k)
		}
		if down {
			s.Buttons |= b.button
		}
	}

	if pad {
		s.Lx = input.AxisByte(float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)))
		s.Ly = input.AxisByte(float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)))
	}
	switch {
	case c.key(ebiten.KeyJ):
		s.Lx = 255
	case c.key(ebiten.KeyL):
		s.Lx = 0
	}
	switch {
	case c.key(ebiten.KeyI):
		s.Ly = 255
	case c.key(ebiten.KeyK):
		s.Ly = 0
	}
	return s
}
