package menu_test

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/plus3/pspecs/input"
	"github.com/plus3/pspecs/menu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScene struct {
	resets, saves, loads int
	populated            int
	saveErr, loadErr     error
	resetErr             error
}

func (s *fakeScene) ResetToDefault() error   { s.resets++; return s.resetErr }
func (s *fakeScene) Save() error             { s.saves++; return s.saveErr }
func (s *fakeScene) Load() error             { s.loads++; return s.loadErr }
func (s *fakeScene) PopulatedSaveCount() int { return s.populated }

type fakeFeedback struct {
	navigates, selects, errors int
}

func (f *fakeFeedback) Navigate() { f.navigates++ }
func (f *fakeFeedback) Select()   { f.selects++ }
func (f *fakeFeedback) Error()    { f.errors++ }

// driver feeds samples to a menu one frame at a time, keeping the previous
// sample like the frame loop does.
type driver struct {
	t     *testing.T
	m     *menu.Menu
	binds *input.Bindings
	frame input.Frame
}

func newDriver(t *testing.T, scene menu.Scene) *driver {
	return &driver{t: t, m: menu.New(scene, nil), binds: input.DefaultBindings()}
}

func (d *driver) hold(b input.Button) {
	d.frame = d.frame.Next(input.Sample{Buttons: b, Lx: input.AxisCenter, Ly: input.AxisCenter})
	d.m.Update(d.binds, d.frame)
}

// tap presses and releases b over two frames.
func (d *driver) tap(b input.Button) {
	d.hold(b)
	d.hold(0)
}

func TestShowHideToggle(t *testing.T) {
	m := menu.New(&fakeScene{}, nil)
	assert.False(t, m.IsActive())
	assert.Equal(t, menu.StateNone, m.State())

	m.Toggle()
	assert.True(t, m.IsActive())
	assert.Equal(t, menu.StateMain, m.State())
	assert.Equal(t, 0, m.Selected())

	m.Toggle()
	assert.False(t, m.IsActive())
}

func TestUpdateIgnoredWhileHidden(t *testing.T) {
	d := newDriver(t, &fakeScene{})
	d.tap(input.ButtonDown)
	assert.Equal(t, 0, d.m.Selected())
}

func TestNavigationWraps(t *testing.T) {
	d := newDriver(t, &fakeScene{})
	d.m.Show(menu.StateMain)

	d.tap(input.ButtonUp)
	assert.Equal(t, 3, d.m.Selected(), "up from first wraps to last")

	d.tap(input.ButtonDown)
	assert.Equal(t, 0, d.m.Selected(), "down from last wraps to first")

	d.tap(input.ButtonDown)
	d.tap(input.ButtonDown)
	assert.Equal(t, 2, d.m.Selected())
}

func TestNavigationIsEdgeTriggered(t *testing.T) {
	d := newDriver(t, &fakeScene{})
	d.m.Show(menu.StateMain)

	for range 30 {
		d.hold(input.ButtonDown)
	}
	assert.Equal(t, 1, d.m.Selected())

	d.hold(0)
	d.hold(input.ButtonDown)
	assert.Equal(t, 2, d.m.Selected())
}

func TestSelectionStaysInRange(t *testing.T) {
	d := newDriver(t, &fakeScene{})
	d.m.Show(menu.StateMain)
	rng := rand.New(rand.NewPCG(1, 2))

	buttons := []input.Button{input.ButtonUp, input.ButtonDown, 0, input.ButtonUp | input.ButtonDown}
	for range 2000 {
		d.hold(buttons[rng.IntN(len(buttons))])
		n := len(d.m.Items())
		require.GreaterOrEqual(t, d.m.Selected(), 0)
		require.Less(t, d.m.Selected(), n)
	}
}

func TestOptionsAndBack(t *testing.T) {
	d := newDriver(t, &fakeScene{})
	d.m.Show(menu.StateMain)

	d.tap(input.ButtonUp) // Options
	d.tap(input.ButtonCross)
	require.Equal(t, menu.StateOptions, d.m.State())
	assert.Equal(t, 0, d.m.Selected())

	d.tap(input.ButtonCross) // Keybindings
	require.Equal(t, menu.StateKeybindings, d.m.State())
	assert.Empty(t, d.m.Items())

	d.tap(input.ButtonDown)
	d.tap(input.ButtonCross)
	assert.Equal(t, menu.StateKeybindings, d.m.State(), "keybindings screen has nothing to select")

	d.tap(input.ButtonCircle)
	assert.Equal(t, menu.StateMain, d.m.State())
	assert.True(t, d.m.IsActive())

	d.tap(input.ButtonCircle)
	assert.False(t, d.m.IsActive(), "back from main closes the menu")
}

func TestOptionsBackItem(t *testing.T) {
	d := newDriver(t, &fakeScene{})
	d.m.Show(menu.StateOptions)

	d.tap(input.ButtonDown)
	d.tap(input.ButtonCross)
	assert.Equal(t, menu.StateMain, d.m.State())
	assert.Equal(t, 0, d.m.Selected())
}

func TestStartResetsAndHides(t *testing.T) {
	scene := &fakeScene{}
	d := newDriver(t, scene)
	d.m.Show(menu.StateMain)

	d.tap(input.ButtonCross)
	assert.Equal(t, 1, scene.resets)
	assert.False(t, d.m.IsActive())
}

func TestStartFailureKeepsMenu(t *testing.T) {
	scene := &fakeScene{resetErr: errors.New("full")}
	d := newDriver(t, scene)
	d.m.Show(menu.StateMain)

	d.tap(input.ButtonCross)
	assert.True(t, d.m.IsActive())
	msg, _ := d.m.Status()
	assert.Equal(t, menu.MsgResetFailed, msg)
}

func TestSaveStatus(t *testing.T) {
	scene := &fakeScene{}
	d := newDriver(t, scene)
	d.m.Show(menu.StateMain)
	d.tap(input.ButtonDown)

	d.hold(input.ButtonCross)
	assert.Equal(t, 1, scene.saves)
	msg, frames := d.m.Status()
	assert.Equal(t, menu.MsgSaved, msg)
	assert.Equal(t, menu.StatusFrames, frames)

	scene.saveErr = errors.New("disk full")
	d.hold(0)
	d.hold(input.ButtonCross)
	msg, _ = d.m.Status()
	assert.Equal(t, menu.MsgSaveFailed, msg)
}

func TestLoadWithoutSaves(t *testing.T) {
	scene := &fakeScene{}
	fb := &fakeFeedback{}
	d := newDriver(t, scene)
	d.m.SetFeedback(fb)
	d.m.Show(menu.StateMain)
	d.tap(input.ButtonDown)
	d.tap(input.ButtonDown)

	d.hold(input.ButtonCross)
	assert.Zero(t, scene.loads, "load must not run without saves")
	msg, _ := d.m.Status()
	assert.Equal(t, menu.MsgNoSaves, msg)
	assert.Equal(t, 1, fb.errors)
}

func TestLoadOutcomes(t *testing.T) {
	scene := &fakeScene{populated: 2, loadErr: errors.New("corrupt")}
	d := newDriver(t, scene)
	d.m.Show(menu.StateMain)
	d.tap(input.ButtonDown)
	d.tap(input.ButtonDown)

	d.tap(input.ButtonCross)
	msg, _ := d.m.Status()
	assert.Equal(t, menu.MsgLoadFailed, msg)

	scene.loadErr = nil
	d.tap(input.ButtonCross)
	msg, _ = d.m.Status()
	assert.Equal(t, menu.MsgLoaded, msg)
	assert.Equal(t, 2, scene.loads)
}

func TestStatusDecays(t *testing.T) {
	d := newDriver(t, &fakeScene{})
	d.m.Show(menu.StateMain)
	d.m.ShowStatus("hello", 3)

	d.hold(0)
	msg, frames := d.m.Status()
	assert.Equal(t, "hello", msg)
	assert.Equal(t, 2, frames)

	d.hold(0)
	d.hold(0)
	msg, frames = d.m.Status()
	assert.Empty(t, msg)
	assert.Zero(t, frames)
}

func TestStatusFrozenWhileHidden(t *testing.T) {
	d := newDriver(t, &fakeScene{})
	d.m.ShowStatus("hello", 3)
	for range 10 {
		d.hold(0)
	}
	_, frames := d.m.Status()
	assert.Equal(t, 3, frames)
}

func TestStatusTruncated(t *testing.T) {
	m := menu.New(&fakeScene{}, nil)

	m.ShowStatus(strings.Repeat("x", 100), 10)
	msg, _ := m.Status()
	assert.Len(t, msg, menu.MaxStatusLen)

	m.ShowStatus(strings.Repeat("x", 62)+"é", 10)
	msg, _ = m.Status()
	assert.Equal(t, strings.Repeat("x", 62), msg, "does not split a rune")
}

func TestFeedback(t *testing.T) {
	fb := &fakeFeedback{}
	d := newDriver(t, &fakeScene{})
	d.m.SetFeedback(fb)
	d.m.Show(menu.StateMain)

	d.tap(input.ButtonDown)
	d.tap(input.ButtonUp)
	d.tap(input.ButtonUp) // Options
	d.tap(input.ButtonCross)

	assert.Equal(t, 3, fb.navigates)
	assert.Equal(t, 1, fb.selects)
	assert.Zero(t, fb.errors)

	d.m.SetFeedback(nil)
	assert.NotPanics(t, func() { d.tap(input.ButtonDown) })
}
