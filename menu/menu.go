// Package menu is the pause menu: a flat set of screens driven by
// edge-triggered controller input, plus a transient status line.
package menu

import (
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/plus3/pspecs/input"
)

// State is the screen the menu shows. StateNone means no screen is selected.
type State int

const (
	StateNone State = iota
	StateMain
	StateOptions
	StateKeybindings
)

func (s State) String() string {
	switch s {
	case StateMain:
		return "Main"
	case StateOptions:
		return "Options"
	case StateKeybindings:
		return "Keybindings"
	}
	return "None"
}

// Action is what selecting an item does.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionSave
	ActionLoad
	ActionOptions
	ActionKeybindings
	ActionBack
)

type Item struct {
	Text   string
	Action Action
}

var (
	mainItems = []Item{
		{"Start Game", ActionStart},
		{"Save Game", ActionSave},
		{"Load Game", ActionLoad},
		{"Options", ActionOptions},
	}
	optionsItems = []Item{
		{"Keybindings", ActionKeybindings},
		{"Back", ActionBack},
	}
)

const (
	// StatusFrames is how many active updates a status message stays up.
	StatusFrames = 180
	// MaxStatusLen bounds status messages in bytes.
	MaxStatusLen = 63
)

const (
	MsgNoSaves     = "No saves found!"
	MsgLoadFailed  = "Load failed"
	MsgLoaded      = "Game loaded"
	MsgSaved       = "Game saved"
	MsgSaveFailed  = "Save failed"
	MsgResetFailed = "Reset failed"
)

// Scene is the game the menu acts on.
type Scene interface {
	ResetToDefault() error
	Save() error
	Load() error
	PopulatedSaveCount() int
}

// Feedback is notified of menu interaction, e.g. to play sounds.
type Feedback interface {
	Navigate()
	Select()
	Error()
}

type nopFeedback struct{}

func (nopFeedback) Navigate() {}
func (nopFeedback) Select()   {}
func (nopFeedback) Error()    {}

type Menu struct {
	state    State
	selected int
	active   bool

	status       string
	statusFrames int

	scene    Scene
	feedback Feedback
	log      *zap.Logger
}

// New returns an inactive menu acting on scene.
func New(scene Scene, log *zap.Logger) *Menu {
	if log == nil {
		log = zap.NewNop()
	}
	return &Menu{scene: scene, feedback: nopFeedback{}, log: log}
}

// SetFeedback installs f, or removes feedback when f is nil.
func (m *Menu) SetFeedback(f Feedback) {
	if f == nil {
		f = nopFeedback{}
	}
	m.feedback = f
}

func (m *Menu) IsActive() bool { return m.active }
func (m *Menu) State() State   { return m.state }
func (m *Menu) Selected() int  { return m.selected }

// Show activates the menu on the given screen with the first item selected.
func (m *Menu) Show(state State) {
	m.state = state
	m.selected = 0
	m.active = true
}

func (m *Menu) Hide() {
	m.active = false
}

// Toggle opens the main screen, or closes the menu if it is open.
func (m *Menu) Toggle() {
	if m.active {
		m.Hide()
		return
	}
	m.Show(StateMain)
}

// Items returns the selectable items of the current screen.
func (m *Menu) Items() []Item {
	switch m.state {
	case StateMain:
		return mainItems
	case StateOptions:
		return optionsItems
	}
	return nil
}

// Status returns the current status message and the updates it has left.
func (m *Menu) Status() (string, int) {
	return m.status, m.statusFrames
}

// ShowStatus sets the status message, truncated to MaxStatusLen bytes.
func (m *Menu) ShowStatus(msg string, frames int) {
	if len(msg) > MaxStatusLen {
		cut := MaxStatusLen
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut]
	}
	m.status = msg
	m.statusFrames = frames
	if frames <= 0 {
		m.status, m.statusFrames = "", 0
	}
}

// Update runs one frame of menu logic. It does nothing while the menu is
// hidden.
func (m *Menu) Update(binds *input.Bindings, f input.Frame) {
	if !m.active {
		return
	}

	if m.statusFrames > 0 {
		m.statusFrames--
		if m.statusFrames == 0 {
			m.status = ""
		}
	}

	if n := len(m.Items()); n > 0 {
		if binds.Pressed(input.ActionMenuDown, f) {
			m.selected = (m.selected + 1) % n
			m.feedback.Navigate()
		}
		if binds.Pressed(input.ActionMenuUp, f) {
			m.selected = (m.selected - 1 + n) % n
			m.feedback.Navigate()
		}
	}

	switch {
	case binds.Pressed(input.ActionMenuSelect, f):
		m.Activate()
	case binds.Pressed(input.ActionMenuBack, f):
		m.Back()
	}
}

// Activate invokes the selected item of the current screen.
func (m *Menu) Activate() {
	items := m.Items()
	if m.selected < 0 || m.selected >= len(items) {
		return
	}
	m.feedback.Select()
	m.dispatch(items[m.selected].Action)
}

// Back returns to the main screen, or closes the menu from the main screen.
func (m *Menu) Back() {
	if m.state == StateMain {
		m.Hide()
		return
	}
	m.goTo(StateMain)
}

func (m *Menu) goTo(state State) {
	m.state = state
	m.selected = 0
}

func (m *Menu) dispatch(action Action) {
	m.log.Debug("menu action", zap.Int("action", int(action)), zap.Stringer("screen", m.state))

	switch action {
	case ActionStart:
		if err := m.scene.ResetToDefault(); err != nil {
			m.fail(MsgResetFailed, err)
			return
		}
		m.Hide()

	case ActionSave:
		if err := m.scene.Save(); err != nil {
			m.fail(MsgSaveFailed, err)
			return
		}
		m.ShowStatus(MsgSaved, StatusFrames)

	case ActionLoad:
		if m.scene.PopulatedSaveCount() <= 0 {
			m.fail(MsgNoSaves, nil)
			return
		}
		if err := m.scene.Load(); err != nil {
			m.fail(MsgLoadFailed, err)
			return
		}
		m.ShowStatus(MsgLoaded, StatusFrames)

	case ActionOptions:
		m.goTo(StateOptions)

	case ActionKeybindings:
		m.goTo(StateKeybindings)

	case ActionBack:
		m.goTo(StateMain)
	}
}

func (m *Menu) fail(msg string, err error) {
	if err != nil {
		m.log.Warn(msg, zap.Error(err))
	}
	m.feedback.Error()
	m.ShowStatus(msg, StatusFrames)
}
