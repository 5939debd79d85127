package input

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Action is a logical input action that is bound to a button.
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionMenuUp
	ActionMenuDown
	ActionMenuSelect
	ActionMenuBack
	ActionToggleMenu

	ActionCount
)

var actionNames = [ActionCount]string{
	"Move Forward",
	"Move Backward",
	"Move Left",
	"Move Right",
	"Move Up",
	"Move Down",
	"Menu Up",
	"Menu Down",
	"Menu Select",
	"Menu Back",
	"Toggle Menu",
}

// Name returns the display name of the action, or "" when out of range.
func (a Action) Name() string {
	if a < 0 || a >= ActionCount {
		return ""
	}
	return actionNames[a]
}

func (a Action) String() string {
	return a.Name()
}

var defaultBindings = [ActionCount]Button{
	ActionMoveForward:  ButtonUp,
	ActionMoveBackward: ButtonDown,
	ActionMoveLeft:     ButtonLeft,
	ActionMoveRight:    ButtonRight,
	ActionMoveUp:       ButtonLTrigger,
	ActionMoveDown:     ButtonRTrigger,
	ActionMenuUp:       ButtonUp,
	ActionMenuDown:     ButtonDown,
	ActionMenuSelect:   ButtonCross,
	ActionMenuBack:     ButtonCircle,
	ActionToggleMenu:   ButtonStart,
}

// Bindings maps every action to exactly one button.
type Bindings struct {
	buttons [ActionCount]Button
}

// DefaultBindings returns the stock control scheme.
func DefaultBindings() *Bindings {
	return &Bindings{buttons: defaultBindings}
}

// Set rebinds action to button. Unknown actions are ignored.
func (b *Bindings) Set(action Action, button Button) {
	if action < 0 || action >= ActionCount {
		return
	}
	b.buttons[action] = button
}

// Get returns the button bound to action, or 0 for unknown actions.
func (b *Bindings) Get(action Action) Button {
	if action < 0 || action >= ActionCount {
		return 0
	}
	return b.buttons[action]
}

// Held reports whether the action's button is down in the current sample.
func (b *Bindings) Held(action Action, f Frame) bool {
	button := b.Get(action)
	return button != 0 && f.Held(button)
}

// Pressed reports whether the action's button went down this frame.
func (b *Bindings) Pressed(action Action, f Frame) bool {
	button := b.Get(action)
	return button != 0 && f.Pressed(button)
}

type bindingEntry struct {
	Action string `yaml:"action"`
	Button string `yaml:"button"`
}

// Save writes the bindings to path as YAML.
func (b *Bindings) Save(path string) error {
	entries := make([]bindingEntry, 0, ActionCount)
	for a := range ActionCount {
		entries = append(entries, bindingEntry{Action: a.Name(), Button: b.buttons[a].String()})
	}

	raw, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode keybinds: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write keybinds %s: %w", path, err)
	}
	return nil
}

// Load reads bindings written by Save. Actions missing from the file keep
// their current binding; unknown actions or buttons are an error and leave
// the bindings untouched.
func (b *Bindings) Load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read keybinds %s: %w", path, err)
	}

	var entries []bindingEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("parse keybinds %s: %w", path, err)
	}

	next := b.buttons
	for _, e := range entries {
		action, ok := actionByName(e.Action)
		if !ok {
			return fmt.Errorf("parse keybinds %s: unknown action %q", path, e.Action)
		}
		button, ok := ParseButton(e.Button)
		if !ok {
			return fmt.Errorf("parse keybinds %s: unknown button %q", path, e.Button)
		}
		next[action] = button
	}

	b.buttons = next
	return nil
}

func actionByName(name string) (Action, bool) {
	for a := range ActionCount {
		if a.Name() == name {
			return a, true
		}
	}
	return 0, false
}
