// Package savedata models the console's modal save/load dialog: a service
// that is started with a parameter block, pumped every frame until it reports
// that it has quit, and then shut down.
package savedata

import (
	"errors"
	"fmt"
)

// ErrDialogFailed is returned when the dialog cannot start or reports a
// failed result.
var ErrDialogFailed = errors.New("savedata: dialog failed")

// Mode selects whether the dialog writes or reads a slot.
type Mode int

const (
	ModeSave Mode = iota
	ModeLoad
)

func (m Mode) String() string {
	switch m {
	case ModeSave:
		return "save"
	case ModeLoad:
		return "load"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Status is what the dialog service reports when polled.
type Status int

const (
	StatusNone Status = iota
	StatusInit
	StatusVisible
	StatusQuit
	StatusFinished
)

var statusNames = [...]string{"none", "init", "visible", "quit", "finished"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// Params is the parameter block handed to the dialog. In load mode Data is
// the destination buffer and must already have the expected length.
type Params struct {
	Mode      Mode
	GameName  string
	SaveName  string
	SlotNames []string
	Title     string
	Detail    string
	Data      []byte
}

// Service is a modal save/load dialog.
type Service interface {
	// Init starts the dialog. It must not block.
	Init(p *Params) error
	Status() Status
	// Update pumps the dialog while it is initializing or visible.
	Update()
	// Shutdown is called once the dialog reports StatusQuit.
	Shutdown()
	// Result is the outcome of the finished dialog.
	Result() error
}
