package savedata

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// FlowState is the position of a Flow in the dialog lifecycle.
type FlowState int

const (
	FlowIdle FlowState = iota
	FlowInitializing
	FlowActive
	FlowShuttingDown
	FlowDone
	FlowFailed
)

var flowStateNames = [...]string{"idle", "initializing", "active", "shutting-down", "done", "failed"}

func (s FlowState) String() string {
	if s < 0 || int(s) >= len(flowStateNames) {
		return fmt.Sprintf("FlowState(%d)", int(s))
	}
	return flowStateNames[s]
}

// Terminal reports whether no further steps will change the state.
func (s FlowState) Terminal() bool {
	return s == FlowDone || s == FlowFailed
}

// Flow drives one dialog session:
//
//	Idle -> Initializing -> Active -> ShuttingDown -> Done | Failed
//
// Each Step polls the service once. There is no cancellation; a session only
// ends when the service reports it has finished.
type Flow struct {
	svc    Service
	params *Params
	log    *zap.Logger

	state FlowState
	err   error
	polls int
}

// NewFlow prepares a session. A nil logger is replaced with a no-op one.
func NewFlow(svc Service, params *Params, log *zap.Logger) *Flow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Flow{svc: svc, params: params, log: log}
}

func (f *Flow) State() FlowState { return f.state }

// Err is the failure that moved the flow to FlowFailed.
func (f *Flow) Err() error { return f.err }

// Polls is the number of status polls made so far.
func (f *Flow) Polls() int { return f.polls }

// Step advances the flow by one poll and returns the new state.
func (f *Flow) Step() FlowState {
	switch f.state {
	case FlowIdle:
		f.log.Info("dialog init", zap.Stringer("mode", f.params.Mode), zap.Int("bytes", len(f.params.Data)))
		if err := f.svc.Init(f.params); err != nil {
			f.fail(err)
			break
		}
		f.state = FlowInitializing

	case FlowInitializing, FlowActive:
		f.polls++
		switch status := f.svc.Status(); status {
		case StatusInit:
			f.svc.Update()
		case StatusVisible:
			if f.state == FlowInitializing {
				f.log.Debug("dialog visible", zap.Int("polls", f.polls))
				f.state = FlowActive
			}
			f.svc.Update()
		case StatusQuit:
			f.svc.Shutdown()
			f.state = FlowShuttingDown
		default:
			f.finish()
		}

	case FlowShuttingDown:
		f.polls++
		if status := f.svc.Status(); status == StatusFinished || status == StatusNone {
			f.finish()
		}
	}
	return f.state
}

func (f *Flow) finish() {
	if err := f.svc.Result(); err != nil {
		f.fail(err)
		return
	}
	f.log.Info("dialog finished", zap.Stringer("mode", f.params.Mode), zap.Int("polls", f.polls))
	f.state = FlowDone
}

func (f *Flow) fail(err error) {
	f.err = fmt.Errorf("%w: %s: %w", ErrDialogFailed, f.params.Mode, err)
	f.log.Warn("dialog failed", zap.Error(err))
	f.state = FlowFailed
}

// Run steps the flow until it is terminal, sleeping interval between polls.
// It blocks the caller for the whole session.
func (f *Flow) Run(interval time.Duration) error {
	for !f.Step().Terminal() {
		time.Sleep(interval)
	}
	return f.err
}
