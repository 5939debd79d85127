// Package scene saves, loads and resets the demo scene held in an ecs.World.
package scene

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/pspecs/ecs"
	"github.com/plus3/pspecs/savedata"
)

var (
	// ErrPersistence is wrapped by every save or load failure.
	ErrPersistence = errors.New("scene: persistence failed")
	// ErrNoSaves is returned by Load when no slot holds a save.
	ErrNoSaves = fmt.Errorf("%w: no saves found", ErrPersistence)
)

// Options describe the save namespace and the metadata shown by the dialog.
type Options struct {
	Dir          string
	GameName     string
	SaveName     string
	Title        string
	Detail       string
	SlotCount    int
	PollInterval time.Duration
}

// DefaultOptions is a ten-slot namespace polled once per frame.
func DefaultOptions() Options {
	return Options{
		Dir:          "SAVEDATA",
		GameName:     "PSPECS000",
		SaveName:     "0000",
		Title:        "PSP-ECS Demo",
		Detail:       "Scene snapshot",
		SlotCount:    10,
		PollInterval: time.Second / 60,
	}
}

// Persistence moves snapshots of a World through a save dialog.
type Persistence struct {
	opts  Options
	slots []string
	svc   savedata.Service
	log   *zap.Logger
}

// NewPersistence returns a Persistence that runs svc with opts. Milestones
// are written to log, which may be nil.
func NewPersistence(opts Options, svc savedata.Service, log *zap.Logger) *Persistence {
	if log == nil {
		log = zap.NewNop()
	}
	return &Persistence{
		opts:  opts,
		slots: savedata.SlotNames(opts.SlotCount),
		svc:   svc,
		log:   log,
	}
}

func (p *Persistence) params(mode savedata.Mode, data []byte) *savedata.Params {
	return &savedata.Params{
		Mode:      mode,
		GameName:  p.opts.GameName,
		SaveName:  p.opts.SaveName,
		SlotNames: p.slots,
		Title:     p.opts.Title,
		Detail:    p.opts.Detail,
		Data:      data,
	}
}

// Save writes a snapshot of w through the dialog. The world is not modified.
func (p *Persistence) Save(w *ecs.World) error {
	snap := Capture(w)
	p.log.Info("save start", zap.Int("entities", len(snap.Entries)))

	data, err := snap.MarshalBinary()
	if err != nil {
		p.log.Error("save encode", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	flow := savedata.NewFlow(p.svc, p.params(savedata.ModeSave, data), p.log)
	if err := flow.Run(p.opts.PollInterval); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	p.log.Info("save complete", zap.Int("bytes", len(data)), zap.Int("polls", flow.Polls()))
	return nil
}

// Load replaces the contents of w with the newest save. When no slot is
// populated it returns ErrNoSaves without starting the dialog. On any
// failure w is left as it was.
func (p *Persistence) Load(w *ecs.World) error {
	if p.PopulatedSaveCount() == 0 {
		p.log.Info("load skipped, no saves")
		return ErrNoSaves
	}

	data := make([]byte, RecordSize)
	flow := savedata.NewFlow(p.svc, p.params(savedata.ModeLoad, data), p.log)
	if err := flow.Run(p.opts.PollInterval); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	var snap Snapshot
	if err := snap.UnmarshalBinary(data); err != nil {
		p.log.Error("load decode", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if err := snap.Restore(w); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	p.log.Info("load complete", zap.Int("entities", len(snap.Entries)))
	return nil
}

// PopulatedSaveCount is the number of slots in the namespace holding a save.
func (p *Persistence) PopulatedSaveCount() int {
	return len(savedata.PopulatedSlots(p.opts.Dir, p.opts.GameName, p.slots))
}

// ResetToDefault replaces the contents of w with the demo layout.
func (p *Persistence) ResetToDefault(w *ecs.World) error {
	p.log.Info("reset to default")
	return ResetToDefault(w)
}
