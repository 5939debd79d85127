package scene

import (
	"encoding/binary"
	"fmt"

	"github.com/plus3/pspecs/ecs"
)

// Entry is the saved state of one entity. Components whose bit is not set in
// Mask are zero.
type Entry struct {
	Mask       ecs.Mask
	Transform  ecs.Transform
	Renderable ecs.Renderable
	Camera     ecs.Camera
	Input      ecs.Input
}

// Snapshot is a dense copy of every active entity in slot order.
type Snapshot struct {
	Entries []Entry
}

// The on-disk record is fixed size: an int32 entry count followed by
// MaxEntities entries, little endian, no version field.
type wireTransform struct {
	Position, Rotation, Scale [3]float32
}

type wireRenderable struct {
	Shape int32
	Color [4]uint8
	Size  [3]float32
}

type wireCamera struct {
	Position, Target, Up [3]float32
	Fovy                 float32
	Projection           int32
	MoveSpeed, LookSpeed float32
}

type wireEntry struct {
	Mask       uint32
	Transform  wireTransform
	Renderable wireRenderable
	Camera     wireCamera
	Active     bool
	_          [3]byte
}

type wireRecord struct {
	Count   int32
	Entries [ecs.MaxEntities]wireEntry
}

// EntrySize and RecordSize are the encoded sizes in bytes.
var (
	EntrySize  = binary.Size(wireEntry{})
	RecordSize = binary.Size(wireRecord{})
)

var knownKinds = ecs.MaskOf(ecs.KindTransform, ecs.KindRenderable, ecs.KindCamera, ecs.KindInput)

// Capture copies every active entity of w.
func Capture(w *ecs.World) *Snapshot {
	s := &Snapshot{Entries: make([]Entry, 0, w.Count())}
	for id := range w.Entities(0) {
		e := Entry{Mask: w.Mask(id)}
		if t := ecs.ReadComponent[ecs.Transform](w, id); t != nil {
			e.Transform = *t
		}
		if r := ecs.ReadComponent[ecs.Renderable](w, id); r != nil {
			e.Renderable = *r
		}
		if c := ecs.ReadComponent[ecs.Camera](w, id); c != nil {
			e.Camera = *c
			e.Camera.Pitch = 0
		}
		if in := ecs.ReadComponent[ecs.Input](w, id); in != nil {
			e.Input = *in
		}
		s.Entries = append(s.Entries, e)
	}
	return s
}

// Restore resets w and recreates one entity per entry, adding only the kinds
// set in the entry mask.
func (s *Snapshot) Restore(w *ecs.World) error {
	if len(s.Entries) > ecs.MaxEntities {
		return fmt.Errorf("restore %d entries: %w", len(s.Entries), ecs.ErrCapacityExceeded)
	}
	w.Reset()

	for _, e := range s.Entries {
		id, err := w.CreateEntity()
		if err != nil {
			return err
		}
		if e.Mask.Has(ecs.KindTransform) {
			*ecs.AddComponentOf[ecs.Transform](w, id) = e.Transform
		}
		if e.Mask.Has(ecs.KindRenderable) {
			*ecs.AddComponentOf[ecs.Renderable](w, id) = e.Renderable
		}
		if e.Mask.Has(ecs.KindCamera) {
			*ecs.AddComponentOf[ecs.Camera](w, id) = e.Camera
		}
		if e.Mask.Has(ecs.KindInput) {
			*ecs.AddComponentOf[ecs.Input](w, id) = e.Input
		}
	}
	return nil
}

// MarshalBinary encodes the snapshot as a RecordSize byte record.
func (s *Snapshot) MarshalBinary() ([]byte, error) {
	if len(s.Entries) > ecs.MaxEntities {
		return nil, fmt.Errorf("encode %d entries: %w", len(s.Entries), ecs.ErrCapacityExceeded)
	}

	rec := new(wireRecord)
	rec.Count = int32(len(s.Entries))
	for i, e := range s.Entries {
		rec.Entries[i] = toWire(e)
	}

	buf := make([]byte, RecordSize)
	if _, err := binary.Encode(buf, binary.LittleEndian, rec); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return buf, nil
}

// UnmarshalBinary decodes a record produced by MarshalBinary.
func (s *Snapshot) UnmarshalBinary(data []byte) error {
	if len(data) != RecordSize {
		return fmt.Errorf("decode record: got %d bytes, want %d", len(data), RecordSize)
	}

	rec := new(wireRecord)
	if _, err := binary.Decode(data, binary.LittleEndian, rec); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if rec.Count < 0 || rec.Count > ecs.MaxEntities {
		return fmt.Errorf("decode record: entry count %d out of range", rec.Count)
	}

	s.Entries = make([]Entry, rec.Count)
	for i := range s.Entries {
		s.Entries[i] = fromWire(&rec.Entries[i])
	}
	return nil
}

func toWire(e Entry) wireEntry {
	c := e.Renderable.Color
	cam := e.Camera
	return wireEntry{
		Mask: uint32(e.Mask & knownKinds),
		Transform: wireTransform{
			Position: e.Transform.Position,
			Rotation: e.Transform.Rotation,
			Scale:    e.Transform.Scale,
		},
		Renderable: wireRenderable{
			Shape: int32(e.Renderable.Shape),
			Color: [4]uint8{c.R, c.G, c.B, c.A},
			Size:  e.Renderable.Size,
		},
		Camera: wireCamera{
			Position:   cam.View.Position,
			Target:     cam.View.Target,
			Up:         cam.View.Up,
			Fovy:       cam.View.Fovy,
			Projection: int32(cam.View.Projection),
			MoveSpeed:  cam.MoveSpeed,
			LookSpeed:  cam.LookSpeed,
		},
		Active: e.Input.Active,
	}
}

func fromWire(w *wireEntry) Entry {
	c := w.Renderable.Color
	return Entry{
		Mask: ecs.Mask(w.Mask) & knownKinds,
		Transform: ecs.Transform{
			Position: w.Transform.Position,
			Rotation: w.Transform.Rotation,
			Scale:    w.Transform.Scale,
		},
		Renderable: ecs.Renderable{
			Shape: ecs.Shape(w.Renderable.Shape),
			Color: ecs.Color{R: c[0], G: c[1], B: c[2], A: c[3]},
			Size:  w.Renderable.Size,
		},
		Camera: ecs.Camera{
			View: ecs.View{
				Position:   w.Camera.Position,
				Target:     w.Camera.Target,
				Up:         w.Camera.Up,
				Fovy:       w.Camera.Fovy,
				Projection: ecs.Projection(w.Camera.Projection),
			},
			MoveSpeed: w.Camera.MoveSpeed,
			LookSpeed: w.Camera.LookSpeed,
		},
		Input: ecs.Input{Active: w.Active},
	}
}
