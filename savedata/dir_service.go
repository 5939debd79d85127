package savedata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// MetaFile holds the display metadata written next to each payload.
const MetaFile = "PARAM.YAML"

// Meta is the display metadata of a saved slot.
type Meta struct {
	GameName string    `yaml:"game_name"`
	SaveName string    `yaml:"save_name"`
	Title    string    `yaml:"title"`
	Detail   string    `yaml:"detail"`
	SavedAt  time.Time `yaml:"saved_at"`
}

// DirService is a Service backed by a directory on disk. It walks through
// the same status sequence as the console dialog (init, visible, quit,
// finished) without user interaction: a save goes to the first empty slot,
// or overwrites the oldest when every slot is taken; a load reads the most
// recently written slot.
type DirService struct {
	Root string
	// Now stamps written slots. Defaults to time.Now.
	Now func() time.Time

	params *Params
	status Status
	result error
	slot   string
}

// NewDirService returns a service rooted at dir.
func NewDirService(dir string) *DirService {
	return &DirService{Root: dir}
}

func (s *DirService) Init(p *Params) error {
	switch {
	case s.status == StatusInit || s.status == StatusVisible || s.status == StatusQuit:
		return errors.New("dialog already running")
	case s.Root == "":
		return errors.New("no save directory")
	case p == nil:
		return errors.New("nil params")
	case len(p.SlotNames) == 0:
		return errors.New("empty slot list")
	case p.Mode == ModeLoad && len(p.Data) == 0:
		return errors.New("no load buffer")
	}
	s.params = p
	s.status = StatusInit
	s.result = nil
	s.slot = ""
	return nil
}

func (s *DirService) Status() Status { return s.status }

func (s *DirService) Update() {
	switch s.status {
	case StatusInit:
		s.status = StatusVisible
	case StatusVisible:
		if s.params.Mode == ModeSave {
			s.result = s.save()
		} else {
			s.result = s.load()
		}
		s.status = StatusQuit
	}
}

func (s *DirService) Shutdown() {
	if s.status == StatusQuit {
		s.status = StatusFinished
	}
}

func (s *DirService) Result() error { return s.result }

// Slot is the slot the last session wrote or read.
func (s *DirService) Slot() string { return s.slot }

func (s *DirService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DirService) save() error {
	p := s.params
	slot := s.pickSaveSlot()

	dir := SlotDir(s.Root, p.GameName, slot)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create slot %s: %w", slot, err)
	}

	stamp := s.now()
	meta, err := yaml.Marshal(Meta{
		GameName: p.GameName,
		SaveName: slot,
		Title:    p.Title,
		Detail:   p.Detail,
		SavedAt:  stamp,
	})
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := writeFile(filepath.Join(dir, MetaFile), meta); err != nil {
		return err
	}

	path := filepath.Join(dir, DataFile)
	if err := writeFile(path, p.Data); err != nil {
		return err
	}
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		return fmt.Errorf("stamp slot %s: %w", slot, err)
	}
	s.slot = slot
	return nil
}

func (s *DirService) load() error {
	p := s.params
	slot, ok := s.newestSlot()
	if !ok {
		return errors.New("no populated slot")
	}

	data, err := os.ReadFile(SlotPath(s.Root, p.GameName, slot))
	if err != nil {
		return fmt.Errorf("read slot %s: %w", slot, err)
	}
	if len(data) != len(p.Data) {
		return fmt.Errorf("slot %s holds %d bytes, want %d", slot, len(data), len(p.Data))
	}
	copy(p.Data, data)
	s.slot = slot
	return nil
}

func (s *DirService) pickSaveSlot() string {
	p := s.params
	var oldest string
	var oldestTime time.Time
	for _, slot := range p.SlotNames {
		info, err := os.Stat(SlotPath(s.Root, p.GameName, slot))
		if err != nil {
			return slot
		}
		if oldest == "" || info.ModTime().Before(oldestTime) {
			oldest, oldestTime = slot, info.ModTime()
		}
	}
	return oldest
}

func (s *DirService) newestSlot() (string, bool) {
	p := s.params
	var newest string
	var newestTime time.Time
	for _, slot := range PopulatedSlots(s.Root, p.GameName, p.SlotNames) {
		info, err := os.Stat(SlotPath(s.Root, p.GameName, slot))
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest, newestTime = slot, info.ModTime()
		}
	}
	return newest, newest != ""
}

// ReadMeta returns the metadata stored with a slot.
func ReadMeta(root, gameName, slot string) (*Meta, error) {
	data, err := os.ReadFile(filepath.Join(SlotDir(root, gameName, slot), MetaFile))
	if err != nil {
		return nil, fmt.Errorf("read metadata %s: %w", slot, err)
	}
	var m Meta
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", slot, err)
	}
	return &m, nil
}

// writeFile replaces path through a temporary file in the same directory.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
