package app

import (
	"errors"
	"io/fs"

	"go.uber.org/zap"

	"github.com/plus3/pspecs/audio"
	"github.com/plus3/pspecs/config"
	"github.com/plus3/pspecs/input"
	"github.com/plus3/pspecs/scene"
)

// Setup builds Options from loaded settings. A missing keybinds file keeps
// the default bindings. When the speaker cannot be opened the menu stays
// silent. The returned func releases the audio device and flushes the
// persistence log.
func Setup(cfg *config.Config, log *zap.Logger) (Options, func(), error) {
	binds := input.DefaultBindings()
	if path := cfg.Input.KeybindsFile; path != "" {
		err := binds.Load(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Debug("no keybinds file, using defaults", zap.String("path", path))
		case err != nil:
			return Options{}, nil, err
		default:
			log.Info("keybinds loaded", zap.String("path", path))
		}
	}

	opts := Options{
		Title:    cfg.Window.Title,
		DeadZone: cfg.Input.DeadZone,
		Save: scene.Options{
			Dir:          cfg.Save.Dir,
			GameName:     cfg.Save.GameName,
			SaveName:     cfg.Save.SaveName,
			Title:        cfg.Save.Title,
			Detail:       cfg.Save.Detail,
			SlotCount:    cfg.Save.SlotCount,
			PollInterval: cfg.Save.PollInterval,
		},
		Bindings:   binds,
		Log:        log,
		PersistLog: scene.NewFileLogger(cfg.Log.PersistFile),
	}

	sounds := audio.NewSoundManager()
	if cfg.Audio.Enabled {
		if err := sounds.Initialize(); err != nil {
			log.Warn("audio unavailable, menu will be silent", zap.Error(err))
		}
	}
	opts.Feedback = sounds

	cleanup := func() {
		sounds.Cleanup()
		_ = opts.PersistLog.Sync()
	}
	return opts, cleanup, nil
}
