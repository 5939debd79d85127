// Command pspecs runs the scene demo in a raylib window.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/pspecs/app"
	"github.com/plus3/pspecs/backend/raylib"
	"github.com/plus3/pspecs/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "pspecs.toml", "settings file, defaults are used when it is missing")
	cpuProfile := flag.Bool("profile", false, "write a CPU profile to the working directory")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	cfg, err := config.LoadOrDefault(*cfgPath)
	if err != nil {
		return err
	}

	log, err := config.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	opts, cleanup, err := app.Setup(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	a, err := app.New(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	platform := raylib.Open(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, cfg.Window.FPS)
	defer platform.Close()

	log.Info("window open",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("fps", cfg.Window.FPS),
	)
	if err := a.Run(ctx, platform); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
