// Command pspecs-ebiten runs the scene demo under Ebitengine, optionally
// with the Dear ImGui world inspector.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/pspecs/app"
	backend "github.com/plus3/pspecs/backend/ebiten"
	"github.com/plus3/pspecs/config"
	debugui_ebiten "github.com/plus3/pspecs/ecs/debugui/ebiten"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "pspecs.toml", "settings file, defaults are used when it is missing")
	debug := flag.Bool("debug", false, "show the world inspector")
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

	ebiten.SetTPS(cfg.Window.FPS)
	game := backend.NewGame(ctx, a, cfg.Window.Width, cfg.Window.Height)
	if *debug {
		game.EnableDebugUI(debugui_ebiten.NewImguiBackend(cfg.Window.Title, 1280, 720))
	} else {
		ebiten.SetWindowTitle(cfg.Window.Title)
		ebiten.SetWindowSize(cfg.Window.Width*2, cfg.Window.Height*2)
	}

	log.Info("starting ebiten loop", zap.Bool("debug", *debug))
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
