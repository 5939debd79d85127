package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/plus3/pspecs/input"
	"github.com/plus3/pspecs/render"
)

// Platform is a window with a frame clock, a drawing backend and a
// controller.
type Platform interface {
	render.Backend
	input.Reader
	ShouldClose() bool
	// FrameTime is the duration of the last frame in seconds.
	FrameTime() float32
	FPS() int
}

// Run drives the frame loop until the platform asks to close or ctx is done.
func (a *App) Run(ctx context.Context, p Platform) error {
	frames := 0
	for !p.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.Tick(p.ReadSample(), p.FrameTime())
		a.Draw(p, p.FPS())
		frames++
	}
	a.Log.Info("frame loop done", zap.Int("frames", frames))
	return nil
}

// Close destroys every entity.
func (a *App) Close() {
	a.World.Cleanup()
}
