//go:build !ebiten

// Package viewer plays a finished 2D snapshot sequence as an interactive
// heatmap. It is gated behind the ebiten build tag so headless builds of
// the solver carry no display dependency.
package viewer

import (
	"fmt"

	"github.com/notargets/gofpe/FP2D"
)

// Config sets the window scale and playback rate.
type Config struct {
	Scale int // Screen pixels per grid cell
	FPS   int // Playback frames per second
}

// Show reports that playback requires the ebiten build tag.
func Show(c *FP2D.FokkerPlanck, snaps []FP2D.Snapshot, cfg Config) error {
	return fmt.Errorf("interactive playback requires the ebiten build tag, rebuild with -tags ebiten")
}
