//go:build ebiten

// Package viewer plays a finished 2D snapshot sequence as an interactive
// heatmap. It is gated behind the ebiten build tag so headless builds of
// the solver carry no display dependency.
package viewer

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/notargets/gofpe/FP2D"
	"github.com/notargets/gofpe/fvm"
)

// Config sets the window scale and playback rate.
type Config struct {
	Scale int // Screen pixels per grid cell
	FPS   int // Playback frames per second
}

type player struct {
	snaps  []FP2D.Snapshot
	Nx, Ny int
	frame  int
	paused bool
	pMax   float64
	pixels []byte
}

// Show opens a window and plays the snapshots of a finished run in a
// loop. Space pauses, the arrow keys step while paused, R rewinds and
// Q or Escape quits. Blocks until the window closes.
func Show(c *FP2D.FokkerPlanck, snaps []FP2D.Snapshot, cfg Config) (err error) {
	if len(snaps) == 0 {
		return fmt.Errorf("%w: empty snapshot sequence", fvm.ErrBadConfig)
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 8
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 10
	}
	p := &player{
		snaps:  snaps,
		Nx:     c.Nx,
		Ny:     c.Ny,
		pixels: make([]byte, 4*c.Nx*c.Ny),
	}
	for _, s := range snaps {
		if m := s.P.Max(); m > p.pMax {
			p.pMax = m
		}
	}
	ebiten.SetWindowTitle("gofpe 2D playback")
	ebiten.SetWindowSize(c.Nx*cfg.Scale, c.Ny*cfg.Scale)
	ebiten.SetTPS(cfg.FPS)
	if err = ebiten.RunGame(p); errors.Is(err, ebiten.Termination) {
		err = nil
	}
	return
}

func (p *player) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		p.paused = !p.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		p.frame = 0
	}
	switch {
	case p.paused && inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		p.frame = (p.frame + 1) % len(p.snaps)
	case p.paused && inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		p.frame = (p.frame + len(p.snaps) - 1) % len(p.snaps)
	case !p.paused:
		p.frame = (p.frame + 1) % len(p.snaps)
	}
	return nil
}

func (p *player) Draw(screen *ebiten.Image) {
	var (
		s    = p.snaps[p.frame]
		data = s.P.DataP
	)
	for y := 0; y < p.Ny; y++ {
		j := p.Ny - 1 - y // Screen y runs downward, grid y upward
		for x := 0; x < p.Nx; x++ {
			val := data[x*p.Ny+j] / p.pMax
			if val < 0 {
				val = 0
			} else if val > 1 {
				val = 1
			}
			o := 4 * (y*p.Nx + x)
			p.pixels[o] = byte(255 * val)
			p.pixels[o+1] = byte(40 * val)
			p.pixels[o+2] = byte(255 * (1 - val))
			p.pixels[o+3] = 0xff
		}
	}
	screen.WritePixels(p.pixels)
	ebitenutil.DebugPrint(screen,
		fmt.Sprintf("t = %8.4f  frame %d/%d", s.Time, p.frame+1, len(p.snaps)))
}

func (p *player) Layout(_, _ int) (int, int) {
	return p.Nx, p.Ny
}
