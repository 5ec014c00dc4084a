package animate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gofpe/FP1D"
	"github.com/notargets/gofpe/FP2D"
	"github.com/notargets/gofpe/fvm"
)

func TestRenderFrame(t *testing.T) {
	o := DefaultOptions()
	x := []float64{0, 0.25, 0.5, 0.75, 1}
	p := []float64{0, 1, 2, 1, 0}
	img, err := RenderFrame(o, "t =   0.0000",
		[]Trace{{Name: "p(x)", X: x, P: p}}, 2.2)
	assert.NoError(t, err)
	b := img.Bounds()
	assert.Equal(t, o.Width, b.Dx())
	assert.Equal(t, o.Height, b.Dy())
}

func TestWriteAVI1D(t *testing.T) {
	c, err := FP1D.NewFokkerPlanck(0.9, 0, 1, 40,
		FP1D.ConstCoeff(0), FP1D.ConstCoeff(0.01),
		fvm.BC_Reflecting, fvm.FLUX_Central)
	assert.NoError(t, err)
	assert.NoError(t, c.InitializeGaussian(0.5, 0.1))
	snaps, err := c.Run(0.05, 0, 20)
	assert.NoError(t, err)
	assert.True(t, len(snaps) >= 2)

	o := Options{Width: 320, Height: 240, FPS: 5, JPEGQuality: 80}
	path := filepath.Join(t.TempDir(), "run1d.avi")
	assert.NoError(t, WriteAVI1D(path, o, c.X.DataP, snaps))
	fi, err := os.Stat(path)
	assert.NoError(t, err)
	assert.True(t, fi.Size() > 0)

	// Invalid options and empty sequences are configuration errors
	err = WriteAVI1D(path, Options{Width: 0, Height: 240, FPS: 5}, c.X.DataP, snaps)
	assert.True(t, errors.Is(err, fvm.ErrBadConfig))
	err = WriteAVI1D(path, o, c.X.DataP, nil)
	assert.True(t, errors.Is(err, fvm.ErrBadConfig))
}

func TestWriteAVI2D(t *testing.T) {
	c, err := FP2D.NewFokkerPlanck(0.9, 0, 1, 0, 1, 20, 16,
		FP2D.ConstCoeff(0), FP2D.ConstCoeff(0),
		FP2D.ConstCoeff(0.01), FP2D.ConstCoeff(0.01),
		fvm.BC_Periodic, fvm.FLUX_Central)
	assert.NoError(t, err)
	assert.NoError(t, c.InitializeGaussian(0.5, 0.5, 0.1, 0.1))
	snaps, err := c.Run(0.05, 0, 10)
	assert.NoError(t, err)

	o := Options{Width: 320, Height: 240, FPS: 5, JPEGQuality: 80}
	path := filepath.Join(t.TempDir(), "run2d.avi")
	assert.NoError(t, WriteAVI2D(path, o, c, snaps))
	fi, err := os.Stat(path)
	assert.NoError(t, err)
	assert.True(t, fi.Size() > 0)
}
