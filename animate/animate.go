// Package animate renders snapshot sequences produced by the solvers
// into movie files. Each snapshot becomes one chart frame and the frames
// are assembled into an MJPEG encoded AVI, so a run can be replayed
// without any interactive display attached.
package animate

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/icza/mjpeg"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/notargets/gofpe/FP1D"
	"github.com/notargets/gofpe/FP2D"
	"github.com/notargets/gofpe/fvm"
)

var traceColors = []drawing.Color{
	{R: 30, G: 80, B: 200, A: 255},
	{R: 200, G: 60, B: 30, A: 255},
}

// Trace is one named density curve of a frame.
type Trace struct {
	Name string
	X, P []float64
}

// Options control the frame geometry and playback rate of the exported
// movie.
type Options struct {
	Width, Height int
	FPS           int
	JPEGQuality   int
}

// DefaultOptions returns the frame geometry the examples use.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, FPS: 10, JPEGQuality: 90}
}

func (o Options) validate() (err error) {
	if o.Width <= 0 || o.Height <= 0 || o.FPS <= 0 {
		err = fmt.Errorf("%w: frame %dx%d at %d fps", fvm.ErrBadConfig, o.Width, o.Height, o.FPS)
	}
	return
}

// RenderFrame draws the traces into a PNG chart. The vertical range is
// pinned to [0, pMax] so the axes hold still across the animation.
func RenderFrame(o Options, title string, traces []Trace, pMax float64) (img image.Image, err error) {
	var (
		series []chart.Series
		buf    bytes.Buffer
	)
	for i, tr := range traces {
		series = append(series, chart.ContinuousSeries{
			Name:    tr.Name,
			XValues: tr.X,
			YValues: tr.P,
			Style: chart.Style{
				StrokeColor: traceColors[i%len(traceColors)],
				StrokeWidth: 2,
			},
		})
	}
	graph := chart.Chart{
		Title:  title,
		Width:  o.Width,
		Height: o.Height,
		XAxis:  chart.XAxis{Name: "x"},
		YAxis: chart.YAxis{
			Name:  "p",
			Range: &chart.ContinuousRange{Min: 0, Max: pMax},
		},
		Series: series,
	}
	if err = graph.Render(chart.PNG, &buf); err != nil {
		return
	}
	img, err = png.Decode(&buf)
	return
}

// WriteAVI1D renders a 1D snapshot sequence into an AVI at path. The
// vertical range is fixed at the largest density over the whole run.
func WriteAVI1D(path string, o Options, x []float64, snaps []FP1D.Snapshot) (err error) {
	if err = o.validate(); err != nil {
		return
	}
	if len(snaps) == 0 {
		return fmt.Errorf("%w: empty snapshot sequence", fvm.ErrBadConfig)
	}
	var pMax float64
	for _, s := range snaps {
		if m := s.P.Max(); m > pMax {
			pMax = m
		}
	}
	aw, err := mjpeg.New(path, int32(o.Width), int32(o.Height), int32(o.FPS))
	if err != nil {
		return
	}
	// The AVI index is written on close, so its error is the caller's
	defer func() {
		if errC := aw.Close(); err == nil {
			err = errC
		}
	}()
	for _, s := range snaps {
		img, errF := RenderFrame(o, fmt.Sprintf("t = %8.4f", s.Time),
			[]Trace{{Name: "p(x)", X: x, P: s.P.DataP}}, 1.05*pMax)
		if errF != nil {
			return errF
		}
		if err = addFrame(aw, img, o.JPEGQuality); err != nil {
			return
		}
	}
	return
}

// WriteAVI2D renders the axis marginals of a 2D snapshot sequence into
// an AVI at path, one p(x) and one p(y) trace per frame.
func WriteAVI2D(path string, o Options, c *FP2D.FokkerPlanck, snaps []FP2D.Snapshot) (err error) {
	if err = o.validate(); err != nil {
		return
	}
	if len(snaps) == 0 {
		return fmt.Errorf("%w: empty snapshot sequence", fvm.ErrBadConfig)
	}
	type frame struct {
		time   float64
		mx, my []float64
	}
	var (
		pMax   float64
		frames = make([]frame, len(snaps))
	)
	for i, s := range snaps {
		mx := FP2D.MarginalX(s.P, c.Hy)
		my := FP2D.MarginalY(s.P, c.Hx)
		if m := mx.Max(); m > pMax {
			pMax = m
		}
		if m := my.Max(); m > pMax {
			pMax = m
		}
		frames[i] = frame{time: s.Time, mx: mx.DataP, my: my.DataP}
	}
	aw, err := mjpeg.New(path, int32(o.Width), int32(o.Height), int32(o.FPS))
	if err != nil {
		return
	}
	// The AVI index is written on close, so its error is the caller's
	defer func() {
		if errC := aw.Close(); err == nil {
			err = errC
		}
	}()
	for _, f := range frames {
		img, errF := RenderFrame(o, fmt.Sprintf("t = %8.4f", f.time),
			[]Trace{
				{Name: "p(x)", X: c.X.DataP, P: f.mx},
				{Name: "p(y)", X: c.Y.DataP, P: f.my},
			}, 1.05*pMax)
		if errF != nil {
			return errF
		}
		if err = addFrame(aw, img, o.JPEGQuality); err != nil {
			return
		}
	}
	return
}

func addFrame(aw mjpeg.AviWriter, img image.Image, quality int) (err error) {
	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return
	}
	return aw.AddFrame(buf.Bytes())
}
