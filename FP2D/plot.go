package FP2D

import (
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
)

// Plot draws the current axis marginals into a live chart when ShowGraph
// is set. The chart spans the x axis extent, which matches the y extent
// for the square domains the examples use; the two traces update in
// place as the run proceeds.
func (c *FokkerPlanck) Plot() {
	if !c.ShowGraph {
		return
	}
	mx, my := c.Marginals()
	c.PlotOnce.Do(func() {
		c.pMax = 1.1 * mx.Max()
		if yMax := 1.1 * my.Max(); yMax > c.pMax {
			c.pMax = yMax
		}
		c.chart = chart2d.NewChart2D(1280, 1024,
			float32(c.XMin), float32(c.XMax), 0, float32(c.pMax))
		c.colorMap = utils2.NewColorMap(-1, 1, 1)
		go c.chart.Plot()
	})
	if err := c.chart.AddSeries("P(x)", c.X.DataP, mx.DataP,
		chart2d.NoGlyph, chart2d.Solid, c.colorMap.GetRGB(-0.7)); err != nil {
		panic("unable to add graph series")
	}
	if err := c.chart.AddSeries("P(y)", c.Y.DataP, my.DataP,
		chart2d.NoGlyph, chart2d.Solid, c.colorMap.GetRGB(0.7)); err != nil {
		panic("unable to add graph series")
	}
	if c.GraphDelay != 0 {
		time.Sleep(c.GraphDelay)
	}
}
