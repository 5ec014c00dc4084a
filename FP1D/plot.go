package FP1D

import (
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
)

// Plot draws the current density into a live chart when ShowGraph is set.
// The chart window and vertical range are fixed on the first call.
func (c *FokkerPlanck) Plot() {
	if !c.ShowGraph {
		return
	}
	c.PlotOnce.Do(func() {
		c.pMax = 1.1 * c.P.Max()
		c.chart = chart2d.NewChart2D(1280, 1024,
			float32(c.XMin), float32(c.XMax), 0, float32(c.pMax))
		c.colorMap = utils2.NewColorMap(-1, 1, 1)
		go c.chart.Plot()
	})
	if err := c.chart.AddSeries("P", c.X.DataP, c.P.DataP,
		chart2d.NoGlyph, chart2d.Solid, c.colorMap.GetRGB(0)); err != nil {
		panic("unable to add graph series")
	}
	if c.GraphDelay != 0 {
		time.Sleep(c.GraphDelay)
	}
}
