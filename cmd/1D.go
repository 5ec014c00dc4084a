/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/notargets/gofpe/FP1D"
	"github.com/notargets/gofpe/animate"
	"github.com/notargets/gofpe/fvm"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One dimensional Fokker-Planck solutions",
	Long: `
Solves the 1D Fokker-Planck equation for one of the reference problems,

gofpe 1D -c ou -b reflecting`,
	Run: func(cmd *cobra.Command, args []string) {
		m1d := &Model1D{}
		fmt.Println("1D called")
		m1d.Case, _ = cmd.Flags().GetString("case")
		m1d.BCName, _ = cmd.Flags().GetString("bc")
		m1d.FluxName, _ = cmd.Flags().GetString("flux")
		m1d.XMin, _ = cmd.Flags().GetFloat64("xMin")
		m1d.XMax, _ = cmd.Flags().GetFloat64("xMax")
		m1d.N, _ = cmd.Flags().GetInt("n")
		m1d.CFL, _ = cmd.Flags().GetFloat64("CFL")
		m1d.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
		m1d.Dt, _ = cmd.Flags().GetFloat64("dt")
		m1d.SampleStride, _ = cmd.Flags().GetInt("stride")
		m1d.Operator, _ = cmd.Flags().GetBool("operator")
		m1d.Graph, _ = cmd.Flags().GetBool("graph")
		dr, _ := cmd.Flags().GetInt("delay")
		m1d.Delay = time.Duration(dr) * time.Millisecond
		m1d.MovieFile, _ = cmd.Flags().GetString("movie")
		defer startProfile(cmd)()
		if err := Run1D(m1d); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	OneDCmd.Flags().StringP("case", "c", "ou", "reference problem: diffusion, ou, quartic, advection")
	OneDCmd.Flags().StringP("bc", "b", "reflecting", "boundary condition: reflecting, absorbing, periodic")
	OneDCmd.Flags().StringP("flux", "f", "central", "advective face interpolation: central, upwind")
	OneDCmd.Flags().Float64("xMin", -5, "left domain bound")
	OneDCmd.Flags().Float64("xMax", 5, "right domain bound")
	OneDCmd.Flags().IntP("n", "n", 100, "number of cells")
	OneDCmd.Flags().Float64("CFL", 0.9, "CFL - increase for speedup, decrease for stability")
	OneDCmd.Flags().Float64("finalTime", 1.0, "FinalTime - the target end time for the sim")
	OneDCmd.Flags().Float64("dt", 0, "time step, 0 selects the stability bound")
	OneDCmd.Flags().IntP("stride", "s", 10, "number of steps between snapshots")
	OneDCmd.Flags().Bool("operator", false, "step with the assembled sparse generator")
	OneDCmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	OneDCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	OneDCmd.Flags().StringP("movie", "m", "", "write the snapshot sequence to this AVI file")
}

type Model1D struct {
	Case, BCName, FluxName string
	XMin, XMax             float64
	N                      int
	CFL, FinalTime, Dt     float64
	SampleStride           int
	Operator               bool
	Graph                  bool
	Delay                  time.Duration
	MovieFile              string
}

func Run1D(m1d *Model1D) (err error) {
	bc, ok := fvm.BCNameMap[m1d.BCName]
	if !ok {
		return fmt.Errorf("%w: unknown boundary condition %q", fvm.ErrBadConfig, m1d.BCName)
	}
	flux, ok := fvm.FluxNameMap[m1d.FluxName]
	if !ok {
		return fmt.Errorf("%w: unknown flux type %q", fvm.ErrBadConfig, m1d.FluxName)
	}
	caseType, ok := FP1D.CaseNameMap[m1d.Case]
	if !ok {
		return fmt.Errorf("%w: unknown case %q", fvm.ErrBadConfig, m1d.Case)
	}
	c, err := FP1D.NewCase(caseType, m1d.CFL, m1d.XMin, m1d.XMax, m1d.N, bc, flux)
	if err != nil {
		return
	}
	fmt.Printf("Solving %s\n", caseType)
	if m1d.Operator {
		c.BuildOperator()
	}
	c.ShowGraph = m1d.Graph
	c.GraphDelay = m1d.Delay
	snaps, err := c.Run(m1d.FinalTime, m1d.Dt, m1d.SampleStride)
	if err != nil {
		return
	}
	if m1d.MovieFile != "" {
		if err = animate.WriteAVI1D(m1d.MovieFile, animate.DefaultOptions(),
			c.X.DataP, snaps); err != nil {
			return
		}
		fmt.Printf("Wrote %d frames to %s\n", len(snaps), m1d.MovieFile)
	}
	return
}
