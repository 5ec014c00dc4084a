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

	"github.com/notargets/gofpe/FP2D"
	"github.com/notargets/gofpe/InputParameters"
	"github.com/notargets/gofpe/animate"
	"github.com/notargets/gofpe/fvm"
	"github.com/notargets/gofpe/viewer"
)

type Model2D struct {
	ICFile    string
	NProc     int
	Graph     bool
	View      bool
	ViewScale int
	Delay     time.Duration
	MovieFile string
}

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional Fokker-Planck solutions",
	Long: `
Solves the 2D Fokker-Planck equation for one of the reference problems,
configured by a YAML run file,

gofpe 2D -I well.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("2D called")
		m2d := &Model2D{}
		if m2d.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		m2d.NProc, _ = cmd.Flags().GetInt("nproc")
		m2d.Graph, _ = cmd.Flags().GetBool("graph")
		m2d.View, _ = cmd.Flags().GetBool("view")
		m2d.ViewScale, _ = cmd.Flags().GetInt("viewScale")
		dr, _ := cmd.Flags().GetInt("delay")
		m2d.Delay = time.Duration(dr) * time.Millisecond
		m2d.MovieFile, _ = cmd.Flags().GetString("movie")
		ip, err := processInput(m2d)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		defer startProfile(cmd)()
		if err = Run2D(m2d, ip); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func processInput(m2d *Model2D) (ip *InputParameters.InputParameters2D, err error) {
	ip = InputParameters.NewInputParameters2D()
	if len(m2d.ICFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(m2d.ICFile); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			return
		}
	} else {
		exampleFile := `
########################################
Title: "Anisotropic Well"
CFL: 0.9
BCType: reflecting  # Can be absorbing or periodic
FluxType: central   # Can be upwind
Case: well          # Can be diffusion or ou
XMin: -5.
XMax: 5.
YMin: -5.
YMax: 5.
Nx: 50
Ny: 50
FinalTime: 1.
Dt: 0.              # 0 selects the stability bound
SampleStride: 10
########################################
`
		fmt.Printf("No run file supplied (-I), using defaults. Example file:%s\n", exampleFile)
	}
	ip.Print()
	return
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML run file with domain, grid and case parameters")
	TwoDCmd.Flags().IntP("nproc", "p", 0, "go routines for stepping, 0 = NumCPU")
	TwoDCmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	TwoDCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	TwoDCmd.Flags().BoolP("view", "v", false, "play the finished run in a window (needs the ebiten build tag)")
	TwoDCmd.Flags().Int("viewScale", 8, "screen pixels per grid cell in the viewer")
	TwoDCmd.Flags().StringP("movie", "m", "", "write the marginal traces to this AVI file")
}

func Run2D(m2d *Model2D, ip *InputParameters.InputParameters2D) (err error) {
	bc, ok := fvm.BCNameMap[ip.BCType]
	if !ok {
		return fmt.Errorf("%w: unknown boundary condition %q", fvm.ErrBadConfig, ip.BCType)
	}
	flux, ok := fvm.FluxNameMap[ip.FluxType]
	if !ok {
		return fmt.Errorf("%w: unknown flux type %q", fvm.ErrBadConfig, ip.FluxType)
	}
	caseType, ok := FP2D.CaseNameMap[ip.Case]
	if !ok {
		return fmt.Errorf("%w: unknown case %q", fvm.ErrBadConfig, ip.Case)
	}
	c, err := FP2D.NewCase(caseType, ip.CFL, ip.XMin, ip.XMax, ip.YMin, ip.YMax,
		ip.Nx, ip.Ny, bc, flux)
	if err != nil {
		return
	}
	fmt.Printf("Solving %s\n", caseType)
	c.SetParallelDegree(m2d.NProc)
	c.ShowGraph = m2d.Graph
	c.GraphDelay = m2d.Delay
	snaps, err := c.Run(ip.FinalTime, ip.Dt, ip.SampleStride)
	if err != nil {
		return
	}
	if m2d.MovieFile != "" {
		if err = animate.WriteAVI2D(m2d.MovieFile, animate.DefaultOptions(), c, snaps); err != nil {
			return
		}
		fmt.Printf("Wrote %d frames to %s\n", len(snaps), m2d.MovieFile)
	}
	if m2d.View {
		err = viewer.Show(c, snaps, viewer.Config{Scale: m2d.ViewScale, FPS: 10})
	}
	return
}
