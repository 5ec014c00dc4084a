package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML run file for the 2D solver
type InputParameters2D struct {
	Title        string  `yaml:"Title"`
	CFL          float64 `yaml:"CFL"`
	BCType       string  `yaml:"BCType"`   // reflecting, absorbing or periodic
	FluxType     string  `yaml:"FluxType"` // central or upwind
	Case         string  `yaml:"Case"`     // diffusion, well or ou
	XMin         float64 `yaml:"XMin"`
	XMax         float64 `yaml:"XMax"`
	YMin         float64 `yaml:"YMin"`
	YMax         float64 `yaml:"YMax"`
	Nx           int     `yaml:"Nx"`
	Ny           int     `yaml:"Ny"`
	FinalTime    float64 `yaml:"FinalTime"`
	Dt           float64 `yaml:"Dt"` // Zero selects the stability bound
	SampleStride int     `yaml:"SampleStride"`
}

// NewInputParameters2D returns the reference problem defaults, which a
// run file then selectively overrides.
func NewInputParameters2D() *InputParameters2D {
	return &InputParameters2D{
		Title:        "Fokker-Planck 2D",
		CFL:          0.9,
		BCType:       "reflecting",
		FluxType:     "central",
		Case:         "well",
		XMin:         -5,
		XMax:         5,
		YMin:         -5,
		YMax:         5,
		Nx:           50,
		Ny:           50,
		FinalTime:    1.0,
		SampleStride: 10,
	}
}

func (ip *InputParameters2D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%s]\t\t= BC Type\n", ip.BCType)
	fmt.Printf("[%s]\t\t= Flux Type\n", ip.FluxType)
	fmt.Printf("[%s]\t\t\t= Case\n", ip.Case)
	fmt.Printf("[%4.1f,%4.1f]x[%4.1f,%4.1f]\t= Domain\n", ip.XMin, ip.XMax, ip.YMin, ip.YMax)
	fmt.Printf("[%dx%d]\t\t\t= Grid\n", ip.Nx, ip.Ny)
	fmt.Printf("%8.5f\t\t= Dt (0 = auto)\n", ip.Dt)
	fmt.Printf("[%d]\t\t\t\t= Sample Stride\n", ip.SampleStride)
}
