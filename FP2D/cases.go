package FP2D

import (
	"fmt"

	"github.com/notargets/gofpe/fvm"
	"github.com/notargets/gofpe/utils"
)

type CaseType uint8

const (
	CASE_Diffusion CaseType = iota
	CASE_AnisotropicWell
	CASE_OU
)

var (
	case_names = []string{
		"Isotropic Diffusion",
		"Anisotropic Well",
		"Ornstein-Uhlenbeck",
	}
	CaseNameMap = map[string]CaseType{
		"diffusion":          CASE_Diffusion,
		"well":               CASE_AnisotropicWell,
		"anisotropic":        CASE_AnisotropicWell,
		"ou":                 CASE_OU,
		"ornstein-uhlenbeck": CASE_OU,
	}
)

func (ct CaseType) String() string {
	if int(ct) < len(case_names) {
		return case_names[ct]
	}
	return "Unknown"
}

// ConstCoeff returns a coefficient function with the same value
// everywhere.
func ConstCoeff(val float64) CoeffFunc {
	return func(x, y float64) float64 { return val }
}

// CaseCoeffs returns the per-axis drift and diffusion of the named
// reference problem.
func CaseCoeffs(Case CaseType) (Ax, Ay, Dx, Dy CoeffFunc) {
	switch Case {
	case CASE_Diffusion:
		Ax, Ay = ConstCoeff(0), ConstCoeff(0)
		Dx, Dy = ConstCoeff(0.5), ConstCoeff(0.5)
	case CASE_AnisotropicWell:
		Ax = func(x, y float64) float64 { return -0.2 * utils.POW(x, 3) }
		Ay = func(x, y float64) float64 { return -y }
		Dx, Dy = ConstCoeff(0.5), ConstCoeff(0.5)
	case CASE_OU:
		Ax = func(x, y float64) float64 { return -x }
		Ay = func(x, y float64) float64 { return -y }
		Dx, Dy = ConstCoeff(0.5), ConstCoeff(0.5)
	}
	return
}

// NewCase builds a solver for one of the reference problems with a
// Gaussian initial density in the middle fifth of the domain.
func NewCase(Case CaseType, CFL, XMin, XMax, YMin, YMax float64, Nx, Ny int,
	BC fvm.BCType, Flux fvm.FluxType) (c *FokkerPlanck, err error) {
	Ax, Ay, Dx, Dy := CaseCoeffs(Case)
	if Ax == nil {
		err = fmt.Errorf("%w: unknown case type %d", fvm.ErrBadConfig, Case)
		return
	}
	if c, err = NewFokkerPlanck(CFL, XMin, XMax, YMin, YMax, Nx, Ny,
		Ax, Ay, Dx, Dy, BC, Flux); err != nil {
		return
	}
	err = c.InitializeGaussian(0.5*(XMin+XMax), 0.5*(YMin+YMax),
		0.05*(XMax-XMin), 0.05*(YMax-YMin))
	return
}
