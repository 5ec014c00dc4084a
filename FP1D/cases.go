package FP1D

import (
	"fmt"

	"github.com/notargets/gofpe/fvm"
	"github.com/notargets/gofpe/utils"
)

type CaseType uint8

const (
	CASE_Diffusion CaseType = iota
	CASE_OU
	CASE_QuarticWell
	CASE_Advection
)

var (
	case_names = []string{
		"Pure Diffusion",
		"Ornstein-Uhlenbeck",
		"Quartic Well",
		"Constant Advection",
	}
	CaseNameMap = map[string]CaseType{
		"diffusion":          CASE_Diffusion,
		"ou":                 CASE_OU,
		"ornstein-uhlenbeck": CASE_OU,
		"quartic":            CASE_QuarticWell,
		"advection":          CASE_Advection,
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
	return func(x float64) float64 { return val }
}

// CaseCoeffs returns the drift and diffusion of the named reference
// problem.
func CaseCoeffs(Case CaseType) (A, D CoeffFunc) {
	switch Case {
	case CASE_Diffusion:
		A, D = ConstCoeff(0), ConstCoeff(0.5)
	case CASE_OU:
		A = func(x float64) float64 { return -x }
		D = ConstCoeff(0.5)
	case CASE_QuarticWell:
		A = func(x float64) float64 { return -0.2 * utils.POW(x, 3) }
		D = ConstCoeff(0.5)
	case CASE_Advection:
		A, D = ConstCoeff(1), ConstCoeff(0)
	}
	return
}

// NewCase builds a solver for one of the reference problems with a
// Gaussian initial density in the middle fifth of the domain.
func NewCase(Case CaseType, CFL, XMin, XMax float64, N int, BC fvm.BCType, Flux fvm.FluxType) (c *FokkerPlanck, err error) {
	A, D := CaseCoeffs(Case)
	if A == nil {
		err = fmt.Errorf("%w: unknown case type %d", fvm.ErrBadConfig, Case)
		return
	}
	if c, err = NewFokkerPlanck(CFL, XMin, XMax, N, A, D, BC, Flux); err != nil {
		return
	}
	err = c.InitializeGaussian(0.5*(XMin+XMax), 0.05*(XMax-XMin))
	return
}
