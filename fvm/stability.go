package fvm

import (
	"fmt"
	"math"

	"github.com/notargets/gofpe/utils"
)

// AxisCoeffs carries the per-axis face coefficient extrema that drive the
// explicit Euler stability bound.
type AxisCoeffs struct {
	Dx      float64 // Cell spacing along the axis
	MaxAbsA float64 // Largest |A| over the axis faces
	MaxD    float64 // Largest D over the axis faces
}

// MaxStableDt returns the largest stable explicit Euler step for the given
// axes, scaled by the CFL safety factor:
//
//	dtMax = CFL / ( Sum_axis(max|A|/dx) + 2 Sum_axis(maxD/dx^2) )
//
// With a single transport mechanism this reduces to the classical
// advective bound CFL dx/max|A| or diffusive bound CFL dx^2/(2 maxD).
// Summing the rates also covers mixed advection-diffusion and multiple
// axes, where the minimum of the individual bounds is not sufficient.
// A problem with no advection and no diffusion has no dynamics and is
// rejected.
func MaxStableDt(CFL float64, axes ...AxisCoeffs) (dtMax float64, err error) {
	var (
		sumD, sumA float64
	)
	if CFL <= 0. || CFL > 1. {
		err = fmt.Errorf("%w: CFL %v outside (0,1]", ErrBadConfig, CFL)
		return
	}
	for _, ax := range axes {
		sumD += ax.MaxD / (ax.Dx * ax.Dx)
		sumA += ax.MaxAbsA / ax.Dx
	}
	den := sumA + 2.*sumD
	if den == 0. {
		err = fmt.Errorf("%w: zero drift and zero diffusion everywhere", ErrBadConfig)
		return
	}
	dtMax = CFL / den
	return
}

// CheckDt validates a caller supplied time step against the stability
// bound, with a small slack for steps computed from the bound itself.
func CheckDt(dt, dtMax float64) (err error) {
	if dt <= 0. || !utils.IsFinite(dt) {
		err = fmt.Errorf("%w: dt = %v", ErrBadConfig, dt)
		return
	}
	if dt > dtMax*(1.+utils.NODETOL) {
		err = fmt.Errorf("%w: dt = %v, max stable dt = %v", ErrUnstableDt, dt, dtMax)
	}
	return
}

// FitDt shrinks dt so that an integer number of steps lands exactly on
// FinalTime.
func FitDt(FinalTime, dt float64) (dtFit float64, Nsteps int) {
	Nsteps = int(math.Ceil(FinalTime / dt))
	dtFit = FinalTime / float64(Nsteps)
	return
}
