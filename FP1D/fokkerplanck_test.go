package FP1D

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gofpe/fvm"
)

func TestFokkerPlanck1D(t *testing.T) {
	{ // Test reflecting diffusion: mass is conserved and the peak decays
		c, err := NewFokkerPlanck(0.9, 0, 1, 50,
			ConstCoeff(0), ConstCoeff(0.01), fvm.BC_Reflecting, fvm.FLUX_Central)
		assert.NoError(t, err)
		assert.NoError(t, c.InitializeGaussian(0.5, 0.1))
		mass0 := c.Mass()
		assert.True(t, near(mass0, 1.0, 1.e-12)) // Initialization normalizes
		snaps, err := c.Run(1.0, 0, 10)
		assert.NoError(t, err)
		assert.True(t, len(snaps) > 2)
		lastPeak := math.Inf(1)
		for _, s := range snaps {
			mass := fvm.Mass(s.P.DataP, c.Dx)
			assert.True(t, near(mass, mass0, 1.e-6))
			peak := s.P.Max()
			assert.True(t, peak < lastPeak)
			lastPeak = peak
		}
		// The run lands exactly on the final time
		assert.True(t, near(snaps[len(snaps)-1].Time, 1.0, 1.e-12))
		assert.False(t, c.MassAnomaly())
	}
	{ // Test absorbing diffusion: mass leaks and never grows back
		c, err := NewFokkerPlanck(0.9, 0, 1, 50,
			ConstCoeff(0), ConstCoeff(0.01), fvm.BC_Absorbing, fvm.FLUX_Central)
		assert.NoError(t, err)
		assert.NoError(t, c.InitializeGaussian(0.5, 0.1))
		mass0 := c.Mass()
		snaps, err := c.Run(1.0, 0, 10)
		assert.NoError(t, err)
		last := math.Inf(1)
		for _, s := range snaps {
			mass := fvm.Mass(s.P.DataP, c.Dx)
			assert.True(t, mass <= last+1.e-14)
			last = mass
		}
		assert.True(t, c.Mass() < mass0)
		assert.True(t, mass0-c.Mass() > 1.e-8) // A measurable loss, not roundoff
	}
	{ // Test periodic advection: the pulse wraps across the boundary
		c, err := NewFokkerPlanck(0.9, 0, 1, 100,
			ConstCoeff(1), ConstCoeff(0.005), fvm.BC_Periodic, fvm.FLUX_Upwind)
		assert.NoError(t, err)
		assert.NoError(t, c.InitializeGaussian(0.9, 0.05))
		leftMass := func(p []float64) (m float64) {
			for i := 0; i < c.N/2; i++ {
				m += p[i] * c.Dx
			}
			return
		}
		left0 := leftMass(c.P.DataP)
		assert.True(t, left0 < 0.1) // Pulse starts on the right side
		snaps, err := c.Run(0.2, 0, 10)
		assert.NoError(t, err)
		for _, s := range snaps {
			assert.True(t, near(fvm.Mass(s.P.DataP, c.Dx), 1.0, 1.e-6))
		}
		// After t = 0.2 at unit speed the center sits near x = 0.1
		assert.True(t, leftMass(c.P.DataP) > 0.5)
		iPeak := 0
		for i, val := range c.P.DataP {
			if val > c.P.DataP[iPeak] {
				iPeak = i
			}
		}
		assert.True(t, near(c.X.DataP[iPeak], 0.1, 0.06))
	}
	{ // Test non-negativity of stable diffusion without any clamping
		c, err := NewFokkerPlanck(1.0, 0, 1, 50,
			ConstCoeff(0), ConstCoeff(0.01), fvm.BC_Reflecting, fvm.FLUX_Central)
		assert.NoError(t, err)
		assert.NoError(t, c.InitializeGaussian(0.5, 0.05))
		snaps, err := c.Run(0.5, 0, 5)
		assert.NoError(t, err)
		for _, s := range snaps {
			assert.True(t, s.P.Min() >= -1.e-12)
		}
	}
	{ // Test stability rejection at 10x the bound, before any stepping
		c, err := NewFokkerPlanck(0.9, 0, 1, 50,
			ConstCoeff(0), ConstCoeff(0.01), fvm.BC_Reflecting, fvm.FLUX_Central)
		assert.NoError(t, err)
		assert.NoError(t, c.InitializeGaussian(0.5, 0.1))
		snaps, err := c.Run(1.0, 10*c.DtMax, 10)
		assert.True(t, errors.Is(err, fvm.ErrUnstableDt))
		assert.Equal(t, 0, len(snaps))
		assert.Equal(t, 0, c.TStep)
		assert.Equal(t, 0., c.Time)
		// The bound itself is accepted
		_, err = c.Run(0.05, c.DtMax, 10)
		assert.NoError(t, err)
	}
	{ // Test the Ornstein-Uhlenbeck steady state, variance -> D/theta
		c, err := NewCase(CASE_OU, 0.9, -5, 5, 100, fvm.BC_Reflecting, fvm.FLUX_Central)
		assert.NoError(t, err)
		_, err = c.Run(5.0, 0, 100)
		assert.NoError(t, err)
		var mean, variance float64
		for i, val := range c.P.DataP {
			mean += c.X.DataP[i] * val * c.Dx
		}
		for i, val := range c.P.DataP {
			dx := c.X.DataP[i] - mean
			variance += dx * dx * val * c.Dx
		}
		assert.True(t, near(mean, 0, 1.e-6))
		assert.True(t, near(variance, 0.5, 0.01))
		assert.True(t, near(c.Mass(), 1.0, 1.e-6))
	}
	{ // Test divergence detection: central advection at high cell Peclet
		// grows the odd-even mode without bound under explicit Euler
		A := func(x float64) float64 { return 50 }
		uc, err := NewFokkerPlanck(0.9, 0, 1, 50, A, ConstCoeff(1.e-4),
			fvm.BC_Periodic, fvm.FLUX_Central)
		assert.NoError(t, err)
		assert.NoError(t, uc.InitializeGaussian(0.5, 0.05))
		snaps, err := uc.Run(10.0, 0, 1000)
		assert.True(t, errors.Is(err, fvm.ErrSolutionDiverged))
		assert.True(t, len(snaps) >= 1) // Partial results survive the abort
	}
	{ // Test configuration errors
		A, D := ConstCoeff(0), ConstCoeff(0.01)
		_, err := NewFokkerPlanck(0.9, 0, 1, 0, A, D, fvm.BC_Reflecting, fvm.FLUX_Central)
		assert.True(t, errors.Is(err, fvm.ErrBadConfig))
		_, err = NewFokkerPlanck(0.9, 1, 0, 50, A, D, fvm.BC_Reflecting, fvm.FLUX_Central)
		assert.True(t, errors.Is(err, fvm.ErrBadConfig))
		_, err = NewFokkerPlanck(0.9, 0, 1, 50, nil, D, fvm.BC_Reflecting, fvm.FLUX_Central)
		assert.True(t, errors.Is(err, fvm.ErrBadConfig))
		_, err = NewFokkerPlanck(0.9, 0, 1, 50, A, ConstCoeff(-1), fvm.BC_Reflecting, fvm.FLUX_Central)
		assert.True(t, errors.Is(err, fvm.ErrBadConfig))
		_, err = NewFokkerPlanck(0., 0, 1, 50, A, D, fvm.BC_Reflecting, fvm.FLUX_Central)
		assert.True(t, errors.Is(err, fvm.ErrBadConfig))
		_, err = NewFokkerPlanck(1.5, 0, 1, 50, A, D, fvm.BC_Reflecting, fvm.FLUX_Central)
		assert.True(t, errors.Is(err, fvm.ErrBadConfig))
		// No dynamics at all
		_, err = NewFokkerPlanck(0.9, 0, 1, 50, ConstCoeff(0), ConstCoeff(0), fvm.BC_Reflecting, fvm.FLUX_Central)
		assert.True(t, errors.Is(err, fvm.ErrBadConfig))

		c, err := NewFokkerPlanck(0.9, 0, 1, 50, A, D, fvm.BC_Reflecting, fvm.FLUX_Central)
		assert.NoError(t, err)
		_, err = c.Run(1.0, 0, 10) // No initial condition yet
		assert.True(t, errors.Is(err, fvm.ErrBadConfig))
		assert.True(t, errors.Is(c.Initialize(make([]float64, 10)), fvm.ErrBadConfig))
		assert.True(t, errors.Is(c.Initialize(make([]float64, 50)), fvm.ErrBadConfig)) // Zero mass
		assert.True(t, errors.Is(c.InitializeGaussian(0.5, 0), fvm.ErrBadConfig))
		assert.NoError(t, c.InitializeGaussian(0.5, 0.1))
		_, err = c.Run(-1, 0, 10)
		assert.True(t, errors.Is(err, fvm.ErrBadConfig))
		_, err = c.Run(1.0, 0, 0)
		assert.True(t, errors.Is(err, fvm.ErrBadConfig))
	}
	{ // Test snapshot cadence: initial, every stride-th step, final
		c, err := NewFokkerPlanck(0.9, 0, 1, 20,
			ConstCoeff(0), ConstCoeff(0.01), fvm.BC_Reflecting, fvm.FLUX_Central)
		assert.NoError(t, err)
		assert.NoError(t, c.InitializeGaussian(0.5, 0.1))
		dt := c.DtMax / 2
		dtFit, Nsteps := fvm.FitDt(1.0, dt)
		assert.True(t, Nsteps > 7)
		snaps, err := c.Run(1.0, dt, 7)
		assert.NoError(t, err)
		want := 1 + Nsteps/7
		if Nsteps%7 != 0 {
			want++ // The final state is recorded even off-stride
		}
		assert.Equal(t, want, len(snaps))
		assert.Equal(t, 0., snaps[0].Time)
		assert.True(t, near(snaps[1].Time, 7*dtFit, 1.e-12))
	}
}

func TestCases(t *testing.T) {
	for name, caseType := range CaseNameMap {
		A, D := CaseCoeffs(caseType)
		assert.NotNil(t, A, name)
		assert.NotNil(t, D, name)
	}
	assert.Equal(t, "Ornstein-Uhlenbeck", CASE_OU.String())
	// Quartic well drift pulls toward the origin on both sides
	A, _ := CaseCoeffs(CASE_QuarticWell)
	assert.True(t, A(2) < 0 && A(-2) > 0)
	assert.True(t, near(A(2), -1.6))
	// Advection carries zero diffusion, still a valid configuration
	c, err := NewCase(CASE_Advection, 0.9, -5, 5, 100, fvm.BC_Periodic, fvm.FLUX_Upwind)
	assert.NoError(t, err)
	assert.True(t, near(c.Mass(), 1.0, 1.e-12))
}

func nearVec(a, b []float64, tol float64) (l bool) {
	for i, val := range a {
		if !near(b[i], val, tol) {
			fmt.Printf("Diff = %v, Left[%d] = %v, Right[%d] = %v\n", math.Abs(val-b[i]), i, val, i, b[i])
			return false
		}
	}
	return true
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	bound := math.Max(tol, tol*math.Abs(a))
	if math.Abs(a-b) <= bound {
		l = true
	}
	return
}
