package fvm

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBCNames(t *testing.T) {
	assert.Equal(t, BC_Reflecting, BCNameMap["reflecting"])
	assert.Equal(t, BC_Absorbing, BCNameMap["absorbing"])
	assert.Equal(t, BC_Periodic, BCNameMap["periodic"])
	assert.Equal(t, "Reflecting", BC_Reflecting.String())
	assert.Equal(t, "Absorbing", BC_Absorbing.String())
	assert.Equal(t, "Periodic", BC_Periodic.String())
	assert.Equal(t, FLUX_Central, FluxNameMap["central"])
	assert.Equal(t, FLUX_Upwind, FluxNameMap["upwind"])
	assert.Equal(t, "Central", FLUX_Central.String())
	_, ok := BCNameMap["dirichlet"]
	assert.False(t, ok)
}

func TestMaxStableDt(t *testing.T) {
	// Pure diffusion, one axis: dt = CFL dx^2 / (2 D)
	{
		dt, err := MaxStableDt(1.0, AxisCoeffs{Dx: 0.02, MaxD: 0.01})
		assert.NoError(t, err)
		assert.True(t, near(dt, 0.02*0.02/(2*0.01)))
	}
	// Pure advection, one axis: dt = CFL dx / |A|
	{
		dt, err := MaxStableDt(0.5, AxisCoeffs{Dx: 0.1, MaxAbsA: 2.0})
		assert.NoError(t, err)
		assert.True(t, near(dt, 0.5*0.1/2.0))
	}
	// Mixed terms accumulate rates, stricter than either bound alone
	{
		dt, err := MaxStableDt(1.0, AxisCoeffs{Dx: 0.1, MaxAbsA: 1.0, MaxD: 0.5})
		assert.NoError(t, err)
		assert.True(t, near(dt, 1./(1.0/0.1+2*0.5/(0.1*0.1))))
		assert.True(t, dt < 0.1*0.1/(2*0.5)) // Below the diffusive bound
		assert.True(t, dt < 0.1/1.0)         // Below the advective bound
	}
	// Two axes accumulate
	{
		ax := AxisCoeffs{Dx: 0.1, MaxD: 0.5}
		dt1, err := MaxStableDt(1.0, ax)
		assert.NoError(t, err)
		dt2, err := MaxStableDt(1.0, ax, ax)
		assert.NoError(t, err)
		assert.True(t, near(dt1, 2*dt2))
	}
	// Degenerate problems are rejected
	{
		_, err := MaxStableDt(1.0, AxisCoeffs{Dx: 0.1})
		assert.True(t, errors.Is(err, ErrBadConfig))
		_, err = MaxStableDt(0., AxisCoeffs{Dx: 0.1, MaxD: 1})
		assert.True(t, errors.Is(err, ErrBadConfig))
		_, err = MaxStableDt(1.5, AxisCoeffs{Dx: 0.1, MaxD: 1})
		assert.True(t, errors.Is(err, ErrBadConfig))
	}
}

func TestCheckDt(t *testing.T) {
	dtMax := 0.01
	assert.NoError(t, CheckDt(0.005, dtMax))
	assert.NoError(t, CheckDt(dtMax, dtMax)) // The bound itself passes
	err := CheckDt(10*dtMax, dtMax)
	assert.True(t, errors.Is(err, ErrUnstableDt))
	err = CheckDt(-1, dtMax)
	assert.True(t, errors.Is(err, ErrBadConfig))
	err = CheckDt(math.NaN(), dtMax)
	assert.True(t, errors.Is(err, ErrBadConfig))
}

func TestFitDt(t *testing.T) {
	dt, Ns := FitDt(1.0, 0.3)
	assert.Equal(t, 4, Ns)
	assert.True(t, near(dt, 0.25))
	dt, Ns = FitDt(1.0, 0.25)
	assert.Equal(t, 4, Ns)
	assert.True(t, near(dt, 0.25))
	assert.True(t, near(float64(Ns)*dt, 1.0))
}

func TestMass(t *testing.T) {
	p := []float64{1, 2, 3, 4}
	assert.True(t, near(Mass(p, 0.5), 5.0))
	assert.Equal(t, -1, FirstNonFinite(p))
	p[2] = math.Inf(1)
	assert.Equal(t, 2, FirstNonFinite(p))
	p[2] = math.NaN()
	assert.Equal(t, 2, FirstNonFinite(p))
}

func TestGaussian(t *testing.T) {
	// Unit integral on a grid wide enough to capture the tails
	var (
		N          = 1000
		xmin, xmax = -10., 10.
		dx         = (xmax - xmin) / float64(N)
		sum        float64
	)
	for i := 0; i < N; i++ {
		x := xmin + (float64(i)+0.5)*dx
		sum += Gaussian(x, 0.5, 1.0) * dx
	}
	assert.True(t, near(sum, 1.0, 1.e-6))
	// Symmetry about the mean
	assert.True(t, near(Gaussian(1.3, 0.5, 0.7), Gaussian(-0.3, 0.5, 0.7)))
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
