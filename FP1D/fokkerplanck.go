package FP1D

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/gofpe/fvm"
	"github.com/notargets/gofpe/utils"
)

// CoeffFunc evaluates a drift or diffusion coefficient at a face
// coordinate.
type CoeffFunc func(x float64) float64

// Snapshot is one sampled state of the run: the simulation time and a
// copy of the density field.
type Snapshot struct {
	Time float64
	P    utils.Vector
}

/*
FokkerPlanck advances the 1D Fokker-Planck equation

	dp/dt = -d/dx[ A(x) p ] + d/dx[ D(x) dp/dx ]

on a uniform grid of N cells with a conservative finite volume scheme and
explicit Euler time stepping. The face flux is

	F = A p_face - D (pR - pL) / dx

with p_face taken as the neighbor average (Central) or the donor cell
(Upwind). Interior fluxes telescope, so reflecting and periodic runs
conserve the discrete mass up to roundoff.
*/
type FokkerPlanck struct {
	// Input parameters
	XMin, XMax float64
	N          int
	CFL        float64
	A, D       CoeffFunc
	BC         fvm.BCType
	Flux       fvm.FluxType

	// Grid geometry and face coefficients, fixed at construction
	Dx           float64
	X            utils.Vector // Cell centers, N of them
	AFace, DFace utils.Vector // Face samples, N+1 of them
	DtMax        float64      // Largest stable explicit Euler step

	// State
	P           utils.Vector
	F           utils.Vector // Face flux work array
	RHSq        utils.Vector // RHS work array
	Time        float64
	TStep       int
	Snapshots   []Snapshot
	Op          *Operator // Optional assembled generator, nil uses the flux loop
	initialized bool
	mass0       float64
	massAnomaly bool

	// Graphics
	ShowGraph  bool
	GraphDelay time.Duration
	chart      *chart2d.Chart2D
	colorMap   *utils2.ColorMap
	PlotOnce   sync.Once
	pMax       float64
}

// NewFokkerPlanck validates the configuration, samples the drift and
// diffusion coefficients at the cell faces and computes the stability
// bound. The initial condition is set separately.
func NewFokkerPlanck(CFL, XMin, XMax float64, N int, A, D CoeffFunc, BC fvm.BCType, Flux fvm.FluxType) (c *FokkerPlanck, err error) {
	if N <= 0 {
		err = fmt.Errorf("%w: cell count N = %d", fvm.ErrBadConfig, N)
		return
	}
	if !utils.IsFinite(XMin) || !utils.IsFinite(XMax) || XMax <= XMin {
		err = fmt.Errorf("%w: domain [%v,%v]", fvm.ErrBadConfig, XMin, XMax)
		return
	}
	if A == nil || D == nil {
		err = fmt.Errorf("%w: nil drift or diffusion function", fvm.ErrBadConfig)
		return
	}
	c = &FokkerPlanck{
		XMin: XMin,
		XMax: XMax,
		N:    N,
		CFL:  CFL,
		A:    A,
		D:    D,
		BC:   BC,
		Flux: Flux,
		Dx:   (XMax - XMin) / float64(N),
	}
	c.X = utils.NewVector(N)
	for i := 0; i < N; i++ {
		c.X.DataP[i] = XMin + (float64(i)+0.5)*c.Dx
	}
	c.AFace = utils.NewVector(N + 1)
	c.DFace = utils.NewVector(N + 1)
	var maxAbsA, maxD float64
	for f := 0; f <= N; f++ {
		xf := XMin + float64(f)*c.Dx
		af, df := A(xf), D(xf)
		if !utils.IsFinite(af) || !utils.IsFinite(df) {
			err = fmt.Errorf("%w: non-finite coefficient at face x = %v", fvm.ErrBadConfig, xf)
			return nil, err
		}
		if df < 0 {
			err = fmt.Errorf("%w: negative diffusion D(%v) = %v", fvm.ErrBadConfig, xf, df)
			return nil, err
		}
		c.AFace.DataP[f] = af
		c.DFace.DataP[f] = df
		if math.Abs(af) > maxAbsA {
			maxAbsA = math.Abs(af)
		}
		if df > maxD {
			maxD = df
		}
	}
	if c.BC == fvm.BC_Periodic {
		// The wrap face is shared, sample it once at XMin
		c.AFace.DataP[N] = c.AFace.DataP[0]
		c.DFace.DataP[N] = c.DFace.DataP[0]
	}
	if c.DtMax, err = fvm.MaxStableDt(CFL, fvm.AxisCoeffs{Dx: c.Dx, MaxAbsA: maxAbsA, MaxD: maxD}); err != nil {
		return nil, err
	}
	c.P = utils.NewVector(N)
	c.F = utils.NewVector(N + 1)
	c.RHSq = utils.NewVector(N)
	return
}

// Initialize sets the density field from p0 and normalizes it to unit
// discrete mass.
func (c *FokkerPlanck) Initialize(p0 []float64) (err error) {
	if len(p0) != c.N {
		err = fmt.Errorf("%w: initial condition has %d cells, grid has %d", fvm.ErrBadConfig, len(p0), c.N)
		return
	}
	var sum float64
	for _, val := range p0 {
		if !utils.IsFinite(val) || val < 0 {
			err = fmt.Errorf("%w: initial condition values must be finite and non-negative", fvm.ErrBadConfig)
			return
		}
		sum += val
	}
	mass := sum * c.Dx
	if mass <= 0 {
		err = fmt.Errorf("%w: initial condition has zero mass", fvm.ErrBadConfig)
		return
	}
	for i, val := range p0 {
		c.P.DataP[i] = val / mass
	}
	c.Time = 0
	c.TStep = 0
	c.Snapshots = nil
	c.massAnomaly = false
	c.initialized = true
	return
}

// InitializeGaussian sets a normal density centered on x0 with standard
// deviation sigma as the initial condition.
func (c *FokkerPlanck) InitializeGaussian(x0, sigma float64) (err error) {
	if sigma <= 0 || !utils.IsFinite(x0) || !utils.IsFinite(sigma) {
		err = fmt.Errorf("%w: gaussian x0 = %v, sigma = %v", fvm.ErrBadConfig, x0, sigma)
		return
	}
	p0 := make([]float64, c.N)
	for i := 0; i < c.N; i++ {
		p0[i] = fvm.Gaussian(c.X.DataP[i], x0, sigma)
	}
	return c.Initialize(p0)
}

// Mass returns the current discrete integral of the density.
func (c *FokkerPlanck) Mass() float64 {
	return fvm.Mass(c.P.DataP, c.Dx)
}

// MassAnomaly reports whether a conservative run drifted in total mass
// beyond the tolerance at any step.
func (c *FokkerPlanck) MassAnomaly() bool { return c.massAnomaly }

// GetResults returns the cell centers, the snapshot times and the
// snapshots of the run so far.
func (c *FokkerPlanck) GetResults() (x, times []float64, snaps []Snapshot) {
	x = c.X.DataP
	snaps = c.Snapshots
	times = make([]float64, len(snaps))
	for i, s := range snaps {
		times[i] = s.Time
	}
	return
}

// Run advances the current state to c.Time + FinalTime. A dt <= 0 selects
// the stability bound automatically, a positive dt is rejected when it
// exceeds the bound; either way the step is shrunk so the run lands
// exactly on the final time. Every sampleStride-th step is recorded and
// the initial and final states are always included. On a diverged
// solution the snapshots collected so far are returned with the error.
func (c *FokkerPlanck) Run(FinalTime, dt float64, sampleStride int) (snaps []Snapshot, err error) {
	var (
		logFrequency = 50
	)
	if !c.initialized {
		err = fmt.Errorf("%w: initial condition not set", fvm.ErrBadConfig)
		return
	}
	if !utils.IsFinite(FinalTime) || FinalTime <= 0 {
		err = fmt.Errorf("%w: final time = %v", fvm.ErrBadConfig, FinalTime)
		return
	}
	if sampleStride <= 0 {
		err = fmt.Errorf("%w: sample stride = %d", fvm.ErrBadConfig, sampleStride)
		return
	}
	if dt <= 0 {
		dt = c.DtMax
	} else if err = fvm.CheckDt(dt, c.DtMax); err != nil {
		return
	}
	dt, Nsteps := fvm.FitDt(FinalTime, dt)
	c.mass0 = c.Mass()
	fmt.Printf("Fokker-Planck Equation in 1 Dimension\n")
	fmt.Printf("BC = %s, Flux = %s, N = %d, CFL = %8.4f\n", c.BC, c.Flux, c.N, c.CFL)
	fmt.Printf("dt = %8.6f, Nsteps = %d, initial mass = %10.8f\n", dt, Nsteps, c.mass0)
	c.record()
	for tstep := 1; tstep <= Nsteps; tstep++ {
		c.Plot()
		if c.Op != nil {
			c.Op.Apply(c.P, c.RHSq)
		} else {
			c.RHS(c.P.DataP, c.RHSq.DataP)
		}
		for i, rhs := range c.RHSq.DataP {
			c.P.DataP[i] += dt * rhs
		}
		c.Time += dt
		c.TStep++
		if i := fvm.FirstNonFinite(c.P.DataP); i >= 0 {
			snaps = c.Snapshots
			err = fmt.Errorf("%w: cell %d at step %d, time %v", fvm.ErrSolutionDiverged, i, c.TStep, c.Time)
			return
		}
		mass := c.Mass()
		c.checkMass(mass)
		if tstep%sampleStride == 0 || tstep == Nsteps {
			c.record()
		}
		if tstep%logFrequency == 0 || tstep == Nsteps {
			fmt.Printf("Time = %8.4f, mass[%d] = %10.8f, pmin = %8.6f, pmax = %8.6f\n",
				c.Time, c.TStep, mass, c.P.Min(), c.P.Max())
		}
	}
	snaps = c.Snapshots
	return
}

// RHS writes -div F into rhs for the density p using the face flux loop.
func (c *FokkerPlanck) RHS(p, rhs []float64) {
	var (
		N   = c.N
		a   = c.AFace.DataP
		d   = c.DFace.DataP
		F   = c.F.DataP
		rDx = 1. / c.Dx
	)
	for f := 1; f < N; f++ {
		F[f] = fvm.FaceFlux(c.Flux, a[f], d[f], p[f-1], p[f], rDx)
	}
	switch c.BC {
	case fvm.BC_Reflecting:
		F[0], F[N] = 0, 0
	case fvm.BC_Absorbing:
		F[0] = fvm.FaceFlux(c.Flux, a[0], d[0], 0, p[0], rDx)
		F[N] = fvm.FaceFlux(c.Flux, a[N], d[N], p[N-1], 0, rDx)
	case fvm.BC_Periodic:
		F[0] = fvm.FaceFlux(c.Flux, a[0], d[0], p[N-1], p[0], rDx)
		F[N] = F[0]
	}
	for i := 0; i < N; i++ {
		rhs[i] = -(F[i+1] - F[i]) * rDx
	}
}

func (c *FokkerPlanck) record() {
	c.Snapshots = append(c.Snapshots, Snapshot{
		Time: c.Time,
		P:    c.P.Copy(),
	})
}

func (c *FokkerPlanck) checkMass(mass float64) {
	if c.BC == fvm.BC_Absorbing || c.massAnomaly {
		return
	}
	ref := math.Max(math.Abs(c.mass0), 1)
	if math.Abs(mass-c.mass0) > fvm.DefaultMassTol*ref {
		c.massAnomaly = true
		fmt.Printf("WARNING: mass drifted from %10.8f to %10.8f at step %d\n", c.mass0, mass, c.TStep)
	}
}
