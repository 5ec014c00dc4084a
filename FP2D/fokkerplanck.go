package FP2D

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/gofpe/fvm"
	"github.com/notargets/gofpe/utils"
)

// CoeffFunc evaluates a drift or diffusion coefficient at a face
// coordinate.
type CoeffFunc func(x, y float64) float64

// Snapshot is one sampled state of the run: the simulation time and a
// copy of the density field.
type Snapshot struct {
	Time float64
	P    utils.Matrix
}

/*
FokkerPlanck advances the 2D Fokker-Planck equation

	dp/dt = -d/dx[Ax p] - d/dy[Ay p] + d/dx[Dx dp/dx] + d/dy[Dy dp/dy]

on a uniform Nx x Ny grid with the same conservative face flux scheme as
the 1D solver, applied per axis. The density is stored row major with
row i the x index and column j the y index. Stepping is optionally
partitioned across goroutines by x index, with a barrier between the
face flux and cell update phases of each step.
*/
type FokkerPlanck struct {
	// Input parameters
	XMin, XMax, YMin, YMax float64
	Nx, Ny                 int
	CFL                    float64
	Ax, Ay, Dx, Dy         CoeffFunc
	BC                     fvm.BCType
	Flux                   fvm.FluxType

	// Grid geometry and face coefficients, fixed at construction
	Hx, Hy   float64      // Cell spacing per axis
	X, Y     utils.Vector // Cell centers
	AxF, DxF utils.Matrix // X face samples, (Nx+1) x Ny
	AyF, DyF utils.Matrix // Y face samples, Nx x (Ny+1)
	DtMax    float64

	// State
	P           utils.Matrix
	Fx          utils.Matrix // X face flux work array
	Fy          utils.Matrix // Y face flux work array
	RHSq        utils.Matrix
	Time        float64
	TStep       int
	Snapshots   []Snapshot
	initialized bool
	mass0       float64
	massAnomaly bool

	// Parallelism
	ParallelDegree int
	CellPartitions *utils.PartitionMap // Over the Nx cell rows
	FacePartitions *utils.PartitionMap // Over the Nx+1 x-face rows

	// Graphics
	ShowGraph  bool
	GraphDelay time.Duration
	chart      *chart2d.Chart2D
	colorMap   *utils2.ColorMap
	PlotOnce   sync.Once
	pMax       float64
}

// NewFokkerPlanck validates the configuration, samples the four
// coefficient functions at the cell faces of both axes and computes the
// stability bound. The initial condition is set separately.
func NewFokkerPlanck(CFL, XMin, XMax, YMin, YMax float64, Nx, Ny int,
	Ax, Ay, Dx, Dy CoeffFunc, BC fvm.BCType, Flux fvm.FluxType) (c *FokkerPlanck, err error) {
	if Nx <= 0 || Ny <= 0 {
		err = fmt.Errorf("%w: cell counts Nx = %d, Ny = %d", fvm.ErrBadConfig, Nx, Ny)
		return
	}
	if !utils.IsFinite(XMin) || !utils.IsFinite(XMax) || XMax <= XMin ||
		!utils.IsFinite(YMin) || !utils.IsFinite(YMax) || YMax <= YMin {
		err = fmt.Errorf("%w: domain [%v,%v] x [%v,%v]", fvm.ErrBadConfig, XMin, XMax, YMin, YMax)
		return
	}
	if Ax == nil || Ay == nil || Dx == nil || Dy == nil {
		err = fmt.Errorf("%w: nil drift or diffusion function", fvm.ErrBadConfig)
		return
	}
	c = &FokkerPlanck{
		XMin: XMin, XMax: XMax, YMin: YMin, YMax: YMax,
		Nx: Nx, Ny: Ny,
		CFL: CFL,
		Ax:  Ax, Ay: Ay, Dx: Dx, Dy: Dy,
		BC:   BC,
		Flux: Flux,
		Hx:   (XMax - XMin) / float64(Nx),
		Hy:   (YMax - YMin) / float64(Ny),
	}
	c.X = utils.NewVector(Nx)
	for i := 0; i < Nx; i++ {
		c.X.DataP[i] = XMin + (float64(i)+0.5)*c.Hx
	}
	c.Y = utils.NewVector(Ny)
	for j := 0; j < Ny; j++ {
		c.Y.DataP[j] = YMin + (float64(j)+0.5)*c.Hy
	}
	var maxAx, maxDx float64
	c.AxF = utils.NewMatrix(Nx+1, Ny)
	c.DxF = utils.NewMatrix(Nx+1, Ny)
	for f := 0; f <= Nx; f++ {
		xf := XMin + float64(f)*c.Hx
		for j := 0; j < Ny; j++ {
			af, df := Ax(xf, c.Y.DataP[j]), Dx(xf, c.Y.DataP[j])
			if err = checkCoeff(af, df, xf, c.Y.DataP[j]); err != nil {
				return nil, err
			}
			c.AxF.DataP[f*Ny+j] = af
			c.DxF.DataP[f*Ny+j] = df
			maxAx = math.Max(maxAx, math.Abs(af))
			maxDx = math.Max(maxDx, df)
		}
	}
	var maxAy, maxDy float64
	c.AyF = utils.NewMatrix(Nx, Ny+1)
	c.DyF = utils.NewMatrix(Nx, Ny+1)
	for i := 0; i < Nx; i++ {
		for g := 0; g <= Ny; g++ {
			yf := YMin + float64(g)*c.Hy
			af, df := Ay(c.X.DataP[i], yf), Dy(c.X.DataP[i], yf)
			if err = checkCoeff(af, df, c.X.DataP[i], yf); err != nil {
				return nil, err
			}
			c.AyF.DataP[i*(Ny+1)+g] = af
			c.DyF.DataP[i*(Ny+1)+g] = df
			maxAy = math.Max(maxAy, math.Abs(af))
			maxDy = math.Max(maxDy, df)
		}
	}
	if c.BC == fvm.BC_Periodic {
		// The wrap faces are shared, use the samples from the low side
		for j := 0; j < Ny; j++ {
			c.AxF.DataP[Nx*Ny+j] = c.AxF.DataP[j]
			c.DxF.DataP[Nx*Ny+j] = c.DxF.DataP[j]
		}
		for i := 0; i < Nx; i++ {
			c.AyF.DataP[i*(Ny+1)+Ny] = c.AyF.DataP[i*(Ny+1)]
			c.DyF.DataP[i*(Ny+1)+Ny] = c.DyF.DataP[i*(Ny+1)]
		}
	}
	if c.DtMax, err = fvm.MaxStableDt(CFL,
		fvm.AxisCoeffs{Dx: c.Hx, MaxAbsA: maxAx, MaxD: maxDx},
		fvm.AxisCoeffs{Dx: c.Hy, MaxAbsA: maxAy, MaxD: maxDy}); err != nil {
		return nil, err
	}
	c.P = utils.NewMatrix(Nx, Ny)
	c.Fx = utils.NewMatrix(Nx+1, Ny)
	c.Fy = utils.NewMatrix(Nx, Ny+1)
	c.RHSq = utils.NewMatrix(Nx, Ny)
	c.SetParallelDegree(1)
	return
}

func checkCoeff(a, d, x, y float64) (err error) {
	if !utils.IsFinite(a) || !utils.IsFinite(d) {
		err = fmt.Errorf("%w: non-finite coefficient at face (%v,%v)", fvm.ErrBadConfig, x, y)
		return
	}
	if d < 0 {
		err = fmt.Errorf("%w: negative diffusion D(%v,%v) = %v", fvm.ErrBadConfig, x, y, d)
	}
	return
}

// SetParallelDegree partitions the step loops over ProcLimit goroutines,
// or NumCPU when ProcLimit is zero. A degree of one runs serially.
func (c *FokkerPlanck) SetParallelDegree(ProcLimit int) {
	if ProcLimit != 0 {
		c.ParallelDegree = ProcLimit
	} else {
		c.ParallelDegree = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(runtime.NumCPU())
	if c.ParallelDegree > c.Nx {
		c.ParallelDegree = 1
	}
	c.CellPartitions = utils.NewPartitionMap(c.ParallelDegree, c.Nx)
	c.FacePartitions = utils.NewPartitionMap(c.ParallelDegree, c.Nx+1)
}

// Initialize sets the density field from p0 and normalizes it to unit
// discrete mass.
func (c *FokkerPlanck) Initialize(p0 utils.Matrix) (err error) {
	nr, nc := p0.Dims()
	if nr != c.Nx || nc != c.Ny {
		err = fmt.Errorf("%w: initial condition is %dx%d, grid is %dx%d", fvm.ErrBadConfig, nr, nc, c.Nx, c.Ny)
		return
	}
	var sum float64
	for _, val := range p0.DataP {
		if !utils.IsFinite(val) || val < 0 {
			err = fmt.Errorf("%w: initial condition values must be finite and non-negative", fvm.ErrBadConfig)
			return
		}
		sum += val
	}
	mass := sum * c.Hx * c.Hy
	if mass <= 0 {
		err = fmt.Errorf("%w: initial condition has zero mass", fvm.ErrBadConfig)
		return
	}
	for i, val := range p0.DataP {
		c.P.DataP[i] = val / mass
	}
	c.Time = 0
	c.TStep = 0
	c.Snapshots = nil
	c.massAnomaly = false
	c.initialized = true
	return
}

// InitializeGaussian sets a product of normal densities centered on
// (x0,y0) as the initial condition.
func (c *FokkerPlanck) InitializeGaussian(x0, y0, sigmaX, sigmaY float64) (err error) {
	if sigmaX <= 0 || sigmaY <= 0 ||
		!utils.IsFinite(x0) || !utils.IsFinite(y0) ||
		!utils.IsFinite(sigmaX) || !utils.IsFinite(sigmaY) {
		err = fmt.Errorf("%w: gaussian center (%v,%v), sigma (%v,%v)", fvm.ErrBadConfig, x0, y0, sigmaX, sigmaY)
		return
	}
	p0 := utils.NewMatrix(c.Nx, c.Ny)
	for i := 0; i < c.Nx; i++ {
		gx := fvm.Gaussian(c.X.DataP[i], x0, sigmaX)
		for j := 0; j < c.Ny; j++ {
			p0.DataP[i*c.Ny+j] = gx * fvm.Gaussian(c.Y.DataP[j], y0, sigmaY)
		}
	}
	return c.Initialize(p0)
}

// InitializePointMass concentrates all the mass in the cell containing
// (x0,y0).
func (c *FokkerPlanck) InitializePointMass(x0, y0 float64) (err error) {
	if x0 < c.XMin || x0 > c.XMax || y0 < c.YMin || y0 > c.YMax {
		err = fmt.Errorf("%w: point (%v,%v) outside the domain", fvm.ErrBadConfig, x0, y0)
		return
	}
	i := int((x0 - c.XMin) / c.Hx)
	j := int((y0 - c.YMin) / c.Hy)
	if i == c.Nx {
		i--
	}
	if j == c.Ny {
		j--
	}
	p0 := utils.NewMatrix(c.Nx, c.Ny)
	p0.DataP[i*c.Ny+j] = 1. / (c.Hx * c.Hy)
	return c.Initialize(p0)
}

// Mass returns the current discrete integral of the density.
func (c *FokkerPlanck) Mass() float64 {
	return fvm.Mass(c.P.DataP, c.Hx*c.Hy)
}

// MassAnomaly reports whether a conservative run drifted in total mass
// beyond the tolerance at any step.
func (c *FokkerPlanck) MassAnomaly() bool { return c.massAnomaly }

// GetResults returns the cell centers of both axes, the snapshot times
// and the snapshots of the run so far.
func (c *FokkerPlanck) GetResults() (x, y, times []float64, snaps []Snapshot) {
	x, y = c.X.DataP, c.Y.DataP
	snaps = c.Snapshots
	times = make([]float64, len(snaps))
	for i, s := range snaps {
		times[i] = s.Time
	}
	return
}

// Run advances the current state to c.Time + FinalTime, with the same
// dt and sampling contract as the 1D solver: dt <= 0 selects the
// stability bound, a too large dt is rejected before stepping, the step
// is fitted to land exactly on the final time, and the initial and
// final states always appear in the snapshots.
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
	fmt.Printf("Fokker-Planck Equation in 2 Dimensions\n")
	fmt.Printf("Using %d go routines in parallel\n", c.ParallelDegree)
	fmt.Printf("BC = %s, Flux = %s, Grid = %dx%d, CFL = %8.4f\n", c.BC, c.Flux, c.Nx, c.Ny, c.CFL)
	fmt.Printf("dt = %8.6f, Nsteps = %d, initial mass = %10.8f\n", dt, Nsteps, c.mass0)
	c.record()
	for tstep := 1; tstep <= Nsteps; tstep++ {
		c.Plot()
		c.step(dt)
		c.Time += dt
		c.TStep++
		if i := fvm.FirstNonFinite(c.P.DataP); i >= 0 {
			snaps = c.Snapshots
			err = fmt.Errorf("%w: cell (%d,%d) at step %d, time %v",
				fvm.ErrSolutionDiverged, i/c.Ny, i%c.Ny, c.TStep, c.Time)
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

// step advances one explicit Euler step, in two phases with a barrier
// between: face fluxes on both axes, then the divergence update. The
// update phase only reads fluxes and only writes cells inside its own
// partition.
func (c *FokkerPlanck) step(dt float64) {
	var (
		NP = c.ParallelDegree
		wg = sync.WaitGroup{}
	)
	if NP <= 1 {
		c.computeFluxX(0, c.Nx+1)
		c.computeFluxY(0, c.Nx)
		c.update(0, c.Nx, dt)
		return
	}
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			fMin, fMax := c.FacePartitions.GetBucketRange(np)
			c.computeFluxX(fMin, fMax)
			iMin, iMax := c.CellPartitions.GetBucketRange(np)
			c.computeFluxY(iMin, iMax)
			wg.Done()
		}(np)
	}
	wg.Wait()
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			iMin, iMax := c.CellPartitions.GetBucketRange(np)
			c.update(iMin, iMax, dt)
			wg.Done()
		}(np)
	}
	wg.Wait()
}

// computeFluxX fills the x face flux rows [fMin,fMax). Boundary rows are
// resolved by the BC; under periodicity both wrap rows are computed
// independently so partition ordering cannot matter.
func (c *FokkerPlanck) computeFluxX(fMin, fMax int) {
	var (
		Nx, Ny = c.Nx, c.Ny
		rHx    = 1. / c.Hx
		p      = c.P.DataP
		a      = c.AxF.DataP
		d      = c.DxF.DataP
		F      = c.Fx.DataP
	)
	for f := fMin; f < fMax; f++ {
		if f > 0 && f < Nx {
			for j := 0; j < Ny; j++ {
				F[f*Ny+j] = fvm.FaceFlux(c.Flux, a[f*Ny+j], d[f*Ny+j],
					p[(f-1)*Ny+j], p[f*Ny+j], rHx)
			}
			continue
		}
		switch c.BC {
		case fvm.BC_Reflecting:
			for j := 0; j < Ny; j++ {
				F[f*Ny+j] = 0
			}
		case fvm.BC_Absorbing:
			if f == 0 {
				for j := 0; j < Ny; j++ {
					F[j] = fvm.FaceFlux(c.Flux, a[j], d[j], 0, p[j], rHx)
				}
			} else {
				for j := 0; j < Ny; j++ {
					F[Nx*Ny+j] = fvm.FaceFlux(c.Flux, a[Nx*Ny+j], d[Nx*Ny+j],
						p[(Nx-1)*Ny+j], 0, rHx)
				}
			}
		case fvm.BC_Periodic:
			for j := 0; j < Ny; j++ {
				F[f*Ny+j] = fvm.FaceFlux(c.Flux, a[f*Ny+j], d[f*Ny+j],
					p[(Nx-1)*Ny+j], p[j], rHx)
			}
		}
	}
}

// computeFluxY fills all Ny+1 y face fluxes of the cell rows [iMin,iMax).
func (c *FokkerPlanck) computeFluxY(iMin, iMax int) {
	var (
		Ny  = c.Ny
		rHy = 1. / c.Hy
		p   = c.P.DataP
		a   = c.AyF.DataP
		d   = c.DyF.DataP
		F   = c.Fy.DataP
	)
	for i := iMin; i < iMax; i++ {
		iP := i * Ny
		iF := i * (Ny + 1)
		for g := 1; g < Ny; g++ {
			F[iF+g] = fvm.FaceFlux(c.Flux, a[iF+g], d[iF+g], p[iP+g-1], p[iP+g], rHy)
		}
		switch c.BC {
		case fvm.BC_Reflecting:
			F[iF], F[iF+Ny] = 0, 0
		case fvm.BC_Absorbing:
			F[iF] = fvm.FaceFlux(c.Flux, a[iF], d[iF], 0, p[iP], rHy)
			F[iF+Ny] = fvm.FaceFlux(c.Flux, a[iF+Ny], d[iF+Ny], p[iP+Ny-1], 0, rHy)
		case fvm.BC_Periodic:
			F[iF] = fvm.FaceFlux(c.Flux, a[iF], d[iF], p[iP+Ny-1], p[iP], rHy)
			F[iF+Ny] = F[iF]
		}
	}
}

// update applies the divergence of both flux arrays to the cell rows
// [iMin,iMax).
func (c *FokkerPlanck) update(iMin, iMax int, dt float64) {
	var (
		Ny       = c.Ny
		rHx, rHy = 1. / c.Hx, 1. / c.Hy
		p        = c.P.DataP
		rhs      = c.RHSq.DataP
		Fx       = c.Fx.DataP
		Fy       = c.Fy.DataP
	)
	for i := iMin; i < iMax; i++ {
		iP := i * Ny
		iF := i * (Ny + 1)
		for j := 0; j < Ny; j++ {
			rhs[iP+j] = -(Fx[(i+1)*Ny+j]-Fx[iP+j])*rHx - (Fy[iF+j+1]-Fy[iF+j])*rHy
			p[iP+j] += dt * rhs[iP+j]
		}
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
