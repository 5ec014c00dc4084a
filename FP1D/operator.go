package FP1D

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/gofpe/fvm"
	"github.com/notargets/gofpe/utils"
)

// Operator is the assembled generator of the semi-discrete system,
// dp/dt = L p. The coefficients and boundary handling are baked in at
// assembly, which is valid because both are fixed at construction.
type Operator struct {
	L *sparse.CSR
}

// BuildOperator assembles the generator from the same face stencil the
// flux loop uses and switches the engine onto the sparse path. Each face
// contributes F = cL pL + cR pR to its neighbor cells, divided by dx.
func (c *FokkerPlanck) BuildOperator() {
	var (
		N   = c.N
		a   = c.AFace.DataP
		d   = c.DFace.DataP
		rDx = 1. / c.Dx
		m   = make(map[[2]int]float64)
	)
	add := func(i, j int, val float64) {
		m[[2]int{i, j}] += val
	}
	addFace := func(f, l, r int) {
		cL, cR := fvm.FaceWeights(c.Flux, a[f], d[f], rDx)
		// Cell l loses F through its right face, cell r gains it
		add(l, l, -cL*rDx)
		add(l, r, -cR*rDx)
		add(r, l, cL*rDx)
		add(r, r, cR*rDx)
	}
	for f := 1; f < N; f++ {
		addFace(f, f-1, f)
	}
	switch c.BC {
	case fvm.BC_Reflecting:
		// Zero flux boundary faces contribute nothing
	case fvm.BC_Absorbing:
		// Ghost cells hold p = 0, only the interior weight survives
		_, cR := fvm.FaceWeights(c.Flux, a[0], d[0], rDx)
		add(0, 0, cR*rDx)
		cL, _ := fvm.FaceWeights(c.Flux, a[N], d[N], rDx)
		add(N-1, N-1, -cL*rDx)
	case fvm.BC_Periodic:
		addFace(0, N-1, 0)
	}
	LDok := sparse.NewDOK(N, N)
	for ij, val := range m {
		LDok.Set(ij[0], ij[1], val)
	}
	c.Op = &Operator{L: LDok.ToCSR()}
}

// Apply computes rhs = L p.
func (op *Operator) Apply(p, rhs utils.Vector) {
	rhs.V.MulVec(op.L, p.V)
}
