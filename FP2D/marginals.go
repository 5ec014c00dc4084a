package FP2D

import (
	"github.com/notargets/gofpe/utils"
)

// MarginalX integrates the density over y, returning p(x) with the same
// discrete mass as the 2D field.
func MarginalX(P utils.Matrix, Hy float64) (m utils.Vector) {
	var (
		Nx, Ny = P.Dims()
	)
	m = utils.NewVector(Nx)
	for i := 0; i < Nx; i++ {
		var sum float64
		for j := 0; j < Ny; j++ {
			sum += P.DataP[i*Ny+j]
		}
		m.DataP[i] = sum * Hy
	}
	return
}

// MarginalY integrates the density over x, returning p(y).
func MarginalY(P utils.Matrix, Hx float64) (m utils.Vector) {
	var (
		Nx, Ny = P.Dims()
	)
	m = utils.NewVector(Ny)
	for j := 0; j < Ny; j++ {
		var sum float64
		for i := 0; i < Nx; i++ {
			sum += P.DataP[i*Ny+j]
		}
		m.DataP[j] = sum * Hx
	}
	return
}

// Marginals returns both axis marginals of the current density.
func (c *FokkerPlanck) Marginals() (mx, my utils.Vector) {
	mx = MarginalX(c.P, c.Hy)
	my = MarginalY(c.P, c.Hx)
	return
}
