package fvm

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultMassTol is the relative drift in total mass tolerated before a
// conservative run is flagged as anomalous.
const DefaultMassTol = 1.e-8

// Mass returns the discrete integral of the density over the domain,
// Sum(p_i) * cellVolume for a uniform grid.
func Mass(p []float64, cellVolume float64) float64 {
	return floats.Sum(p) * cellVolume
}

// FirstNonFinite returns the index of the first NaN or Inf entry, or -1
// when every entry is finite.
func FirstNonFinite(p []float64) int {
	for i, val := range p {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return i
		}
	}
	return -1
}

// Gaussian evaluates the normal density with mean x0 and standard
// deviation sigma at x.
func Gaussian(x, x0, sigma float64) float64 {
	arg := (x - x0) / sigma
	return math.Exp(-0.5*arg*arg) / (sigma * math.Sqrt(2.*math.Pi))
}
