// Package fvm holds the pieces shared by the finite volume Fokker-Planck
// solvers: boundary condition and flux variants, the error taxonomy,
// explicit Euler stability bounds and discrete mass accounting.
package fvm
