package fvm

import "errors"

var (
	// ErrBadConfig reports an invalid solver configuration: bad cell
	// counts or bounds, missing coefficient functions, negative
	// diffusion, unknown boundary or flux names, bad run arguments.
	ErrBadConfig = errors.New("fvm: invalid configuration")

	// ErrUnstableDt reports a requested time step above the explicit
	// Euler stability bound.
	ErrUnstableDt = errors.New("fvm: time step exceeds stability bound")

	// ErrSolutionDiverged reports a NaN or Inf cell value detected
	// during time stepping.
	ErrSolutionDiverged = errors.New("fvm: solution diverged")
)
