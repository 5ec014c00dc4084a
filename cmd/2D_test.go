package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gofpe/InputParameters"
	"github.com/notargets/gofpe/fvm"
)

func TestRun2D(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Case
CFL: 0.8
BCType: periodic
FluxType: central
Case: diffusion
XMin: 0.
XMax: 1.
YMin: 0.
YMax: 1.
Nx: 20
Ny: 20
FinalTime: 0.05
SampleStride: 5
`)
	ip := InputParameters.NewInputParameters2D()
	if err = ip.Parse(fileInput); err != nil {
		panic(err)
	}
	assert.Equal(t, 0.8, ip.CFL)
	assert.Equal(t, "periodic", ip.BCType)
	assert.Equal(t, 20, ip.Nx)
	assert.Equal(t, 0.05, ip.FinalTime)
	// Fields absent from the file keep their defaults
	assert.Equal(t, 0., ip.Dt)
	ip.Print()

	m2d := &Model2D{NProc: 1}
	assert.NoError(t, Run2D(m2d, ip))

	// Unknown selector strings surface as configuration errors
	bad := *ip
	bad.BCType = "dirichlet"
	assert.True(t, errors.Is(Run2D(m2d, &bad), fvm.ErrBadConfig))
	bad = *ip
	bad.FluxType = "weno"
	assert.True(t, errors.Is(Run2D(m2d, &bad), fvm.ErrBadConfig))
	bad = *ip
	bad.Case = "lorenz"
	assert.True(t, errors.Is(Run2D(m2d, &bad), fvm.ErrBadConfig))
}

func TestRun1D(t *testing.T) {
	m1d := &Model1D{
		Case: "diffusion", BCName: "reflecting", FluxName: "central",
		XMin: 0, XMax: 1, N: 50,
		CFL: 0.9, FinalTime: 0.1, Dt: 0, SampleStride: 10,
	}
	assert.NoError(t, Run1D(m1d))
	m1d.Operator = true
	assert.NoError(t, Run1D(m1d))
	m1d.BCName = "outflow"
	assert.True(t, errors.Is(Run1D(m1d), fvm.ErrBadConfig))
}
