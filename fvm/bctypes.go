package fvm

// BCType selects the boundary treatment applied to every domain edge.
type BCType uint8

const (
	BC_Reflecting BCType = iota // Zero flux through the boundary, mass is conserved
	BC_Absorbing                // Zero-density ghost cells, mass exits the domain
	BC_Periodic                 // Wrapped indexing, first and last faces coincide
)

var BCNameMap = map[string]BCType{
	"reflecting": BC_Reflecting,
	"reflect":    BC_Reflecting,
	"absorbing":  BC_Absorbing,
	"absorb":     BC_Absorbing,
	"periodic":   BC_Periodic,
}

func (bc BCType) String() string {
	switch bc {
	case BC_Reflecting:
		return "Reflecting"
	case BC_Absorbing:
		return "Absorbing"
	case BC_Periodic:
		return "Periodic"
	}
	return "Unknown"
}

// FluxType selects the face interpolation used for the advective term.
type FluxType uint8

const (
	FLUX_Central FluxType = iota // Arithmetic mean of the neighbor cells
	FLUX_Upwind                  // Donor cell selected by the drift sign
)

var FluxNameMap = map[string]FluxType{
	"central": FLUX_Central,
	"upwind":  FLUX_Upwind,
}

func (ft FluxType) String() string {
	switch ft {
	case FLUX_Central:
		return "Central"
	case FLUX_Upwind:
		return "Upwind"
	}
	return "Unknown"
}
