package scene

import (
	"fmt"

	"github.com/roach88/roomsim/internal/entity"
	"github.com/roach88/roomsim/internal/ir"
)

// DefaultFrequency is the default set of octave band center frequencies.
var DefaultFrequency = []int64{125, 250, 500, 1000, 2000, 4000}

// DefaultAbsorption holds one row of absorption coefficients per wall, one
// column per band in DefaultFrequency.
var DefaultAbsorption = []float64{
	0.10, 0.05, 0.06, 0.07, 0.10, 0.10,
	0.14, 0.35, 0.53, 0.75, 0.70, 0.60,
	0.10, 0.05, 0.06, 0.70, 0.10, 0.10,
	0.10, 0.05, 0.06, 0.07, 0.10, 0.10,
	0.01, 0.02, 0.06, 0.15, 0.25, 0.45,
	0.24, 0.19, 0.14, 0.08, 0.13, 0.10,
}

// DefaultDiffusion is 0.5 for every wall and band.
var DefaultDiffusion = []float64{
	0.5, 0.5, 0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, 0.5, 0.5, 0.5,
}

// Walls is the number of walls of a shoebox room.
const Walls = 6

// SurfaceSchema declares Surface. Unset lists are filled by the
// constructor body, so an explicit null in a configuration also gets the
// defaults.
var SurfaceSchema = &entity.Schema{
	Kind: KindSurface,
	Params: []entity.Param{
		{Name: "frequency"},
		{Name: "absorption"},
		{Name: "diffusion"},
	},
	Init: func(e *entity.Entity) error {
		defaults := []struct {
			name string
			v    any
		}{
			{"frequency", DefaultFrequency},
			{"absorption", DefaultAbsorption},
			{"diffusion", DefaultDiffusion},
		}
		for _, d := range defaults {
			if !e.IsNull(d.name) {
				continue
			}
			if err := e.Assign(d.name, d.v); err != nil {
				return err
			}
		}
		return nil
	},
	Wrap: func(e *entity.Entity) entity.Configurable { return &Surface{e} },
}

// Surface describes the wall materials: band center frequencies plus
// absorption and diffusion coefficients for every wall and band.
type Surface struct {
	*entity.Entity
}

// NewSurface builds a Surface. Unset fields take the defaults.
func NewSurface(args ...entity.Arg) (*Surface, error) {
	c, err := SurfaceSchema.Build(args...)
	if err != nil {
		return nil, err
	}
	return c.(*Surface), nil
}

// Frequency returns the band center frequencies.
func (s *Surface) Frequency() []float64 {
	f, _ := ir.AsFloats(s.Value("frequency"))
	return f
}

// Absorption returns the absorption coefficients, wall-major.
func (s *Surface) Absorption() []float64 {
	a, _ := ir.AsFloats(s.Value("absorption"))
	return a
}

// Diffusion returns the diffusion coefficients, wall-major.
func (s *Surface) Diffusion() []float64 {
	d, _ := ir.AsFloats(s.Value("diffusion"))
	return d
}

// Validate checks that absorption and diffusion hold one coefficient per
// wall and band. It is never run implicitly.
func (s *Surface) Validate(walls int) error {
	bands := len(s.Frequency())
	want := bands * walls
	for _, name := range []string{"absorption", "diffusion"} {
		coeffs, ok := ir.AsFloats(s.Value(name))
		if !ok {
			return entity.NewInvalidValueError(KindSurface, name, "expected a list of numbers")
		}
		if len(coeffs) != want {
			return entity.NewInvalidValueError(KindSurface, name,
				fmt.Sprintf("has %d coefficients, want %d (%d bands x %d walls)", len(coeffs), want, bands, walls))
		}
	}
	return nil
}
