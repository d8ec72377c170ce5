package scene

import (
	"github.com/roach88/roomsim/internal/entity"
	"github.com/roach88/roomsim/internal/ir"
)

// OptionsSchema declares the simulation options. It is variadic: keyword
// arguments it does not declare (for example "outputname") are kept after
// the declared ones.
var OptionsSchema = &entity.Schema{
	Kind: KindOptions,
	Params: []entity.Param{
		{Name: "fs", Default: 44100},
		{Name: "responseduration", Default: 1.25},
		{Name: "bandsperoctave", Default: 1},
		{Name: "referencefrequency", Default: 125},
		{Name: "airabsorption", Default: true},
		{Name: "distanceattenuation", Default: true},
		{Name: "subsampleaccuracy", Default: false},
		{Name: "highpasscutoff", Default: 0},
		{Name: "verbose", Default: true},
		{Name: "simulatespecular", Default: true},
		{Name: "reflectionorder", Default: []int64{10, 10, 10}},
		{Name: "simulatediffuse", Default: true},
		{Name: "numberofrays", Default: 2000},
		{Name: "diffusetimestep", Default: 0.010},
		{Name: "rayenergyfloordB", Default: -80},
		{Name: "uncorrelatednoise", Default: true},
	},
	Variadic: true,
	Wrap:     func(e *entity.Entity) entity.Configurable { return &Options{e} },
}

// Options holds the independent simulation knobs.
type Options struct {
	*entity.Entity
}

// NewOptions builds Options.
func NewOptions(args ...entity.Arg) (*Options, error) {
	c, err := OptionsSchema.Build(args...)
	if err != nil {
		return nil, err
	}
	return c.(*Options), nil
}

// SampleRate returns fs in Hz.
func (o *Options) SampleRate() float64 {
	fs, _ := ir.AsFloat(o.Value("fs"))
	return fs
}

// ResponseDuration returns the impulse response length in seconds.
func (o *Options) ResponseDuration() float64 {
	d, _ := ir.AsFloat(o.Value("responseduration"))
	return d
}

// ReflectionOrder returns the image source order per axis.
func (o *Options) ReflectionOrder() []int64 {
	r, _ := ir.AsInts(o.Value("reflectionorder"))
	return r
}

// NumberOfRays returns the ray count of the diffuse simulation.
func (o *Options) NumberOfRays() int64 {
	n, _ := ir.AsInt(o.Value("numberofrays"))
	return n
}

// Extra returns the names of the undeclared options, in the order given.
func (o *Options) Extra() []string {
	names := o.FieldNames()
	return names[len(OptionsSchema.Params):]
}
