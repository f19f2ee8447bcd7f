package fluid

import (
	"sort"

	"github.com/san-kum/rankine/internal/thermo"
)

// Evaluator computes the properties of a single fluid in SI units.
type Evaluator interface {
	Props(out, name1 thermo.Property, value1 float64, name2 thermo.Property, value2 float64) (float64, error)
	Phase(name1 thermo.Property, value1 float64, name2 thermo.Property, value2 float64) (thermo.Phase, error)
}

type critical interface {
	Critical() (t, p float64)
}

// Registry maps fluid names and their aliases to evaluators. It implements
// thermo.Backend and thermo.CriticalPointer.
type Registry struct {
	evaluators map[string]Evaluator
	canonical  map[string]string
}

// NewRegistry returns a registry holding water and MNA-20 brine.
func NewRegistry() *Registry {
	r := &Registry{
		evaluators: make(map[string]Evaluator),
		canonical:  make(map[string]string),
	}

	r.Register("Water", Water{}, "water", "H2O", "IF97::Water", "HEOS::Water")
	r.Register("MNA-20", NewMNA20(), "INCOMP::MNA-20")

	return r
}

// Register adds an evaluator under name and any aliases, replacing
// previous registrations of the same names.
func (r *Registry) Register(name string, e Evaluator, aliases ...string) {
	r.evaluators[name] = e
	r.canonical[name] = name
	for _, alias := range aliases {
		r.canonical[alias] = name
	}
}

// Canonical resolves an alias to the registered fluid name.
func (r *Registry) Canonical(fluid string) (string, error) {
	name, ok := r.canonical[fluid]
	if !ok {
		return "", &thermo.ConfigurationError{Subject: fluid, Err: ErrUnsupportedFluid}
	}
	return name, nil
}

func (r *Registry) Lookup(fluid string) (Evaluator, error) {
	name, err := r.Canonical(fluid)
	if err != nil {
		return nil, err
	}
	return r.evaluators[name], nil
}

func (r *Registry) ListFluids() []string {
	names := make([]string, 0, len(r.evaluators))
	for name := range r.evaluators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Aliases returns the alternative spellings registered for a fluid.
func (r *Registry) Aliases(fluid string) []string {
	var out []string
	for alias, name := range r.canonical {
		if name == fluid && alias != fluid {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

func (r *Registry) Props(out, name1 thermo.Property, value1 float64, name2 thermo.Property, value2 float64, fluid string) (float64, error) {
	e, err := r.Lookup(fluid)
	if err != nil {
		return 0, err
	}
	return e.Props(out, name1, value1, name2, value2)
}

func (r *Registry) Phase(name1 thermo.Property, value1 float64, name2 thermo.Property, value2 float64, fluid string) (thermo.Phase, error) {
	e, err := r.Lookup(fluid)
	if err != nil {
		return thermo.PhaseUnknown, err
	}
	return e.Phase(name1, value1, name2, value2)
}

func (r *Registry) Critical(fluid string) (float64, float64, error) {
	e, err := r.Lookup(fluid)
	if err != nil {
		return 0, 0, err
	}
	c, ok := e.(critical)
	if !ok {
		return 0, 0, thermo.Configf(fluid, "fluid has no critical point")
	}
	t, p := c.Critical()
	return t, p, nil
}
