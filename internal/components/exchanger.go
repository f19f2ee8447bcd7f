package components

import "github.com/san-kum/rankine/internal/thermo"

// Boiler heats the fluid at constant pressure. Without explicit
// temperatures it runs from saturated liquid to saturated vapor. Outflow may
// name an already-fixed state to close a loop.
type Boiler struct {
	Label   string
	P       float64 // Pa
	TLo     float64 // K, subcooled inlet when synthesized
	THi     float64 // K, superheated outlet
	Outflow *thermo.State
	Inlet   string
	Outlet  string
}

func NewBoiler(p float64) *Boiler {
	return &Boiler{Label: "Boiler", P: p, Inlet: "4", Outlet: "1"}
}

func (b *Boiler) Name() string      { return label(b.Label, "Boiler") }
func (b *Boiler) Kind() thermo.Kind { return thermo.KindBoiler }

func (b *Boiler) Compute(c *thermo.Cycle, inflow *thermo.State) (Output, error) {
	name := b.Name()
	in, err := exchangerSide(c, name, inflow, label(b.Inlet, name+" inlet"), b.P, b.TLo, 0)
	if err != nil {
		return Output{}, err
	}
	out, err := exchangerSide(c, name, b.Outflow, label(b.Outlet, name+" outlet"), pressureOf(b.P, in), b.THi, 1)
	if err != nil {
		return Output{}, err
	}
	return Output{Inflow: in, Outflow: out, Heat: out.H() - in.H()}, nil
}

// Condenser cools the fluid at constant pressure, by default from saturated
// vapor to saturated liquid.
type Condenser struct {
	Label   string
	P       float64 // Pa
	THi     float64 // K, superheated inlet when synthesized
	TLo     float64 // K, subcooled outlet
	Outflow *thermo.State
	Inlet   string
	Outlet  string
}

func NewCondenser(p float64) *Condenser {
	return &Condenser{Label: "Condenser", P: p, Inlet: "2", Outlet: "3"}
}

func (d *Condenser) Name() string      { return label(d.Label, "Condenser") }
func (d *Condenser) Kind() thermo.Kind { return thermo.KindCondenser }

func (d *Condenser) Compute(c *thermo.Cycle, inflow *thermo.State) (Output, error) {
	name := d.Name()
	in, err := exchangerSide(c, name, inflow, label(d.Inlet, name+" inlet"), d.P, d.THi, 1)
	if err != nil {
		return Output{}, err
	}
	out, err := exchangerSide(c, name, d.Outflow, label(d.Outlet, name+" outlet"), pressureOf(d.P, in), d.TLo, 0)
	if err != nil {
		return Output{}, err
	}
	return Output{Inflow: in, Outflow: out, Heat: out.H() - in.H()}, nil
}

func pressureOf(p float64, in *thermo.State) float64 {
	if p > 0 {
		return p
	}
	return in.P()
}

// exchangerSide returns s when given, otherwise fixes a new state at
// (p, t) or on the saturation boundary with quality x. A vapor-side state
// (x = 1) fixed from an explicit temperature must be superheated.
func exchangerSide(c *thermo.Cycle, comp string, s *thermo.State, name string, p, t, x float64) (*thermo.State, error) {
	if s != nil {
		if err := checkFixed(comp, s); err != nil {
			return nil, err
		}
		return s, nil
	}
	if p <= 0 {
		return nil, thermo.Configf(comp, "pressure is required to synthesize state %q", name)
	}
	if t > 0 {
		s, err := c.FixState(name, thermo.Pressure, p, thermo.Temperature, t)
		if err != nil {
			return nil, err
		}
		if x == 1 {
			if err := requireVapor(c, comp, s); err != nil {
				return nil, err
			}
		}
		return s, nil
	}
	return c.FixState(name, thermo.Pressure, p, thermo.Quality, x)
}
