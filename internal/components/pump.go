package components

import "github.com/san-kum/rankine/internal/thermo"

// ClampMargin is the relative bump applied to a pump outlet whose
// temperature or entropy falls below the isentropic reference. It corrects
// solver noise for near-incompressible liquid and is not a physical model.
const ClampMargin = 0.001

// Pump raises a liquid from PLo to PHi assuming incompressible flow.
type Pump struct {
	Label  string
	PLo    float64 // Pa, used when the inlet is synthesized
	PHi    float64 // Pa
	Eff    float64
	Inlet  string
	Outlet string
}

func NewPump(pLo, pHi float64) *Pump {
	return &Pump{
		Label:  "Pump",
		PLo:    pLo,
		PHi:    pHi,
		Eff:    1.0,
		Inlet:  "3",
		Outlet: "4",
	}
}

func (p *Pump) Name() string      { return label(p.Label, "Pump") }
func (p *Pump) Kind() thermo.Kind { return thermo.KindPump }

func (p *Pump) Compute(c *thermo.Cycle, inflow *thermo.State) (Output, error) {
	name := p.Name()
	if err := checkEff(name, p.Eff); err != nil {
		return Output{}, err
	}
	if p.PHi <= 0 {
		return Output{}, thermo.Configf(name, "outlet pressure p_hi is required")
	}

	var err error
	if inflow == nil {
		if p.PLo <= 0 {
			return Output{}, thermo.Configf(name, "inlet pressure p_lo is required without an inflow state")
		}
		inflow, err = c.FixState(label(p.Inlet, name+" inlet"), thermo.Pressure, p.PLo, thermo.Quality, 0)
		if err != nil {
			return Output{}, err
		}
	} else if err := checkFixed(name, inflow); err != nil {
		return Output{}, err
	}
	if p.PHi <= inflow.P() {
		return Output{}, thermo.Configf(name, "outlet pressure %g Pa is not above inlet pressure %g Pa", p.PHi, inflow.P())
	}

	ws := -inflow.V() * (p.PHi - inflow.P())
	w := ws / p.Eff

	outlet := label(p.Outlet, name+" outlet")
	ref, err := c.FixState(outlet+"s", thermo.Pressure, p.PHi, thermo.Entropy, inflow.S())
	if err != nil {
		return Output{}, err
	}
	out, _, err := c.FixStateAbove(outlet, thermo.Pressure, p.PHi, thermo.Enthalpy, inflow.H()-w, ref, ClampMargin)
	if err != nil {
		return Output{}, err
	}

	return Output{
		Inflow:  inflow,
		Outflow: out,
		Work:    w,
	}, nil
}
