package components

import (
	"fmt"

	"github.com/san-kum/rankine/internal/thermo"
)

// Turbine expands the working fluid from PHi to PLo. The isentropic
// reference outlet is registered as Outlet+"s".
type Turbine struct {
	Label     string
	PHi       float64 // Pa, used when the inlet is synthesized
	THi       float64 // K
	PLo       float64 // Pa
	Eff       float64
	Superheat bool
	Inlet     string
	Outlet    string
}

func NewTurbine(pHi, pLo float64) *Turbine {
	return &Turbine{
		Label:  "Turbine",
		PHi:    pHi,
		PLo:    pLo,
		Eff:    1.0,
		Inlet:  "1",
		Outlet: "2",
	}
}

func (t *Turbine) Name() string      { return label(t.Label, "Turbine") }
func (t *Turbine) Kind() thermo.Kind { return thermo.KindTurbine }

func (t *Turbine) Compute(c *thermo.Cycle, inflow *thermo.State) (Output, error) {
	name := t.Name()
	if err := checkEff(name, t.Eff); err != nil {
		return Output{}, err
	}
	if t.PLo <= 0 {
		return Output{}, thermo.Configf(name, "outlet pressure p_lo is required")
	}

	var err error
	if inflow == nil {
		inflow, err = t.inlet(c)
		if err != nil {
			return Output{}, err
		}
	} else if err := checkFixed(name, inflow); err != nil {
		return Output{}, err
	}
	if inflow.P() <= t.PLo {
		return Output{}, thermo.Configf(name, "outlet pressure %g Pa is not below inlet pressure %g Pa", t.PLo, inflow.P())
	}

	outlet := label(t.Outlet, name+" outlet")
	ref, err := c.FixState(outlet+"s", thermo.Pressure, t.PLo, thermo.Entropy, inflow.S())
	if err != nil {
		return Output{}, err
	}
	hOut := t.Eff*(ref.H()-inflow.H()) + inflow.H()
	out, err := c.FixState(outlet, thermo.Pressure, t.PLo, thermo.Enthalpy, hOut)
	if err != nil {
		return Output{}, err
	}

	if !t.Superheat {
		switch out.Phase() {
		case thermo.PhaseSuperheatedVapor, thermo.PhaseSupercritical:
			return Output{}, &thermo.CycleInfeasibleError{
				Component: name,
				State:     out.Name(),
				Reason:    fmt.Sprintf("exit quality exceeds 1 (%s) without superheat at efficiency %g", out.Phase(), t.Eff),
			}
		}
	}

	return Output{
		Inflow:  inflow,
		Outflow: out,
		Work:    inflow.H() - hOut,
	}, nil
}

// inlet is saturated vapor at PHi (or at THi when no pressure is given), or
// (PHi, THi) when superheating.
func (t *Turbine) inlet(c *thermo.Cycle) (*thermo.State, error) {
	name := label(t.Inlet, t.Name()+" inlet")
	switch {
	case t.Superheat:
		if t.PHi <= 0 || t.THi <= 0 {
			return nil, thermo.Configf(t.Name(), "superheat needs both p_hi and T_hi")
		}
		s, err := c.FixState(name, thermo.Pressure, t.PHi, thermo.Temperature, t.THi)
		if err != nil {
			return nil, err
		}
		if err := requireVapor(c, t.Name(), s); err != nil {
			return nil, err
		}
		return s, nil
	case t.PHi > 0:
		return c.FixState(name, thermo.Pressure, t.PHi, thermo.Quality, 1)
	case t.THi > 0:
		return c.FixState(name, thermo.Temperature, t.THi, thermo.Quality, 1)
	}
	return nil, thermo.Configf(t.Name(), "neither p_hi nor T_hi is given")
}
