package components

import (
	"fmt"

	"github.com/san-kum/rankine/internal/thermo"
)

// Output is the result of one component computation. Heat and Work are per
// unit mass: heat into the fluid and work out of it are positive.
type Output struct {
	Inflow  *thermo.State
	Outflow *thermo.State
	Heat    float64
	Work    float64
}

// Component fixes its outflow state from an inflow state. A nil inflow asks
// the component to synthesize one from its own boundary conditions.
type Component interface {
	Name() string
	Kind() thermo.Kind
	Compute(c *thermo.Cycle, inflow *thermo.State) (Output, error)
}

// Run computes comp and registers the resulting process with the cycle.
func Run(c *thermo.Cycle, comp Component, inflow *thermo.State) (*thermo.Process, error) {
	out, err := comp.Compute(c, inflow)
	if err != nil {
		return nil, err
	}
	return c.AddProcess(comp.Name(), comp.Kind(), out.Inflow, out.Outflow, out.Heat, out.Work)
}

func checkEff(name string, eff float64) error {
	if !(eff > 0 && eff <= 1) {
		return thermo.Configf(name, "isentropic efficiency must be in (0, 1], got %g", eff)
	}
	return nil
}

func checkFixed(name string, s *thermo.State) error {
	if !s.Fixed() {
		return thermo.Configf(name, "state %q is not fixed", s.Name())
	}
	return nil
}

// requireVapor rejects a state fixed from (p, T) that was meant to be
// superheated but lies on the liquid side of the saturation line.
func requireVapor(c *thermo.Cycle, comp string, s *thermo.State) error {
	switch s.Phase() {
	case thermo.PhaseSuperheatedVapor, thermo.PhaseSupercritical:
		return nil
	}
	reason := fmt.Sprintf("T=%g K at p=%g Pa is %s, not superheated vapor", s.T(), s.P(), s.Phase())
	if tsat, err := thermo.SaturationTemperature(c.Backend(), c.Fluid(), s.P()); err == nil {
		reason = fmt.Sprintf("T=%g K is not above the saturation temperature %.2f K at p=%g Pa", s.T(), tsat, s.P())
	}
	return &thermo.CycleInfeasibleError{Component: comp, State: s.Name(), Reason: reason}
}

func label(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
