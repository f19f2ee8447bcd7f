package cycles

import (
	"fmt"

	"github.com/san-kum/rankine/internal/config"
	"github.com/san-kum/rankine/internal/thermo"
)

// Geothermal builds the brine loop that heats a power cycle. The brine
// enters at ground conditions and gives up cool_eff of its heat relative to
// the dead state. With no configured brine flow the flow is sized so that
// the loop releases exactly duty watts.
func Geothermal(cfg *config.Config, b thermo.Backend, duty float64, obs ...thermo.Observer) (*thermo.Cycle, error) {
	if err := cfg.ValidateSource(); err != nil {
		return nil, err
	}
	if err := checkCoolEff(cfg.CoolEff); err != nil {
		return nil, err
	}

	c, err := thermo.NewCycle("Geothermal Source", cfg.Source.Brine, b, cfg.Reference())
	if err != nil {
		return nil, err
	}
	for _, o := range obs {
		c.AddObserver(o)
	}

	in, err := c.FixState("Brine In", thermo.Temperature, cfg.Source.TGround, thermo.Pressure, cfg.Source.PGround)
	if err != nil {
		return nil, err
	}
	if in.H() <= c.Dead().H() {
		return nil, &thermo.CycleInfeasibleError{
			Component: "Geothermal Source",
			State:     in.Name(),
			Reason:    fmt.Sprintf("brine at %g K is not above the dead state", in.T()),
		}
	}

	hOut := in.H() - cfg.CoolEff*(in.H()-c.Dead().H())
	out, err := c.FixState("Brine Out", thermo.Pressure, cfg.Source.PGround, thermo.Enthalpy, hOut)
	if err != nil {
		return nil, err
	}
	if _, err := c.AddProcess("Brine HX", thermo.KindCondenser, in, out, out.H()-in.H(), 0); err != nil {
		return nil, err
	}

	mdot := cfg.Source.Mdot
	if mdot == 0 {
		mdot = duty / (in.H() - out.H())
	}
	if err := c.SetMdot(mdot); err != nil {
		return nil, err
	}

	if _, err := c.Finalize(); err != nil {
		return nil, err
	}
	return c, nil
}

func checkCoolEff(v float64) error {
	if !(v > 0 && v <= 1) {
		return thermo.Configf("cool_eff", "must be in (0, 1], got %g", v)
	}
	return nil
}
