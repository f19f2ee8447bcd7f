package cycles

import (
	"github.com/san-kum/rankine/internal/components"
	"github.com/san-kum/rankine/internal/config"
	"github.com/san-kum/rankine/internal/thermo"
)

// Rankine builds and finalizes a simple Rankine cycle. States follow the
// textbook numbering 1, 2s, 2, 3, 4s, 4: turbine inlet, turbine exit,
// condenser exit and pump exit.
func Rankine(name string, cfg *config.Config, b thermo.Backend, obs ...thermo.Observer) (*thermo.Cycle, error) {
	pHi, pLo, err := boundaries(cfg, b)
	if err != nil {
		return nil, err
	}
	c, err := newCycle(name, cfg, b, obs)
	if err != nil {
		return nil, err
	}

	turbine := components.NewTurbine(pHi, pLo)
	turbine.Eff = cfg.TurbEff
	if cfg.Superheat {
		turbine.THi = cfg.THi
		turbine.Superheat = true
	}
	expansion, err := components.Run(c, turbine, nil)
	if err != nil {
		return nil, err
	}

	condenser := components.NewCondenser(pLo)
	condenser.TLo = subcooling(cfg)
	rejection, err := components.Run(c, condenser, expansion.Out())
	if err != nil {
		return nil, err
	}

	pump := components.NewPump(pLo, pHi)
	pump.Eff = cfg.PumpEff
	compression, err := components.Run(c, pump, rejection.Out())
	if err != nil {
		return nil, err
	}

	boiler := components.NewBoiler(pHi)
	boiler.Outflow = expansion.In()
	if _, err := components.Run(c, boiler, compression.Out()); err != nil {
		return nil, err
	}

	if _, err := c.Finalize(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reheat builds and finalizes a reheat Rankine cycle: expansion to p_mid,
// reheating to T_mid and a second expansion to p_lo. States are numbered
// 1, 2s, 2, 3, 4s, 4, 5, 6s, 6.
func Reheat(name string, cfg *config.Config, b thermo.Backend, obs ...thermo.Observer) (*thermo.Cycle, error) {
	pHi, pLo, err := boundaries(cfg, b)
	if err != nil {
		return nil, err
	}
	if cfg.PMid <= pLo || cfg.PMid >= pHi {
		return nil, thermo.Configf("p_mid", "p_mid %g Pa must lie between p_lo %g Pa and p_hi %g Pa", cfg.PMid, pLo, pHi)
	}
	if cfg.THi <= 0 || cfg.TMid <= 0 {
		return nil, thermo.Configf("T_mid", "reheat needs both T_hi and T_mid")
	}
	c, err := newCycle(name, cfg, b, obs)
	if err != nil {
		return nil, err
	}

	hp := &components.Turbine{
		Label:     "HP Turbine",
		PHi:       pHi,
		THi:       cfg.THi,
		PLo:       cfg.PMid,
		Eff:       cfg.TurbEff,
		Superheat: true,
		Inlet:     "1",
		Outlet:    "2",
	}
	first, err := components.Run(c, hp, nil)
	if err != nil {
		return nil, err
	}

	reheater := &components.Boiler{
		Label:  "Reheater",
		P:      cfg.PMid,
		THi:    cfg.TMid,
		Outlet: "3",
	}
	reheat, err := components.Run(c, reheater, first.Out())
	if err != nil {
		return nil, err
	}

	lp := &components.Turbine{
		Label:     "LP Turbine",
		PLo:       pLo,
		Eff:       cfg.TurbEff,
		Superheat: true,
		Outlet:    "4",
	}
	second, err := components.Run(c, lp, reheat.Out())
	if err != nil {
		return nil, err
	}

	condenser := &components.Condenser{
		Label:  "Condenser",
		P:      pLo,
		TLo:    subcooling(cfg),
		Outlet: "5",
	}
	rejection, err := components.Run(c, condenser, second.Out())
	if err != nil {
		return nil, err
	}

	pump := &components.Pump{
		Label:  "Pump",
		PHi:    pHi,
		Eff:    cfg.PumpEff,
		Outlet: "6",
	}
	compression, err := components.Run(c, pump, rejection.Out())
	if err != nil {
		return nil, err
	}

	boiler := &components.Boiler{
		Label:   "Boiler",
		P:       pHi,
		Outflow: first.In(),
	}
	if _, err := components.Run(c, boiler, compression.Out()); err != nil {
		return nil, err
	}

	if _, err := c.Finalize(); err != nil {
		return nil, err
	}
	return c, nil
}

func newCycle(name string, cfg *config.Config, b thermo.Backend, obs []thermo.Observer) (*thermo.Cycle, error) {
	c, err := thermo.NewCycle(name, cfg.Fluid, b, cfg.Reference())
	if err != nil {
		return nil, err
	}
	if err := c.SetMdot(cfg.CycleMdot); err != nil {
		return nil, err
	}
	for _, o := range obs {
		c.AddObserver(o)
	}
	return c, nil
}

// boundaries returns the high and low pressures, querying the saturation
// pressure when only a temperature is configured.
func boundaries(cfg *config.Config, b thermo.Backend) (float64, float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, 0, err
	}
	pHi, err := boundary(cfg.PHi, cfg.THi, cfg.Fluid, b)
	if err != nil {
		return 0, 0, err
	}
	pLo, err := boundary(cfg.PLo, cfg.TLo, cfg.Fluid, b)
	if err != nil {
		return 0, 0, err
	}
	if pHi <= pLo {
		return 0, 0, thermo.Configf("p_hi", "p_hi %g Pa must exceed p_lo %g Pa", pHi, pLo)
	}
	return pHi, pLo, nil
}

func boundary(p, t float64, fluid string, b thermo.Backend) (float64, error) {
	if p > 0 {
		return p, nil
	}
	return thermo.SaturationPressure(b, fluid, t)
}

// subcooling is the condenser outlet temperature when both p_lo and T_lo
// are configured; otherwise the condenser exits as saturated liquid.
func subcooling(cfg *config.Config) float64 {
	if cfg.PLo > 0 && cfg.TLo > 0 {
		return cfg.TLo
	}
	return 0
}
