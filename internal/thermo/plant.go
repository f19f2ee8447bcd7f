package thermo

import "fmt"

// Plant couples a power-generating cycle with the heat-source cycle that
// drives its boiler. Rates are in W.
type Plant struct {
	Power   *Cycle
	Source  *Cycle
	CoolEff float64

	PowerNet         float64
	HeatDelivered    float64
	HeatReleased     float64
	HeatAvailable    float64
	ExergyAvailable  float64
	EnergyEfficiency float64
	ExergyEfficiency float64
}

// NewPlant derives plant-level efficiencies from two finalized cycles. The
// first state of the source cycle is taken as the source stream inlet.
func NewPlant(power, source *Cycle, coolEff float64) (*Plant, error) {
	if power == nil || source == nil {
		return nil, Configf("plant", "both a power cycle and a source cycle are required")
	}
	if !power.finalized || !source.finalized {
		return nil, Configf("plant", "cycles must be finalized before the plant is assembled")
	}
	if coolEff <= 0 || coolEff > 1 {
		return nil, Configf("plant", "cool_eff must be in (0, 1], got %g", coolEff)
	}
	if len(source.states) == 0 {
		return nil, Configf("plant", "source cycle %q has no states", source.name)
	}

	inlet := source.states[0]
	p := &Plant{
		Power:           power,
		Source:          source,
		CoolEff:         coolEff,
		PowerNet:        power.mdot * power.totals.WorkNet,
		HeatDelivered:   power.mdot * power.totals.HeatIn,
		HeatReleased:    -source.mdot * source.totals.HeatNet,
		HeatAvailable:   source.mdot * (inlet.h - source.dead.h),
		ExergyAvailable: source.mdot * inlet.ef,
	}

	if p.HeatAvailable <= 0 {
		return nil, &CycleInfeasibleError{
			Component: "plant",
			State:     inlet.name,
			Reason:    "source stream is not above the dead state",
		}
	}
	if p.HeatReleased < p.HeatDelivered*(1-1e-9) {
		return nil, &CycleInfeasibleError{
			Component: "plant",
			Reason:    fmt.Sprintf("source releases %.1f W but the boiler needs %.1f W", p.HeatReleased, p.HeatDelivered),
		}
	}

	p.EnergyEfficiency = p.PowerNet / p.HeatAvailable
	if p.ExergyAvailable > 0 {
		p.ExergyEfficiency = p.PowerNet / p.ExergyAvailable
	}
	return p, nil
}
