package export

import (
	"github.com/san-kum/rankine/internal/thermo"
)

// Basis selects how process energies are reported.
type Basis string

const (
	// PerMass reports energies in kJ per kg of working fluid.
	PerMass Basis = "mass"
	// Rate scales energies by the cycle mass flow and reports kW.
	Rate Basis = "rate"
)

func ParseBasis(name string) (Basis, error) {
	switch Basis(name) {
	case PerMass, Rate:
		return Basis(name), nil
	}
	return "", thermo.Configf("basis", "unknown basis %q, want %q or %q", name, PerMass, Rate)
}

// StateRecord is one state in presentation units: K, kPa, kg/m^3, kJ/kg
// and kJ/(kg K). Quality is omitted outside the dome.
type StateRecord struct {
	Name  string   `json:"name"`
	Phase string   `json:"phase"`
	T     float64  `json:"T"`
	P     float64  `json:"p"`
	D     float64  `json:"d"`
	U     float64  `json:"u"`
	H     float64  `json:"h"`
	S     float64  `json:"s"`
	X     *float64 `json:"x,omitempty"`
	Ef    float64  `json:"ef"`
}

type ProcessRecord struct {
	Name             string  `json:"name"`
	Kind             string  `json:"kind"`
	In               string  `json:"in"`
	Out              string  `json:"out"`
	Heat             float64 `json:"heat"`
	Work             float64 `json:"work"`
	DeltaEf          float64 `json:"delta_ef"`
	ExergyIn         float64 `json:"ex_in"`
	ExergyOut        float64 `json:"ex_out"`
	ExergyDestroyed  float64 `json:"ex_d"`
	ExergyEfficiency float64 `json:"ex_eff"`
}

type TotalsRecord struct {
	WorkNet          float64 `json:"wnet"`
	HeatNet          float64 `json:"qnet"`
	HeatIn           float64 `json:"qin"`
	TurbineWork      float64 `json:"w_turbine"`
	PumpWork         float64 `json:"w_pump"`
	EnergyEfficiency float64 `json:"en_eff"`
	BackWorkRatio    float64 `json:"bwr"`
	ExergyEfficiency float64 `json:"ex_eff"`
	ExergyIn         float64 `json:"ex_in"`
	ExergyOut        float64 `json:"ex_out"`
	ExergyDestroyed  float64 `json:"ex_d"`
	DeltaEf          float64 `json:"delta_ef"`
}

type CycleRecord struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Fluid     string          `json:"fluid"`
	Mdot      float64         `json:"mdot"`
	Basis     Basis           `json:"basis"`
	Unit      string          `json:"unit"`
	DeadState StateRecord     `json:"dead_state"`
	States    []StateRecord   `json:"states"`
	Processes []ProcessRecord `json:"processes"`
	Totals    TotalsRecord    `json:"totals"`
}

// PlantRecord reports plant rates in kW.
type PlantRecord struct {
	Power            CycleRecord `json:"power"`
	Source           CycleRecord `json:"source"`
	CoolEff          float64     `json:"cool_eff"`
	PowerNet         float64     `json:"power_net"`
	HeatDelivered    float64     `json:"heat_delivered"`
	HeatReleased     float64     `json:"heat_released"`
	HeatAvailable    float64     `json:"heat_available"`
	ExergyAvailable  float64     `json:"exergy_available"`
	EnergyEfficiency float64     `json:"en_eff"`
	ExergyEfficiency float64     `json:"ex_eff"`
}

func FromState(s *thermo.State) StateRecord {
	r := StateRecord{
		Name:  s.Name(),
		Phase: s.Phase().String(),
		T:     s.T(),
		P:     s.P() / 1e3,
		D:     s.D(),
		U:     s.U() / 1e3,
		H:     s.H() / 1e3,
		S:     s.S() / 1e3,
		Ef:    s.Ef() / 1e3,
	}
	if x, ok := s.Quality(); ok {
		r.X = &x
	}
	return r
}

// FromCycle snapshots a finalized cycle.
func FromCycle(c *thermo.Cycle, basis Basis) CycleRecord {
	scale, unit := 1e-3, "kJ/kg"
	if basis == Rate {
		scale, unit = c.Mdot()*1e-3, "kW"
	} else {
		basis = PerMass
	}

	r := CycleRecord{
		ID:        c.ID(),
		Name:      c.Name(),
		Fluid:     c.Fluid(),
		Mdot:      c.Mdot(),
		Basis:     basis,
		Unit:      unit,
		DeadState: FromState(c.Dead()),
		States:    make([]StateRecord, 0, len(c.States())),
		Processes: make([]ProcessRecord, 0, len(c.Processes())),
	}
	for _, s := range c.States() {
		r.States = append(r.States, FromState(s))
	}
	for _, p := range c.Processes() {
		r.Processes = append(r.Processes, ProcessRecord{
			Name:             p.Name(),
			Kind:             p.Kind().String(),
			In:               p.In().Name(),
			Out:              p.Out().Name(),
			Heat:             p.Heat() * scale,
			Work:             p.Work() * scale,
			DeltaEf:          p.DeltaEf() * scale,
			ExergyIn:         p.ExergyIn() * scale,
			ExergyOut:        p.ExergyOut() * scale,
			ExergyDestroyed:  p.ExergyDestroyed() * scale,
			ExergyEfficiency: p.ExergyEfficiency(),
		})
	}

	t := c.Totals()
	r.Totals = TotalsRecord{
		WorkNet:          t.WorkNet * scale,
		HeatNet:          t.HeatNet * scale,
		HeatIn:           t.HeatIn * scale,
		TurbineWork:      t.TurbineWork * scale,
		PumpWork:         t.PumpWork * scale,
		EnergyEfficiency: t.EnergyEfficiency,
		BackWorkRatio:    t.BackWorkRatio,
		ExergyEfficiency: t.ExergyEfficiency,
		ExergyIn:         t.ExergyIn * scale,
		ExergyOut:        t.ExergyOut * scale,
		ExergyDestroyed:  t.ExergyDestroyed * scale,
		DeltaEf:          t.DeltaEf * scale,
	}
	return r
}

func FromPlant(p *thermo.Plant, basis Basis) PlantRecord {
	return PlantRecord{
		Power:            FromCycle(p.Power, basis),
		Source:           FromCycle(p.Source, basis),
		CoolEff:          p.CoolEff,
		PowerNet:         p.PowerNet / 1e3,
		HeatDelivered:    p.HeatDelivered / 1e3,
		HeatReleased:     p.HeatReleased / 1e3,
		HeatAvailable:    p.HeatAvailable / 1e3,
		ExergyAvailable:  p.ExergyAvailable / 1e3,
		EnergyEfficiency: p.EnergyEfficiency,
		ExergyEfficiency: p.ExergyEfficiency,
	}
}
