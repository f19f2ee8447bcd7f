package fluid

import (
	"math"

	"github.com/san-kum/rankine/internal/thermo"
)

// Brine is an incompressible liquid with constant heat capacity and
// density. Enthalpy carries the flow work term p/rho; internal energy and
// entropy depend on temperature only.
type Brine struct {
	Cp   float64 // J/(kg K)
	Rho  float64 // kg/m^3
	TRef float64 // K, zero of u and s
	TMin float64 // K
	TMax float64 // K
}

// NewMNA20 returns the MNA-20 geothermal brine used by the plant model.
func NewMNA20() *Brine {
	return &Brine{
		Cp:   3330,
		Rho:  1148,
		TRef: 273.15,
		TMin: 253.15,
		TMax: 473.15,
	}
}

type brinePoint struct {
	t, p float64
}

func (b *Brine) Props(out, name1 thermo.Property, value1 float64, name2 thermo.Property, value2 float64) (float64, error) {
	if out == name1 {
		return value1, nil
	}
	if out == name2 {
		return value2, nil
	}
	pt, err := b.resolve(name1, value1, name2, value2)
	if err != nil {
		return 0, err
	}
	switch out {
	case thermo.Temperature:
		return pt.t, nil
	case thermo.Pressure:
		return pt.p, nil
	case thermo.Density:
		return b.Rho, nil
	case thermo.Volume:
		return 1 / b.Rho, nil
	case thermo.InternalEnergy:
		return b.u(pt.t), nil
	case thermo.Enthalpy:
		return b.u(pt.t) + pt.p/b.Rho, nil
	case thermo.Entropy:
		return b.s(pt.t), nil
	case thermo.Quality:
		return -1, nil
	}
	return 0, thermo.Configf("", "unknown output property %q", out)
}

func (b *Brine) Phase(name1 thermo.Property, value1 float64, name2 thermo.Property, value2 float64) (thermo.Phase, error) {
	if _, err := b.resolve(name1, value1, name2, value2); err != nil {
		return thermo.PhaseUnknown, err
	}
	return thermo.PhaseLiquid, nil
}

func (b *Brine) u(t float64) float64 { return b.Cp * (t - b.TRef) }
func (b *Brine) s(t float64) float64 { return b.Cp * math.Log(t/b.TRef) }

// resolve recovers temperature and pressure from any pair that is not
// density or quality. Two temperature-only properties are dependent.
func (b *Brine) resolve(name1 thermo.Property, value1 float64, name2 thermo.Property, value2 float64) (brinePoint, error) {
	vals := map[thermo.Property]float64{}
	for _, in := range []struct {
		name  thermo.Property
		value float64
	}{{name1, value1}, {name2, value2}} {
		switch in.name {
		case thermo.Density, thermo.Volume, thermo.Quality:
			return brinePoint{}, thermo.Configf("", "property %s does not fix an incompressible liquid", in.name)
		case thermo.Temperature, thermo.Pressure, thermo.Enthalpy, thermo.InternalEnergy, thermo.Entropy:
		default:
			return brinePoint{}, thermo.Configf("", "unknown input property %q", in.name)
		}
		if _, dup := vals[in.name]; dup {
			return brinePoint{}, thermo.Configf("", "property %s given twice", in.name)
		}
		vals[in.name] = in.value
	}

	var (
		t, p         float64
		haveT, haveP bool
		thermal      int
	)
	if v, ok := vals[thermo.Temperature]; ok {
		t, haveT = v, true
		thermal++
	}
	if v, ok := vals[thermo.InternalEnergy]; ok {
		t, haveT = b.TRef+v/b.Cp, true
		thermal++
	}
	if v, ok := vals[thermo.Entropy]; ok {
		t, haveT = b.TRef*math.Exp(v/b.Cp), true
		thermal++
	}
	if thermal > 1 {
		return brinePoint{}, thermo.Configf("", "temperature, internal energy and entropy are dependent for an incompressible liquid")
	}
	if v, ok := vals[thermo.Pressure]; ok {
		p, haveP = v, true
	}
	if h, ok := vals[thermo.Enthalpy]; ok {
		switch {
		case haveT:
			p, haveP = (h-b.u(t))*b.Rho, true
		case haveP:
			t, haveT = b.TRef+(h-p/b.Rho)/b.Cp, true
		}
	}
	if !haveT || !haveP {
		return brinePoint{}, thermo.Configf("", "inputs %s and %s do not fix the state", name1, name2)
	}
	if t < b.TMin || t > b.TMax || p <= 0 {
		return brinePoint{}, ErrOutOfRange
	}
	return brinePoint{t: t, p: p}, nil
}
