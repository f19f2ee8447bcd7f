package thermo

import "strings"

// Property names a thermodynamic property understood by a Backend.
type Property string

const (
	Temperature    Property = "T" // K
	Pressure       Property = "P" // Pa
	Density        Property = "D" // kg/m^3
	Volume         Property = "V" // m^3/kg, converted to Density before backend calls
	InternalEnergy Property = "U" // J/kg
	Enthalpy       Property = "H" // J/kg
	Entropy        Property = "S" // J/kg.K
	Quality        Property = "Q" // vapor mass fraction
)

// coreProperties is the set a fixed State always carries, in lookup order.
var coreProperties = [...]Property{Temperature, Pressure, Density, InternalEnergy, Enthalpy, Entropy, Quality}

// ParseProperty accepts the usual spellings (case-insensitive, "x" for
// quality, "v" for specific volume).
func ParseProperty(name string) (Property, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "T":
		return Temperature, nil
	case "P":
		return Pressure, nil
	case "D", "RHO":
		return Density, nil
	case "V":
		return Volume, nil
	case "U":
		return InternalEnergy, nil
	case "H":
		return Enthalpy, nil
	case "S":
		return Entropy, nil
	case "Q", "X":
		return Quality, nil
	}
	return "", Configf("", "unknown property %q", name)
}

// normalize maps a caller-supplied pair onto the names the backend accepts.
func normalize(p Property, v float64) (Property, float64, error) {
	switch p {
	case "x", "X", "q":
		return Quality, v, nil
	case Volume, "v":
		if v <= 0 {
			return "", 0, Configf("", "specific volume must be positive, got %g", v)
		}
		return Density, 1 / v, nil
	case Temperature, Pressure, Density, InternalEnergy, Enthalpy, Entropy, Quality:
		return p, v, nil
	}
	parsed, err := ParseProperty(string(p))
	if err != nil {
		return "", 0, err
	}
	return normalize(parsed, v)
}

// Phase describes where a state sits relative to the saturation dome.
type Phase int

const (
	PhaseUnknown Phase = iota
	PhaseSubcooledLiquid
	PhaseSaturatedLiquid
	PhaseTwoPhase
	PhaseSaturatedVapor
	PhaseSuperheatedVapor
	PhaseSupercritical
	PhaseLiquid
)

func (p Phase) String() string {
	switch p {
	case PhaseSubcooledLiquid:
		return "subcooled liquid"
	case PhaseSaturatedLiquid:
		return "saturated liquid"
	case PhaseTwoPhase:
		return "two-phase"
	case PhaseSaturatedVapor:
		return "saturated vapor"
	case PhaseSuperheatedVapor:
		return "superheated vapor"
	case PhaseSupercritical:
		return "supercritical"
	case PhaseLiquid:
		return "liquid"
	}
	return "unknown"
}

// InDome reports whether quality is numerically meaningful for the phase.
func (p Phase) InDome() bool {
	return p == PhaseSaturatedLiquid || p == PhaseTwoPhase || p == PhaseSaturatedVapor
}

// Backend evaluates fluid properties from two independent properties.
//
// Props follows the PropsSI contract: SI units, and a quality of -1 for
// states outside the two-phase dome. Implementations used by parallel
// sweeps must be safe for concurrent use.
type Backend interface {
	Props(out Property, name1 Property, value1 float64, name2 Property, value2 float64, fluid string) (float64, error)
	Phase(name1 Property, value1 float64, name2 Property, value2 float64, fluid string) (Phase, error)
}

// CriticalPointer is implemented by backends that know the critical point.
type CriticalPointer interface {
	Critical(fluid string) (t, p float64, err error)
}

// SaturationPressure queries the saturation pressure at temperature t.
func SaturationPressure(b Backend, fluid string, t float64) (float64, error) {
	p, err := b.Props(Pressure, Temperature, t, Quality, 0, fluid)
	if err != nil {
		return 0, &UnresolvedStateError{State: "saturation", Fluid: fluid, Name1: Temperature, Value1: t, Name2: Quality, Value2: 0, Wrapped: err}
	}
	return p, nil
}

// SaturationTemperature queries the saturation temperature at pressure p.
func SaturationTemperature(b Backend, fluid string, p float64) (float64, error) {
	t, err := b.Props(Temperature, Pressure, p, Quality, 0, fluid)
	if err != nil {
		return 0, &UnresolvedStateError{State: "saturation", Fluid: fluid, Name1: Pressure, Value1: p, Name2: Quality, Value2: 0, Wrapped: err}
	}
	return t, nil
}
