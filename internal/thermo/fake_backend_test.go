package thermo

import (
	"errors"
	"math"
)

// idealGas is a calorically perfect gas referenced to 298.15 K and
// 101300 Pa. It resolves (T, p), (p, h), (p, s) and (T, s).
type idealGas struct {
	cp, r float64
}

const (
	gasT0 = 298.15
	gasP0 = 101300.0
)

var errGasPair = errors.New("ideal gas: unsupported property pair")

func newIdealGas() idealGas { return idealGas{cp: 1005, r: 287} }

func (g idealGas) resolve(n1 Property, v1 float64, n2 Property, v2 float64) (float64, float64, error) {
	vals := map[Property]float64{n1: v1, n2: v2}
	t, hasT := vals[Temperature]
	p, hasP := vals[Pressure]
	if h, ok := vals[Enthalpy]; ok && !hasT {
		t, hasT = h/g.cp, true
	}
	if s, ok := vals[Entropy]; ok {
		switch {
		case hasT && !hasP:
			p, hasP = gasP0*math.Exp((g.cp*math.Log(t/gasT0)-s)/g.r), true
		case hasP && !hasT:
			t, hasT = gasT0*math.Exp((s+g.r*math.Log(p/gasP0))/g.cp), true
		}
	}
	if !hasT || !hasP {
		return 0, 0, errGasPair
	}
	return t, p, nil
}

func (g idealGas) Props(out, n1 Property, v1 float64, n2 Property, v2 float64, fluid string) (float64, error) {
	t, p, err := g.resolve(n1, v1, n2, v2)
	if err != nil {
		return 0, err
	}
	switch out {
	case Temperature:
		return t, nil
	case Pressure:
		return p, nil
	case Density:
		return p / (g.r * t), nil
	case InternalEnergy:
		return (g.cp - g.r) * t, nil
	case Enthalpy:
		return g.cp * t, nil
	case Entropy:
		return g.cp*math.Log(t/gasT0) - g.r*math.Log(p/gasP0), nil
	case Quality:
		return -1, nil
	}
	return 0, errGasPair
}

func (g idealGas) Phase(n1 Property, v1 float64, n2 Property, v2 float64, fluid string) (Phase, error) {
	if _, _, err := g.resolve(n1, v1, n2, v2); err != nil {
		return PhaseUnknown, err
	}
	return PhaseSuperheatedVapor, nil
}

type recordingObserver struct {
	states    []string
	temps     []float64
	processes []string
}

func (o *recordingObserver) OnStateFixed(c *Cycle, s *State) {
	o.states = append(o.states, s.Name())
	o.temps = append(o.temps, s.T())
}

func (o *recordingObserver) OnProcessAdded(c *Cycle, p *Process) {
	o.processes = append(o.processes, p.Name())
}
