package thermo

import (
	"errors"
	"math"
)

// State is one equilibrium point of a fluid stream.
//
// A State starts unfixed and becomes fixed exactly once through Fix, which
// populates all core properties atomically. Getters on an unfixed state
// return zero values.
type State struct {
	name    string
	fluid   string
	backend Backend
	cycle   *Cycle // owning cycle, used only for dead-state lookup
	dead    bool
	fixed   bool

	t, p, d, u, h, s, x float64
	phase               Phase
	ef                  float64
}

// NewState returns an unfixed state that belongs to no cycle.
func NewState(name, fluid string, b Backend) *State {
	return &State{name: name, fluid: fluid, backend: b, x: -1}
}

func (s *State) Name() string  { return s.name }
func (s *State) Fluid() string { return s.fluid }
func (s *State) Fixed() bool   { return s.fixed }
func (s *State) Dead() bool    { return s.dead }
func (s *State) String() string {
	return s.name
}

func (s *State) T() float64 { return s.t }
func (s *State) P() float64 { return s.p }
func (s *State) D() float64 { return s.d }
func (s *State) U() float64 { return s.u }
func (s *State) H() float64 { return s.h }
func (s *State) S() float64 { return s.s }

// V is the specific volume, the reciprocal of density.
func (s *State) V() float64 {
	if s.d == 0 {
		return 0
	}
	return 1 / s.d
}

// X returns the raw quality: a value in [0, 1] inside the dome, -1 outside.
func (s *State) X() float64 { return s.x }

// Quality returns the vapor quality and whether it is meaningful.
func (s *State) Quality() (float64, bool) {
	if !s.phase.InDome() {
		return 0, false
	}
	return s.x, true
}

func (s *State) Phase() Phase { return s.phase }

// Ef is the flow exergy relative to the owning cycle's dead state.
func (s *State) Ef() float64 { return s.ef }

// Get returns a fixed property by name, accepting the same aliases as Fix.
func (s *State) Get(p Property) (float64, error) {
	if !s.fixed {
		return 0, Configf(s.name, "state is not fixed")
	}
	switch p {
	case Volume, "v":
		return s.V(), nil
	}
	n, _, err := normalize(p, 1)
	if err != nil {
		return 0, err
	}
	switch n {
	case Temperature:
		return s.t, nil
	case Pressure:
		return s.p, nil
	case Density:
		return s.d, nil
	case InternalEnergy:
		return s.u, nil
	case Enthalpy:
		return s.h, nil
	case Entropy:
		return s.s, nil
	}
	return s.x, nil
}

// Fix resolves the full state from two independent properties. Volume is
// passed to the backend as density and "x" as quality. On any error the
// state is left unfixed.
func (s *State) Fix(name1 Property, value1 float64, name2 Property, value2 float64) error {
	_, err := s.fix(name1, value1, name2, value2, nil, 0)
	return err
}

// fix resolves the state and, when floor is given, applies clampAbove
// before the state becomes visible to the cycle and its observers.
func (s *State) fix(name1 Property, value1 float64, name2 Property, value2 float64, floor *State, margin float64) (bool, error) {
	if s.fixed {
		return false, Configf(s.name, "state is already fixed")
	}
	if s.backend == nil {
		return false, Configf(s.name, "no property backend")
	}
	n1, v1, err := normalize(name1, value1)
	if err != nil {
		return false, s.subject(err)
	}
	n2, v2, err := normalize(name2, value2)
	if err != nil {
		return false, s.subject(err)
	}
	if err := checkIndependent(n1, v1, n2, v2); err != nil {
		return false, s.subject(err)
	}

	var vals [len(coreProperties)]float64
	for i, out := range coreProperties {
		switch out {
		case n1:
			vals[i] = v1
		case n2:
			vals[i] = v2
		default:
			v, err := s.backend.Props(out, n1, v1, n2, v2, s.fluid)
			if err != nil {
				return false, s.unresolved(err, n1, v1, n2, v2)
			}
			vals[i] = v
		}
	}
	phase, err := s.backend.Phase(n1, v1, n2, v2, s.fluid)
	if err != nil {
		return false, s.unresolved(err, n1, v1, n2, v2)
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false, s.unresolved(errors.New("backend returned a non-finite value"), n1, v1, n2, v2)
		}
	}
	if vals[2] <= 0 {
		return false, s.unresolved(errors.New("backend returned a non-positive density"), n1, v1, n2, v2)
	}

	s.t, s.p, s.d, s.u, s.h, s.s, s.x = vals[0], vals[1], vals[2], vals[3], vals[4], vals[5], vals[6]
	s.phase = phase
	if !phase.InDome() {
		s.x = -1
	}
	s.fixed = true
	clamped := floor != nil && s.clampAbove(floor, margin)

	if s.cycle != nil {
		s.ef = s.cycle.flowExergy(s)
		s.cycle.register(s)
		s.cycle.notifyState(s)
	}
	return clamped, nil
}

// clampAbove raises temperature and entropy to floor*(1+margin) when they
// fall below the floor values. It is a numerical-noise correction for
// near-incompressible liquids, not a physical model, and only runs while
// the state is being fixed.
func (s *State) clampAbove(floor *State, margin float64) bool {
	if !floor.fixed {
		return false
	}
	adjusted := false
	if s.t < floor.t {
		s.t = floor.t * (1 + margin)
		adjusted = true
	}
	if s.s < floor.s {
		s.s = floor.s + math.Abs(floor.s)*margin
		adjusted = true
	}
	return adjusted
}

func (s *State) subject(err error) error {
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return &ConfigurationError{Subject: s.name, Reason: ce.Reason, Err: ce.Err}
	}
	return err
}

func (s *State) unresolved(err error, n1 Property, v1 float64, n2 Property, v2 float64) error {
	if errors.Is(err, ErrConfiguration) {
		return s.subject(err)
	}
	return &UnresolvedStateError{
		State:   s.name,
		Fluid:   s.fluid,
		Name1:   n1,
		Value1:  v1,
		Name2:   n2,
		Value2:  v2,
		Wrapped: err,
	}
}

// checkIndependent rejects pairs that cannot fix a state on their own.
func checkIndependent(n1 Property, v1 float64, n2 Property, v2 float64) error {
	if math.IsNaN(v1) || math.IsInf(v1, 0) || math.IsNaN(v2) || math.IsInf(v2, 0) {
		return Configf("", "non-finite property value")
	}
	if n1 == n2 {
		return Configf("", "property %s given twice", n1)
	}
	q, other, hasQ := v1, n2, n1 == Quality
	if n2 == Quality {
		q, other, hasQ = v2, n1, true
	}
	if !hasQ {
		return nil
	}
	if q < 0 || q > 1 {
		return Configf("", "quality %g outside [0, 1]", q)
	}
	// Interior two-phase points are fixed from pressure and quality;
	// temperature with quality is reserved for the saturation boundaries.
	if other == Temperature && q > 0 && q < 1 {
		return Configf("", "temperature and quality %g are dependent inside the two-phase region", q)
	}
	return nil
}
