package thermo

import (
	"math"

	"github.com/rs/xid"
)

// Reference holds the ambient (dead state) conditions of a cycle.
type Reference struct {
	T float64 // K
	P float64 // Pa
}

// DefaultReference is 25 degC and 101.3 kPa.
func DefaultReference() Reference {
	return Reference{T: 298.15, P: 101300}
}

// Observer is notified as a cycle is assembled.
type Observer interface {
	OnStateFixed(c *Cycle, s *State)
	OnProcessAdded(c *Cycle, p *Process)
}

// Totals are the cycle-level energy and exergy results, per unit mass of
// working fluid.
type Totals struct {
	WorkNet          float64
	HeatNet          float64
	HeatIn           float64
	TurbineWork      float64
	PumpWork         float64
	EnergyEfficiency float64
	BackWorkRatio    float64
	ExergyEfficiency float64
	ExergyIn         float64
	ExergyOut        float64
	ExergyDestroyed  float64
	DeltaEf          float64
}

// Cycle owns the ordered states and processes of one run.
type Cycle struct {
	id    string
	name  string
	mdot  float64 // kg/s
	fluid string

	backend   Backend
	ref       Reference
	dead      *State
	states    []*State
	processes []*Process
	observers []Observer

	finalized bool
	totals    Totals
}

// NewCycle fixes the dead state at ref and returns an empty cycle.
func NewCycle(name, fluid string, b Backend, ref Reference) (*Cycle, error) {
	if fluid == "" {
		return nil, Configf(name, "fluid is required")
	}
	if b == nil {
		return nil, Configf(name, "no property backend")
	}
	if ref.T <= 0 || ref.P <= 0 {
		return nil, Configf(name, "dead state needs positive T and p, got T=%g p=%g", ref.T, ref.P)
	}

	dead := NewState("Dead State", fluid, b)
	dead.dead = true
	if err := dead.Fix(Temperature, ref.T, Pressure, ref.P); err != nil {
		return nil, err
	}

	return &Cycle{
		id:        xid.New().String(),
		name:      name,
		mdot:      1.0,
		fluid:     fluid,
		backend:   b,
		ref:       ref,
		dead:      dead,
		states:    make([]*State, 0, 8),
		processes: make([]*Process, 0, 4),
		observers: make([]Observer, 0),
	}, nil
}

func (c *Cycle) ID() string           { return c.id }
func (c *Cycle) Name() string         { return c.name }
func (c *Cycle) Mdot() float64        { return c.mdot }
func (c *Cycle) Fluid() string        { return c.fluid }
func (c *Cycle) Backend() Backend     { return c.backend }
func (c *Cycle) Reference() Reference { return c.ref }
func (c *Cycle) Dead() *State         { return c.dead }
func (c *Cycle) Finalized() bool      { return c.finalized }

// SetMdot sets the mass flow in kg/s. Rates derived from a cycle are only
// consistent if the flow is fixed before Finalize.
func (c *Cycle) SetMdot(mdot float64) error {
	if c.finalized {
		return Configf(c.name, "cycle is already finalized")
	}
	if !(mdot > 0) || math.IsInf(mdot, 0) {
		return Configf(c.name, "mass flow must be positive, got %g", mdot)
	}
	c.mdot = mdot
	return nil
}

func (c *Cycle) AddObserver(o Observer) { c.observers = append(c.observers, o) }

// States returns the registered states in creation order.
func (c *Cycle) States() []*State {
	out := make([]*State, len(c.states))
	copy(out, c.states)
	return out
}

// Processes returns the registered processes in creation order.
func (c *Cycle) Processes() []*Process {
	out := make([]*Process, len(c.processes))
	copy(out, c.processes)
	return out
}

// State looks a registered state up by name.
func (c *Cycle) State(name string) (*State, bool) {
	for _, s := range c.states {
		if s.name == name {
			return s, true
		}
	}
	return nil, false
}

// Process looks a registered process up by name.
func (c *Cycle) Process(name string) (*Process, bool) {
	for _, p := range c.processes {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// NewState creates an unfixed state of the cycle's fluid and registers it.
func (c *Cycle) NewState(name string) *State {
	s := NewState(name, c.fluid, c.backend)
	s.cycle = c
	c.register(s)
	return s
}

// FixState creates, registers and fixes a state in one step.
func (c *Cycle) FixState(name string, name1 Property, value1 float64, name2 Property, value2 float64) (*State, error) {
	s := c.NewState(name)
	if err := s.Fix(name1, value1, name2, value2); err != nil {
		return nil, err
	}
	return s, nil
}

// FixStateAbove fixes a new state like FixState, then raises its
// temperature and entropy to floor*(1+margin) if either lies below the
// floor state. Observers see the corrected values. It reports whether the
// correction was applied.
func (c *Cycle) FixStateAbove(name string, name1 Property, value1 float64, name2 Property, value2 float64, floor *State, margin float64) (*State, bool, error) {
	if c.finalized {
		return nil, false, Configf(name, "cycle %q is already finalized", c.name)
	}
	if floor == nil || !floor.fixed {
		return nil, false, Configf(name, "floor state must be fixed")
	}
	s := c.NewState(name)
	clamped, err := s.fix(name1, value1, name2, value2, floor, margin)
	if err != nil {
		return nil, false, err
	}
	return s, clamped, nil
}

// AddProcess registers a process between two fixed states.
func (c *Cycle) AddProcess(name string, kind Kind, in, out *State, heat, work float64) (*Process, error) {
	if c.finalized {
		return nil, Configf(name, "cycle %q is already finalized", c.name)
	}
	if in == nil || out == nil {
		return nil, Configf(name, "process needs both an inflow and an outflow state")
	}
	if !in.fixed || !out.fixed {
		return nil, Configf(name, "process endpoints %q -> %q must be fixed", in.name, out.name)
	}
	if in.cycle != c || out.cycle != c {
		return nil, Configf(name, "process endpoints must belong to cycle %q", c.name)
	}

	p := &Process{
		name:  name,
		kind:  kind,
		in:    in,
		out:   out,
		heat:  heat,
		work:  work,
		exEff: 1.0,
	}
	p.deltaEf = (out.h - in.h) - c.dead.t*(out.s-in.s)
	c.processes = append(c.processes, p)

	for _, o := range c.observers {
		o.OnProcessAdded(c, p)
	}
	return p, nil
}

// Finalize runs the exergy accounting pass and computes the cycle totals.
// It must be called once, after every state is fixed.
func (c *Cycle) Finalize() (Totals, error) {
	if c.finalized {
		return c.totals, nil
	}
	for _, s := range c.states {
		if !s.fixed {
			return Totals{}, Configf(s.name, "state is registered but never fixed")
		}
	}

	deadT := c.dead.t
	var t Totals
	var boilerDeltaEf float64
	for _, p := range c.processes {
		p.accountExergy(deadT)

		switch p.kind {
		case KindTurbine:
			t.TurbineWork += p.work
		case KindPump:
			t.PumpWork += p.work
		case KindBoiler:
			t.HeatIn += p.heat
			boilerDeltaEf += p.deltaEf
		}
		t.WorkNet += p.work
		t.HeatNet += p.heat
		t.ExergyIn += p.exIn
		t.ExergyOut += p.exOut
		t.ExergyDestroyed += p.exD
		t.DeltaEf += p.deltaEf
	}

	if t.HeatIn != 0 {
		t.EnergyEfficiency = t.WorkNet / t.HeatIn
	}
	if t.TurbineWork != 0 {
		t.BackWorkRatio = -t.PumpWork / t.TurbineWork
	}
	if boilerDeltaEf != 0 {
		t.ExergyEfficiency = t.WorkNet / boilerDeltaEf
	}

	c.totals = t
	c.finalized = true
	return t, nil
}

// Totals returns the results of Finalize.
func (c *Cycle) Totals() Totals { return c.totals }

// flowExergy is ef = h - h0 - T0 (s - s0); zero for the dead state itself.
func (c *Cycle) flowExergy(s *State) float64 {
	if s.dead || s == c.dead {
		return 0
	}
	return s.h - c.dead.h - c.dead.t*(s.s-c.dead.s)
}

func (c *Cycle) register(s *State) {
	if s.dead || s.cycle != c {
		return
	}
	for _, existing := range c.states {
		if existing == s {
			return
		}
	}
	c.states = append(c.states, s)
}

func (c *Cycle) notifyState(s *State) {
	for _, o := range c.observers {
		o.OnStateFixed(c, s)
	}
}
