package fluid

import (
	"sync"
	"sync/atomic"

	"github.com/san-kum/rankine/internal/thermo"
)

type propsKey struct {
	fluid  string
	out    thermo.Property
	name1  thermo.Property
	value1 float64
	name2  thermo.Property
	value2 float64
}

type phaseKey struct {
	fluid  string
	name1  thermo.Property
	value1 float64
	name2  thermo.Property
	value2 float64
}

// Memo caches successful lookups of another backend. Sweeps re-fix the same
// dead state and saturation points at every grid point, so most of those
// calls become map hits. Errors are never cached.
type Memo struct {
	next thermo.Backend

	mu     sync.RWMutex
	props  map[propsKey]float64
	phases map[phaseKey]thermo.Phase

	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewMemo(next thermo.Backend) *Memo {
	return &Memo{
		next:   next,
		props:  make(map[propsKey]float64),
		phases: make(map[phaseKey]thermo.Phase),
	}
}

// Default returns a memoized registry of the built-in fluids.
func Default() *Memo {
	return NewMemo(NewRegistry())
}

func (m *Memo) Props(out, name1 thermo.Property, value1 float64, name2 thermo.Property, value2 float64, fluid string) (float64, error) {
	key := propsKey{fluid, out, name1, value1, name2, value2}
	m.mu.RLock()
	v, ok := m.props[key]
	m.mu.RUnlock()
	if ok {
		m.hits.Add(1)
		return v, nil
	}

	m.misses.Add(1)
	v, err := m.next.Props(out, name1, value1, name2, value2, fluid)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	m.props[key] = v
	m.mu.Unlock()
	return v, nil
}

func (m *Memo) Phase(name1 thermo.Property, value1 float64, name2 thermo.Property, value2 float64, fluid string) (thermo.Phase, error) {
	key := phaseKey{fluid, name1, value1, name2, value2}
	m.mu.RLock()
	ph, ok := m.phases[key]
	m.mu.RUnlock()
	if ok {
		m.hits.Add(1)
		return ph, nil
	}

	m.misses.Add(1)
	ph, err := m.next.Phase(name1, value1, name2, value2, fluid)
	if err != nil {
		return thermo.PhaseUnknown, err
	}
	m.mu.Lock()
	m.phases[key] = ph
	m.mu.Unlock()
	return ph, nil
}

func (m *Memo) Critical(fluid string) (float64, float64, error) {
	c, ok := m.next.(thermo.CriticalPointer)
	if !ok {
		return 0, 0, thermo.Configf(fluid, "backend does not report critical points")
	}
	return c.Critical(fluid)
}

// Stats reports cache hits and misses since construction.
func (m *Memo) Stats() (hits, misses uint64) {
	return m.hits.Load(), m.misses.Load()
}

// Fluids lists the fluids of the wrapped registry, if it is one.
func (m *Memo) Fluids() []string {
	if r, ok := m.next.(*Registry); ok {
		return r.ListFluids()
	}
	return nil
}

func (m *Memo) Aliases(fluid string) []string {
	if r, ok := m.next.(*Registry); ok {
		return r.Aliases(fluid)
	}
	return nil
}
