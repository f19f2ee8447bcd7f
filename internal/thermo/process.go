package thermo

// Kind selects the exergy allocation rule applied to a process.
type Kind int

const (
	KindTurbine Kind = iota
	KindPump
	KindBoiler
	KindCondenser
)

func (k Kind) String() string {
	switch k {
	case KindTurbine:
		return "turbine"
	case KindPump:
		return "pump"
	case KindBoiler:
		return "boiler"
	case KindCondenser:
		return "condenser"
	}
	return "unknown"
}

// Process is the energy transfer between two states of one cycle.
// Exergy fields stay zero until the owning cycle is finalized.
type Process struct {
	name string
	kind Kind
	in   *State
	out  *State
	heat float64
	work float64

	deltaEf float64
	exIn    float64
	exOut   float64
	exD     float64
	exEff   float64
}

func (p *Process) Name() string     { return p.name }
func (p *Process) Kind() Kind       { return p.kind }
func (p *Process) In() *State       { return p.in }
func (p *Process) Out() *State      { return p.out }
func (p *Process) Heat() float64    { return p.heat }
func (p *Process) Work() float64    { return p.work }
func (p *Process) DeltaEf() float64 { return p.deltaEf }

func (p *Process) ExergyIn() float64         { return p.exIn }
func (p *Process) ExergyOut() float64        { return p.exOut }
func (p *Process) ExergyDestroyed() float64  { return p.exD }
func (p *Process) ExergyEfficiency() float64 { return p.exEff }

// Balance is ex_in - ex_out - delta_ef - ex_d, zero for a consistent process.
func (p *Process) Balance() float64 {
	return p.exIn - p.exOut - p.deltaEf - p.exD
}

func (p *Process) String() string { return p.name }

// accountExergy applies the per-kind allocation: the boiler charges its
// whole flow-exergy rise as input, the condenser rejects its drop as output,
// turbines and pumps destroy T0*(s_out - s_in).
func (p *Process) accountExergy(deadT float64) {
	switch p.kind {
	case KindBoiler:
		p.exIn = p.deltaEf
		p.exOut = 0
		p.exD = 0
		p.exEff = 1.0
	case KindTurbine:
		p.exIn = 0
		p.exD = deadT * (p.out.s - p.in.s)
		p.exOut = p.work
		p.exEff = ratio(p.exOut, -p.deltaEf)
	case KindCondenser:
		p.exIn = 0
		p.exOut = -p.deltaEf
		p.exD = 0
		p.exEff = 1.0
	case KindPump:
		p.exIn = -p.work
		p.exOut = 0
		p.exD = deadT * (p.out.s - p.in.s)
		p.exEff = ratio(p.deltaEf, p.exIn)
	}
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
