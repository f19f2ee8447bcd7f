package fluid

import (
	"math"

	"github.com/san-kum/rankine/internal/thermo"
)

// Water evaluates ordinary water and steam with IAPWS-IF97 regions 1, 2
// and 4. Inputs and outputs are SI; the near-critical region 3 and the
// high-temperature region 5 are reported as ErrOutOfRange.
type Water struct{}

// point is a resolved state in IF97 units.
type point struct {
	t, p, v, u, h, s, x float64
	phase               thermo.Phase
}

// input is one independent property in IF97 units. Density arrives as
// specific volume.
type input struct {
	name  thermo.Property
	value float64
}

func (pt point) get(name thermo.Property) float64 {
	switch name {
	case thermo.Temperature:
		return pt.t
	case thermo.Pressure:
		return pt.p
	case thermo.Volume:
		return pt.v
	case thermo.InternalEnergy:
		return pt.u
	case thermo.Enthalpy:
		return pt.h
	case thermo.Entropy:
		return pt.s
	case thermo.Quality:
		return pt.x
	}
	return math.NaN()
}

func (pt point) si(name thermo.Property) (float64, error) {
	switch name {
	case thermo.Temperature:
		return pt.t, nil
	case thermo.Pressure:
		return pt.p * 1e6, nil
	case thermo.Density:
		return 1 / pt.v, nil
	case thermo.Volume:
		return pt.v, nil
	case thermo.InternalEnergy:
		return pt.u * 1e3, nil
	case thermo.Enthalpy:
		return pt.h * 1e3, nil
	case thermo.Entropy:
		return pt.s * 1e3, nil
	case thermo.Quality:
		return pt.x, nil
	}
	return 0, thermo.Configf("", "unknown output property %q", name)
}

func pick(pr props, name thermo.Property) float64 {
	switch name {
	case thermo.Temperature:
		return pr.t
	case thermo.Pressure:
		return pr.p
	case thermo.Volume:
		return pr.v
	case thermo.InternalEnergy:
		return pr.u
	case thermo.Enthalpy:
		return pr.h
	case thermo.Entropy:
		return pr.s
	}
	return math.NaN()
}

func toIF97(name thermo.Property, v float64) (input, error) {
	switch name {
	case thermo.Temperature, thermo.Quality:
		if name == thermo.Quality && (v < 0 || v > 1) {
			return input{}, thermo.Configf("", "quality must lie in [0, 1], got %g", v)
		}
		return input{name, v}, nil
	case thermo.Pressure:
		return input{name, v / 1e6}, nil
	case thermo.Density:
		if v <= 0 {
			return input{}, thermo.Configf("", "density must be positive, got %g", v)
		}
		return input{thermo.Volume, 1 / v}, nil
	case thermo.Volume:
		if v <= 0 {
			return input{}, thermo.Configf("", "specific volume must be positive, got %g", v)
		}
		return input{name, v}, nil
	case thermo.InternalEnergy, thermo.Enthalpy, thermo.Entropy:
		return input{name, v / 1e3}, nil
	}
	return input{}, thermo.Configf("", "unknown input property %q", name)
}

// Props returns out for the state fixed by the two inputs. Input properties
// are echoed back unchanged.
func (w Water) Props(out, name1 thermo.Property, value1 float64, name2 thermo.Property, value2 float64) (float64, error) {
	if out == name1 {
		return value1, nil
	}
	if out == name2 {
		return value2, nil
	}
	pt, err := w.resolve(name1, value1, name2, value2)
	if err != nil {
		return 0, err
	}
	return pt.si(out)
}

// Phase classifies the state fixed by the two inputs.
func (w Water) Phase(name1 thermo.Property, value1 float64, name2 thermo.Property, value2 float64) (thermo.Phase, error) {
	pt, err := w.resolve(name1, value1, name2, value2)
	if err != nil {
		return thermo.PhaseUnknown, err
	}
	return pt.phase, nil
}

// Critical returns the IF97 critical point in K and Pa.
func (Water) Critical() (float64, float64) {
	return tCrit, pCrit * 1e6
}

func (Water) resolve(name1 thermo.Property, value1 float64, name2 thermo.Property, value2 float64) (point, error) {
	a, err := toIF97(name1, value1)
	if err != nil {
		return point{}, err
	}
	b, err := toIF97(name2, value2)
	if err != nil {
		return point{}, err
	}
	if a.name == b.name {
		return point{}, thermo.Configf("", "property %s given twice", a.name)
	}

	if b.name == thermo.Pressure || (b.name == thermo.Temperature && a.name != thermo.Pressure) {
		a, b = b, a
	}
	switch a.name {
	case thermo.Pressure:
		if a.value <= 0 || a.value > pMax {
			return point{}, ErrOutOfRange
		}
		if b.name == thermo.Temperature {
			return fromTP(b.value, a.value)
		}
		return fromP(a.value, b)
	case thermo.Temperature:
		if a.value < tMin || a.value > tMax {
			return point{}, ErrOutOfRange
		}
		return fromT(a.value, b)
	}
	return fromPair(a, b)
}

func classify(t, p float64) thermo.Phase {
	switch {
	case t >= tCrit && p >= pCrit:
		return thermo.PhaseSupercritical
	case t >= tCrit:
		return thermo.PhaseSuperheatedVapor
	case p >= pCrit:
		return thermo.PhaseSubcooledLiquid
	case p > psat(t):
		return thermo.PhaseSubcooledLiquid
	}
	return thermo.PhaseSuperheatedVapor
}

func single(pr props) point {
	return point{t: pr.t, p: pr.p, v: pr.v, u: pr.u, h: pr.h, s: pr.s, x: -1, phase: classify(pr.t, pr.p)}
}

func mix(l, g props, x float64) point {
	phase := thermo.PhaseTwoPhase
	switch x {
	case 0:
		phase = thermo.PhaseSaturatedLiquid
	case 1:
		phase = thermo.PhaseSaturatedVapor
	}
	return point{
		t:     l.t,
		p:     l.p,
		v:     l.v + x*(g.v-l.v),
		u:     l.u + x*(g.u-l.u),
		h:     l.h + x*(g.h-l.h),
		s:     l.s + x*(g.s-l.s),
		x:     x,
		phase: phase,
	}
}

func fromTP(t, p float64) (point, error) {
	if t >= tMin && t < tCrit {
		if ps := psat(t); math.Abs(p-ps) <= 1e-9*ps {
			return point{}, thermo.Configf("", "temperature %g K and pressure %g Pa are dependent on the saturation line", t, p*1e6)
		}
	}
	pr, err := evaluate(t, p)
	if err != nil {
		return point{}, err
	}
	return single(pr), nil
}

func fromP(p float64, b input) (point, error) {
	if b.name == thermo.Quality {
		l, g, err := saturation(p)
		if err != nil {
			return point{}, err
		}
		return mix(l, g, b.value), nil
	}

	if p < pSatMin {
		return solveT(p, b, tMin, tMax, region2)
	}
	if p <= pSatMax {
		l, g, err := saturation(p)
		if err != nil {
			return point{}, err
		}
		fl, fg := pick(l, b.name), pick(g, b.name)
		switch {
		case b.value >= fl && b.value <= fg:
			return mix(l, g, (b.value-fl)/(fg-fl)), nil
		case b.value < fl:
			return solveT(p, b, tMin, l.t, region1)
		default:
			return solveT(p, b, g.t, tMax, region2)
		}
	}

	// Above the tabulated dome: compressed liquid up to 623.15 K, vapor
	// beyond the B23 line. The gap between them is region 3.
	if pt, err := solveT(p, b, tMin, t13, region1); err == nil {
		return pt, nil
	}
	return solveT(p, b, tB23(p), tMax, region2)
}

// fromT prefers the two-phase solution when the target lies between the
// saturated ends, then tries the liquid side, then the vapor side.
func fromT(t float64, b input) (point, error) {
	if b.name == thermo.Quality {
		l, g, err := saturationAt(t)
		if err != nil {
			return point{}, err
		}
		return mix(l, g, b.value), nil
	}

	if t > t13 {
		return solveP(t, b, pFloor, math.Min(pB23(t), pMax), region2)
	}

	ps := psat(t)
	l, g := region1(t, ps), region2(t, ps)
	fl, fg := pick(l, b.name), pick(g, b.name)
	lo, hi := math.Min(fl, fg), math.Max(fl, fg)
	if b.value >= lo && b.value <= hi && fl != fg {
		return mix(l, g, (b.value-fl)/(fg-fl)), nil
	}
	if pt, err := solveP(t, b, ps, pMax, region1); err == nil {
		return pt, nil
	}
	return solveP(t, b, pFloor, ps, region2)
}

// fromPair handles inputs that include neither temperature nor pressure by
// searching pressure on a log grid, then refining the first bracket found.
func fromPair(a, b input) (point, error) {
	if b.name == thermo.Quality {
		a, b = b, a
	}

	lo, hi := math.Log(pFloor), math.Log(pMax)
	if a.name == thermo.Quality {
		lo, hi = math.Log(pSatMin), math.Log(pSatMax)
	}
	residual := func(x float64) float64 {
		pt, err := fromP(math.Exp(x), a)
		if err != nil {
			return math.NaN()
		}
		return pt.get(b.name) - b.value
	}

	const steps = 48
	prevX, prevF := lo, residual(lo)
	for i := 1; i <= steps; i++ {
		x := lo + (hi-lo)*float64(i)/steps
		f := residual(x)
		if !math.IsNaN(prevF) && !math.IsNaN(f) && (prevF == 0 || math.Signbit(prevF) != math.Signbit(f)) {
			root, err := brent(residual, prevX, x, 1e-13)
			if err != nil {
				return point{}, err
			}
			return fromP(math.Exp(root), a)
		}
		prevX, prevF = x, f
	}
	return point{}, ErrOutOfRange
}

func solveT(p float64, b input, lo, hi float64, eq func(t, p float64) props) (point, error) {
	t, err := brent(func(t float64) float64 { return pick(eq(t, p), b.name) - b.value }, lo, hi, 1e-10)
	if err != nil {
		return point{}, err
	}
	return single(eq(t, p)), nil
}

// solveP searches ln p so that low-pressure vapor converges as quickly as
// compressed liquid.
func solveP(t float64, b input, lo, hi float64, eq func(t, p float64) props) (point, error) {
	x, err := brent(func(x float64) float64 { return pick(eq(t, math.Exp(x)), b.name) - b.value }, math.Log(lo), math.Log(hi), 1e-13)
	if err != nil {
		return point{}, err
	}
	return single(eq(t, math.Exp(x))), nil
}
