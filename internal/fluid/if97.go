package fluid

import "math"

// IAPWS-IF97 works in K, MPa, kJ/kg and kJ/(kg K). Everything in this file
// uses those units; water.go converts at the boundary.
const (
	rWater = 0.461526

	tCrit = 647.096
	pCrit = 22.064

	tMin = 273.15
	tMax = 1073.15
	pMax = 100.0

	// upper temperature of region 1 and of the tabulated saturation dome
	t13 = 623.15

	// lowest pressure accepted for vapor states
	pFloor = 1e-6
)

type term struct {
	i, j int
	n    float64
}

var region1Terms = []term{
	{0, -2, 0.14632971213167}, {0, -1, -0.84548187169114}, {0, 0, -0.37563603672040e1},
	{0, 1, 0.33855169168385e1}, {0, 2, -0.95791963387872}, {0, 3, 0.15772038513228},
	{0, 4, -0.16616417199501e-1}, {0, 5, 0.81214629983568e-3}, {1, -9, 0.28319080123804e-3},
	{1, -7, -0.60706301565874e-3}, {1, -1, -0.18990068218419e-1}, {1, 0, -0.32529748770505e-1},
	{1, 1, -0.21841717175414e-1}, {1, 3, -0.52838357969930e-4}, {2, -3, -0.47184321073267e-3},
	{2, 0, -0.30001780793026e-3}, {2, 1, 0.47661393906987e-4}, {2, 3, -0.44141845330846e-5},
	{2, 17, -0.72694996297594e-15}, {3, -4, -0.31679644845054e-4}, {3, 0, -0.28270797985312e-5},
	{3, 6, -0.85205128120103e-9}, {4, -5, -0.22425281908000e-5}, {4, -2, -0.65171222895601e-6},
	{4, 10, -0.14341729937924e-12}, {5, -8, -0.40516996860117e-6}, {8, -11, -0.12734301741641e-8},
	{8, -6, -0.17424871230634e-9}, {21, -29, -0.68762131295531e-18}, {23, -31, 0.14478307828521e-19},
	{29, -38, 0.26335781662795e-22}, {30, -39, -0.11947622640071e-22}, {31, -40, 0.18228094581404e-23},
	{32, -41, -0.93537087292458e-25},
}

// ideal-gas part of region 2; i is unused
var region2Ideal = []term{
	{0, 0, -0.96927686500217e1}, {0, 1, 0.10086655968018e2}, {0, -5, -0.56087911283020e-2},
	{0, -4, 0.71452738081455e-1}, {0, -3, -0.40710498223928}, {0, -2, 0.14240819171444e1},
	{0, -1, -0.43839511319450e1}, {0, 2, -0.28408632460772}, {0, 3, 0.21268463753307e-1},
}

var region2Residual = []term{
	{1, 0, -0.17731742473213e-2}, {1, 1, -0.17834862292358e-1}, {1, 2, -0.45996013696365e-1},
	{1, 3, -0.57581259083432e-1}, {1, 6, -0.50325278727930e-1}, {2, 1, -0.33032641670203e-4},
	{2, 2, -0.18948987516315e-3}, {2, 4, -0.39392777243355e-2}, {2, 7, -0.43797295650573e-1},
	{2, 36, -0.26674547914087e-4}, {3, 0, 0.20481737692309e-7}, {3, 1, 0.43870667284435e-6},
	{3, 3, -0.32277677238570e-4}, {3, 6, -0.15033924542148e-2}, {3, 35, -0.40668253562649e-1},
	{4, 1, -0.78847309559367e-9}, {4, 2, 0.12790717852285e-7}, {4, 3, 0.48225372718507e-6},
	{5, 7, 0.22922076337661e-5}, {6, 3, -0.16714766451061e-10}, {6, 16, -0.21171472321355e-2},
	{6, 35, -0.23895741934104e2}, {7, 0, -0.59059564324270e-17}, {7, 11, -0.12621808899101e-5},
	{7, 25, -0.38946842435739e-1}, {8, 8, 0.11256208587452e-10}, {8, 36, -0.82311340897998e1},
	{9, 13, 0.19809712802088e-7}, {10, 4, 0.10406965210174e-18}, {10, 10, -0.10234747095929e-12},
	{10, 14, -0.10018179379511e-8}, {16, 29, -0.80882908646985e-10}, {16, 50, 0.10693031879409},
	{18, 57, -0.33662250574171}, {20, 20, 0.89185845355421e-24}, {20, 35, 0.30629316876232e-12},
	{20, 48, -0.42002467698208e-5}, {21, 21, -0.59056029685639e-25}, {22, 53, 0.37826947613457e-5},
	{23, 39, -0.12768608934681e-14}, {24, 26, 0.73087610595061e-28}, {24, 40, 0.55414715350778e-16},
	{24, 58, -0.94369707241210e-6},
}

var region4N = [11]float64{
	0,
	0.11670521452767e4, -0.72421316703206e6, -0.17073846940092e2,
	0.12020824702470e5, -0.32325550322333e7, 0.14915108613530e2,
	-0.48232657361591e4, 0.40511340542057e6, -0.23855557567849,
	0.65017534844798e3,
}

var b23N = [6]float64{
	0,
	0.34805185628969e3, -0.11671859879975e1, 0.10192970039326e-2,
	0.57254459862746e3, 0.13918839778870e2,
}

// props is one single-phase point in IF97 units.
type props struct {
	t, p, v, u, h, s float64
}

func ipow(x float64, n int) float64 {
	return math.Pow(x, float64(n))
}

// region1 evaluates the compressed-liquid Gibbs equation.
func region1(t, p float64) props {
	pi := p / 16.53
	tau := 1386 / t
	a := 7.1 - pi
	b := tau - 1.222

	var g, gp, gt float64
	for _, c := range region1Terms {
		g += c.n * ipow(a, c.i) * ipow(b, c.j)
		gp -= c.n * float64(c.i) * ipow(a, c.i-1) * ipow(b, c.j)
		gt += c.n * ipow(a, c.i) * float64(c.j) * ipow(b, c.j-1)
	}

	rt := rWater * t
	return props{
		t: t,
		p: p,
		v: rt / p * pi * gp * 1e-3,
		u: rt * (tau*gt - pi*gp),
		h: rt * tau * gt,
		s: rWater * (tau*gt - g),
	}
}

// region2 evaluates the vapor Gibbs equation.
func region2(t, p float64) props {
	pi := p
	tau := 540 / t

	g0 := math.Log(pi)
	var g0t float64
	for _, c := range region2Ideal {
		g0 += c.n * ipow(tau, c.j)
		g0t += c.n * float64(c.j) * ipow(tau, c.j-1)
	}
	g0p := 1 / pi

	b := tau - 0.5
	var gr, grp, grt float64
	for _, c := range region2Residual {
		gr += c.n * ipow(pi, c.i) * ipow(b, c.j)
		grp += c.n * float64(c.i) * ipow(pi, c.i-1) * ipow(b, c.j)
		grt += c.n * ipow(pi, c.i) * float64(c.j) * ipow(b, c.j-1)
	}

	rt := rWater * t
	return props{
		t: t,
		p: p,
		v: rt / p * pi * (g0p + grp) * 1e-3,
		u: rt * (tau*(g0t+grt) - pi*(g0p+grp)),
		h: rt * tau * (g0t + grt),
		s: rWater * (tau*(g0t+grt) - (g0 + gr)),
	}
}

// psat is the region 4 saturation pressure in MPa.
func psat(t float64) float64 {
	n := region4N
	th := t + n[9]/(t-n[10])
	a := th*th + n[1]*th + n[2]
	b := n[3]*th*th + n[4]*th + n[5]
	c := n[6]*th*th + n[7]*th + n[8]
	return math.Pow(2*c/(-b+math.Sqrt(b*b-4*a*c)), 4)
}

// tsat is the region 4 saturation temperature in K.
func tsat(p float64) float64 {
	n := region4N
	beta := math.Pow(p, 0.25)
	e := beta*beta + n[3]*beta + n[6]
	f := n[1]*beta*beta + n[4]*beta + n[7]
	g := n[2]*beta*beta + n[5]*beta + n[8]
	d := 2 * g / (-f - math.Sqrt(f*f-4*e*g))
	return (n[10] + d - math.Sqrt((n[10]+d)*(n[10]+d)-4*(n[9]+n[10]*d))) / 2
}

// pB23 is the region 2/3 boundary pressure in MPa.
func pB23(t float64) float64 {
	return b23N[1] + b23N[2]*t + b23N[3]*t*t
}

// tB23 is the region 2/3 boundary temperature in K.
func tB23(p float64) float64 {
	return b23N[4] + math.Sqrt((p-b23N[5])/b23N[3])
}

var (
	pSatMin = psat(tMin)
	pSatMax = psat(t13)
)

// region picks the IF97 region for a single-phase (t, p) point. Region 3 and
// region 5 are not implemented and report ErrOutOfRange.
func region(t, p float64) (int, error) {
	if t < tMin || t > tMax || p <= 0 || p > pMax {
		return 0, ErrOutOfRange
	}
	if t <= t13 {
		if p >= psat(t) {
			return 1, nil
		}
		return 2, nil
	}
	if p <= pB23(t) {
		return 2, nil
	}
	return 0, ErrOutOfRange
}

func evaluate(t, p float64) (props, error) {
	r, err := region(t, p)
	if err != nil {
		return props{}, err
	}
	if r == 1 {
		return region1(t, p), nil
	}
	return region2(t, p), nil
}

// saturation returns the liquid and vapor ends of the dome at pressure p.
func saturation(p float64) (props, props, error) {
	if p < pSatMin || p > pSatMax {
		return props{}, props{}, ErrOutOfRange
	}
	t := tsat(p)
	return region1(t, p), region2(t, p), nil
}

// saturationAt returns the liquid and vapor ends of the dome at temperature t.
func saturationAt(t float64) (props, props, error) {
	if t < tMin || t > t13 {
		return props{}, props{}, ErrOutOfRange
	}
	p := psat(t)
	return region1(t, p), region2(t, p), nil
}
