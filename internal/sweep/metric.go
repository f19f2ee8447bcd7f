package sweep

import (
	"math"

	"github.com/san-kum/rankine/internal/thermo"
)

type Metric string

const (
	EnergyEfficiency Metric = "en_eff"
	ExergyEfficiency Metric = "ex_eff"
	WorkNet          Metric = "wnet"
	BackWorkRatio    Metric = "bwr"
)

var metrics = []Metric{EnergyEfficiency, ExergyEfficiency, WorkNet, BackWorkRatio}

func Metrics() []Metric {
	out := make([]Metric, len(metrics))
	copy(out, metrics)
	return out
}

func ParseMetric(name string) (Metric, error) {
	for _, m := range metrics {
		if string(m) == name {
			return m, nil
		}
	}
	return "", thermo.Configf("metric", "unknown metric %q", name)
}

func (m Metric) Value(t thermo.Totals) float64 {
	switch m {
	case EnergyEfficiency:
		return t.EnergyEfficiency
	case ExergyEfficiency:
		return t.ExergyEfficiency
	case WorkNet:
		return t.WorkNet
	case BackWorkRatio:
		return t.BackWorkRatio
	}
	return math.NaN()
}

// Maximize reports whether larger values are better. Only the back work
// ratio is minimized.
func (m Metric) Maximize() bool { return m != BackWorkRatio }

// Best returns the best successful point for m, or false when none
// succeeded.
func Best(points []Point, m Metric) (Point, bool) {
	var (
		best  Point
		found bool
		score float64
	)
	for _, p := range points {
		if !p.OK() {
			continue
		}
		v := m.Value(p.Cycle.Totals())
		if math.IsNaN(v) {
			continue
		}
		if !m.Maximize() {
			v = -v
		}
		if !found || v > score {
			best, score, found = p, v, true
		}
	}
	return best, found
}
