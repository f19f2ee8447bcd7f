package sweep

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/rankine/internal/config"
	"github.com/san-kum/rankine/internal/cycles"
	"github.com/san-kum/rankine/internal/thermo"
)

// Point is one evaluated (p_hi, p_lo) variant. Points whose cycle could not
// be built keep the error and a nil Cycle.
type Point struct {
	PHi   float64
	PLo   float64
	Cycle *thermo.Cycle
	Err   error
}

func (p Point) OK() bool { return p.Err == nil && p.Cycle != nil }

// Grid evaluates every combination of high and low pressure. Each variant
// builds its own cycle; only the backend is shared.
type Grid struct {
	PHi     []float64
	PLo     []float64
	Workers int
}

func NewGrid(pHi, pLo []float64) *Grid {
	return &Grid{PHi: pHi, PLo: pLo, Workers: runtime.NumCPU()}
}

// Run returns the points in row-major (p_hi, p_lo) order. Per-point failures
// are recorded on the point; only cancellation fails the sweep.
func (g *Grid) Run(ctx context.Context, base *config.Config, build cycles.Builder, b thermo.Backend) ([]Point, error) {
	if len(g.PHi) == 0 || len(g.PLo) == 0 {
		return nil, thermo.Configf("sweep", "both pressure ranges need at least one value")
	}

	points := make([]Point, len(g.PHi)*len(g.PLo))
	eg, ctx := errgroup.WithContext(ctx)
	workers := g.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	eg.SetLimit(workers)

	for i, pHi := range g.PHi {
		for j, pLo := range g.PLo {
			idx := i*len(g.PLo) + j
			pHi, pLo := pHi, pLo
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				cfg := *base
				cfg.PHi, cfg.PLo = pHi, pLo
				c, err := build(&cfg, b)
				points[idx] = Point{PHi: pHi, PLo: pLo, Cycle: c, Err: err}
				return nil
			})
		}
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi
	return out
}
