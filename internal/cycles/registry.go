package cycles

import (
	"fmt"
	"sort"

	"github.com/san-kum/rankine/internal/config"
	"github.com/san-kum/rankine/internal/thermo"
)

// Builder assembles and finalizes one cycle variant from a configuration.
type Builder func(cfg *config.Config, b thermo.Backend, obs ...thermo.Observer) (*thermo.Cycle, error)

type Registry struct {
	builders map[string]Builder
}

func NewRegistry() *Registry {
	r := &Registry{
		builders: make(map[string]Builder),
	}

	r.builders["ideal"] = func(cfg *config.Config, b thermo.Backend, obs ...thermo.Observer) (*thermo.Cycle, error) {
		c := *cfg
		c.Superheat = false
		return Rankine("Ideal Rankine", &c, b, obs...)
	}
	r.builders["superheat"] = func(cfg *config.Config, b thermo.Backend, obs ...thermo.Observer) (*thermo.Cycle, error) {
		c := *cfg
		c.Superheat = true
		return Rankine("Superheated Rankine", &c, b, obs...)
	}
	r.builders["reheat"] = func(cfg *config.Config, b thermo.Backend, obs ...thermo.Observer) (*thermo.Cycle, error) {
		return Reheat("Reheat Rankine", cfg, b, obs...)
	}

	return r
}

func (r *Registry) Get(name string) (Builder, error) {
	fn, ok := r.builders[name]
	if !ok {
		return nil, thermo.Configf("cycle", "unknown cycle: %s", name)
	}
	return fn, nil
}

// Build runs the builder named by cfg.Cycle.
func (r *Registry) Build(cfg *config.Config, b thermo.Backend, obs ...thermo.Observer) (*thermo.Cycle, error) {
	fn, err := r.Get(cfg.Cycle)
	if err != nil {
		return nil, err
	}
	return fn(cfg, b, obs...)
}

// Plant builds the power cycle named by cfg.Cycle, drives it with the
// geothermal loop and returns the plant results.
func (r *Registry) Plant(cfg *config.Config, b thermo.Backend, obs ...thermo.Observer) (*thermo.Plant, error) {
	power, err := r.Build(cfg, b, obs...)
	if err != nil {
		return nil, fmt.Errorf("power cycle: %w", err)
	}
	duty := power.Mdot() * power.Totals().HeatIn
	source, err := Geothermal(cfg, b, duty, obs...)
	if err != nil {
		return nil, fmt.Errorf("heat source: %w", err)
	}
	return thermo.NewPlant(power, source, cfg.CoolEff)
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
