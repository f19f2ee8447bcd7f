package config

import "sort"

func preset(apply func(c *Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

var Presets = map[string]map[string]*Config{
	"ideal": {
		"textbook": preset(func(c *Config) {
			c.PHi, c.PLo = 8e6, 20e3
		}),
		"small": preset(func(c *Config) {
			c.PHi, c.PLo = 2e6, 10e3
		}),
		"geothermal": preset(func(c *Config) {
			c.PHi, c.PLo = 0.15e6, 10e3
			c.TurbEff, c.PumpEff = 0.85, 0.6
			c.CoolEff = 0.8
			c.CycleMdot = 10
		}),
	},
	"superheat": {
		"textbook": preset(func(c *Config) {
			c.Cycle = "superheat"
			c.PHi, c.THi, c.PLo = 4e6, 673.15, 10e3
			c.Superheat = true
		}),
		"warm": preset(func(c *Config) {
			c.Cycle = "superheat"
			c.PHi, c.THi, c.PLo = 3e6, 673.15, 50e3
			c.Superheat = true
		}),
		"irreversible": preset(func(c *Config) {
			c.Cycle = "superheat"
			c.PHi, c.THi, c.PLo = 3.8e6, 653.15, 10e3
			c.Superheat = true
			c.TurbEff = 0.86
		}),
	},
	"reheat": {
		"textbook": preset(func(c *Config) {
			c.Cycle = "reheat"
			c.PHi, c.THi = 8e6, 713.15
			c.PMid, c.TMid = 1e6, 713.15
			c.PLo = 20e3
			c.Superheat = true
		}),
		"moderate": preset(func(c *Config) {
			c.Cycle = "reheat"
			c.PHi, c.THi = 4e6, 673.15
			c.PMid, c.TMid = 0.4e6, 673.15
			c.PLo = 10e3
			c.Superheat = true
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(cycle, name string) *Config {
	cyclePresets, ok := Presets[cycle]
	if !ok {
		return nil
	}
	cfg, ok := cyclePresets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(cycle string) []string {
	cyclePresets, ok := Presets[cycle]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(cyclePresets))
	for name := range cyclePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
