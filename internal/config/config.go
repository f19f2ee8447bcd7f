package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rankine/internal/thermo"
)

// All values are SI: Pa, K, kg/s.
const (
	DefaultCycle   = "ideal"
	DefaultFluid   = "Water"
	DefaultPHi     = 8e6
	DefaultPLo     = 20e3
	DefaultEff     = 1.0
	DefaultMdot    = 1.0
	DefaultCoolEff = 1.0
	DefaultDeadT   = 298.15
	DefaultDeadP   = 101300.0
	DefaultBrine   = "MNA-20"
	DefaultTGround = 393.15
	DefaultPGround = 0.5e6
)

type Config struct {
	Cycle     string          `yaml:"cycle"`
	Fluid     string          `yaml:"fluid"`
	PHi       float64         `yaml:"p_hi"`
	PLo       float64         `yaml:"p_lo"`
	PMid      float64         `yaml:"p_mid"`
	THi       float64         `yaml:"T_hi"`
	TMid      float64         `yaml:"T_mid"`
	TLo       float64         `yaml:"T_lo"`
	TurbEff   float64         `yaml:"turb_eff"`
	PumpEff   float64         `yaml:"pump_eff"`
	Superheat bool            `yaml:"superheat"`
	CycleMdot float64         `yaml:"cycle_mdot"`
	CoolEff   float64         `yaml:"cool_eff"`
	DeadState DeadStateConfig `yaml:"dead_state"`
	Source    SourceConfig    `yaml:"source"`
}

type DeadStateConfig struct {
	T float64 `yaml:"T"`
	P float64 `yaml:"p"`
}

// SourceConfig describes the geothermal brine loop. A zero Mdot sizes the
// brine flow to the boiler duty.
type SourceConfig struct {
	Brine   string  `yaml:"brine"`
	Mdot    float64 `yaml:"mdot"`
	TGround float64 `yaml:"T_ground"`
	PGround float64 `yaml:"p_ground"`
}

func DefaultConfig() *Config {
	return &Config{
		Cycle:     DefaultCycle,
		Fluid:     DefaultFluid,
		PHi:       DefaultPHi,
		PLo:       DefaultPLo,
		TurbEff:   DefaultEff,
		PumpEff:   DefaultEff,
		CycleMdot: DefaultMdot,
		CoolEff:   DefaultCoolEff,
		DeadState: DeadStateConfig{
			T: DefaultDeadT,
			P: DefaultDeadP,
		},
		Source: SourceConfig{
			Brine:   DefaultBrine,
			TGround: DefaultTGround,
			PGround: DefaultPGround,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Reference returns the dead state of the configuration.
func (c *Config) Reference() thermo.Reference {
	return thermo.Reference{T: c.DeadState.T, P: c.DeadState.P}
}

// Validate checks the options a cycle builder relies on. Boundary
// conditions may be given as a pressure, a temperature, or both.
func (c *Config) Validate() error {
	if c.Fluid == "" {
		return thermo.Configf("fluid", "a working fluid is required")
	}
	if c.PHi <= 0 && c.THi <= 0 {
		return thermo.Configf("p_hi", "neither p_hi nor T_hi is given")
	}
	if c.PLo <= 0 && c.TLo <= 0 {
		return thermo.Configf("p_lo", "neither p_lo nor T_lo is given")
	}
	if c.PHi > 0 && c.PLo > 0 && c.PHi <= c.PLo {
		return thermo.Configf("p_hi", "p_hi %g Pa must exceed p_lo %g Pa", c.PHi, c.PLo)
	}
	if c.Superheat && (c.PHi <= 0 || c.THi <= 0) {
		return thermo.Configf("superheat", "superheat needs both p_hi and T_hi")
	}
	if err := checkFraction("turb_eff", c.TurbEff); err != nil {
		return err
	}
	if err := checkFraction("pump_eff", c.PumpEff); err != nil {
		return err
	}
	if err := checkFraction("cool_eff", c.CoolEff); err != nil {
		return err
	}
	if c.CycleMdot <= 0 {
		return thermo.Configf("cycle_mdot", "mass flow must be positive, got %g", c.CycleMdot)
	}
	if c.DeadState.T <= 0 || c.DeadState.P <= 0 {
		return thermo.Configf("dead_state", "dead state needs positive T and p")
	}
	if c.Cycle == "reheat" {
		if c.PMid <= 0 || c.TMid <= 0 {
			return thermo.Configf("p_mid", "reheat needs p_mid and T_mid")
		}
		if (c.PHi > 0 && c.PMid >= c.PHi) || (c.PLo > 0 && c.PMid <= c.PLo) {
			return thermo.Configf("p_mid", "p_mid %g Pa must lie between p_lo and p_hi", c.PMid)
		}
	}
	return nil
}

// ValidateSource checks the geothermal loop options used by plant runs.
func (c *Config) ValidateSource() error {
	if c.Source.Brine == "" {
		return thermo.Configf("source.brine", "a brine is required")
	}
	if c.Source.Mdot < 0 {
		return thermo.Configf("source.mdot", "mass flow must not be negative, got %g", c.Source.Mdot)
	}
	if c.Source.TGround <= 0 || c.Source.PGround <= 0 {
		return thermo.Configf("source", "T_ground and p_ground must be positive")
	}
	return nil
}

func checkFraction(field string, v float64) error {
	if !(v > 0 && v <= 1) {
		return thermo.Configf(field, "must be in (0, 1], got %g", v)
	}
	return nil
}
