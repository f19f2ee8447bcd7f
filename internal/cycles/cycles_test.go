package cycles

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rankine/internal/config"
	"github.com/san-kum/rankine/internal/fluid"
	"github.com/san-kum/rankine/internal/thermo"
)

type eventLog struct {
	states    []string
	processes []string
}

func (l *eventLog) OnStateFixed(_ *thermo.Cycle, s *thermo.State) {
	l.states = append(l.states, s.Name())
}

func (l *eventLog) OnProcessAdded(_ *thermo.Cycle, p *thermo.Process) {
	l.processes = append(l.processes, p.Name())
}

func stateNames(c *thermo.Cycle) []string {
	names := make([]string, 0)
	for _, s := range c.States() {
		names = append(names, s.Name())
	}
	return names
}

var _ = Describe("Rankine cycles", func() {
	var (
		backend  thermo.Backend
		registry *Registry
	)

	BeforeEach(func() {
		backend = fluid.Default()
		registry = NewRegistry()
	})

	It("should list the registered cycles", func() {
		Expect(registry.List()).To(Equal([]string{"ideal", "reheat", "superheat"}))

		_, err := registry.Get("brayton")
		Expect(errors.Is(err, thermo.ErrConfiguration)).To(BeTrue())
	})

	Context("ideal", func() {
		It("should match the saturated reference cycle", func() {
			c, err := registry.Build(config.GetPreset("ideal", "textbook"), backend)
			Expect(err).ToNot(HaveOccurred())
			Expect(c.Finalized()).To(BeTrue())

			t := c.Totals()
			Expect(t.EnergyEfficiency).To(BeNumerically("~", 0.34495, 5e-4))
			Expect(t.BackWorkRatio).To(BeNumerically("~", 0.00933, 5e-5))
			Expect(t.WorkNet).To(BeNumerically("~", 862.07e3, 500))
			Expect(t.ExergyEfficiency).To(BeNumerically("~", 0.83346, 1e-3))
			Expect(t.HeatNet).To(BeNumerically("~", t.WorkNet, 1e-6))
		})

		It("should number states in creation order", func() {
			log := &eventLog{}
			c, err := registry.Build(config.DefaultConfig(), backend, log)
			Expect(err).ToNot(HaveOccurred())

			Expect(stateNames(c)).To(Equal([]string{"1", "2s", "2", "3", "4s", "4"}))
			Expect(log.states).To(Equal([]string{"1", "2s", "2", "3", "4s", "4"}))
			Expect(log.processes).To(Equal([]string{"Turbine", "Condenser", "Pump", "Boiler"}))
		})

		It("should close the loop on the turbine inlet", func() {
			c, err := registry.Build(config.DefaultConfig(), backend)
			Expect(err).ToNot(HaveOccurred())

			turbine, ok := c.Process("Turbine")
			Expect(ok).To(BeTrue())
			boiler, ok := c.Process("Boiler")
			Expect(ok).To(BeTrue())
			Expect(boiler.Out()).To(BeIdenticalTo(turbine.In()))

			x, ok := turbine.In().Quality()
			Expect(ok).To(BeTrue())
			Expect(x).To(Equal(1.0))
		})

		It("should keep every process balanced", func() {
			c, err := registry.Build(config.GetPreset("ideal", "geothermal"), backend)
			Expect(err).ToNot(HaveOccurred())

			for _, p := range c.Processes() {
				Expect(p.Balance()).To(BeNumerically("~", 0, 1e-6), p.Name())
			}
			Expect(c.Totals().WorkNet).To(BeNumerically("~", 343.645e3, 500))
			Expect(c.Totals().EnergyEfficiency).To(BeNumerically("~", 0.13740, 5e-4))
		})

		It("should ignore the superheat flag", func() {
			cfg := config.GetPreset("superheat", "textbook")
			c, err := registry.Get("ideal")
			Expect(err).ToNot(HaveOccurred())

			cyc, err := c(cfg, backend)
			Expect(err).ToNot(HaveOccurred())
			inlet, _ := cyc.State("1")
			Expect(inlet.Phase()).To(Equal(thermo.PhaseSaturatedVapor))
			Expect(cfg.Superheat).To(BeTrue())
		})

		It("should derive pressures from saturation temperatures", func() {
			cfg := config.DefaultConfig()
			cfg.PHi, cfg.THi = 0, 485.5345
			cfg.PLo, cfg.TLo = 0, 318.9575

			c, err := registry.Build(cfg, backend)
			Expect(err).ToNot(HaveOccurred())

			inlet, _ := c.State("1")
			Expect(inlet.P()).To(BeNumerically("~", 2e6, 2e3))
			Expect(c.Totals().WorkNet).To(BeNumerically("~", 789.71e3, 500))
		})

		It("should subcool the condenser outlet when T_lo is given", func() {
			cfg := config.DefaultConfig()
			cfg.TLo = 320

			c, err := registry.Build(cfg, backend)
			Expect(err).ToNot(HaveOccurred())

			s3, _ := c.State("3")
			Expect(s3.T()).To(BeNumerically("~", 320, 1e-9))
			Expect(s3.Phase()).To(Equal(thermo.PhaseSubcooledLiquid))
		})

		It("should report a turbine that exits superheated", func() {
			cfg := config.GetPreset("ideal", "textbook")
			cfg.TurbEff = 0.1

			_, err := registry.Build(cfg, backend)
			var ie *thermo.CycleInfeasibleError
			Expect(errors.As(err, &ie)).To(BeTrue())
			Expect(ie.Component).To(Equal("Turbine"))
			Expect(ie.State).To(Equal("2"))
		})

		It("should reject an invalid configuration", func() {
			cfg := config.DefaultConfig()
			cfg.PumpEff = 0

			_, err := registry.Build(cfg, backend)
			Expect(errors.Is(err, thermo.ErrConfiguration)).To(BeTrue())
		})

		It("should reject an unknown working fluid", func() {
			cfg := config.DefaultConfig()
			cfg.Fluid = "Mercury"

			_, err := registry.Build(cfg, backend)
			Expect(errors.Is(err, thermo.ErrConfiguration)).To(BeTrue())
			Expect(errors.Is(err, fluid.ErrUnsupportedFluid)).To(BeTrue())
		})
	})

	Context("superheat", func() {
		DescribeTable("should match the reference cycles",
			func(preset string, en, wnet float64) {
				c, err := registry.Build(config.GetPreset("superheat", preset), backend)
				Expect(err).ToNot(HaveOccurred())
				Expect(c.Totals().EnergyEfficiency).To(BeNumerically("~", en, 5e-4))
				Expect(c.Totals().WorkNet).To(BeNumerically("~", wnet, 500))
			},
			Entry("4 MPa, 400 C, 10 kPa", "textbook", 0.35311, 1065.88e3),
			Entry("3 MPa, 400 C, 50 kPa", "warm", 0.28417, 820.71e3),
		)

		It("should apply the turbine efficiency", func() {
			c, err := registry.Build(config.GetPreset("superheat", "irreversible"), backend)
			Expect(err).ToNot(HaveOccurred())

			turbine, _ := c.Process("Turbine")
			Expect(turbine.Work()).To(BeNumerically("~", 894.46e3, 500))
			Expect(turbine.ExergyDestroyed()).To(BeNumerically(">", 0))

			inlet, _ := c.State("1")
			Expect(inlet.Phase()).To(Equal(thermo.PhaseSuperheatedVapor))
		})

		It("should reject a turbine inlet below the saturation temperature", func() {
			cfg := config.GetPreset("superheat", "textbook")
			cfg.THi = 450

			_, err := registry.Build(cfg, backend)
			Expect(errors.Is(err, thermo.ErrCycleInfeasible)).To(BeTrue())
			var ie *thermo.CycleInfeasibleError
			Expect(errors.As(err, &ie)).To(BeTrue())
			Expect(ie.Component).To(Equal("Turbine"))
			Expect(ie.State).To(Equal("1"))
			Expect(ie.Reason).To(ContainSubstring("523.5"))
		})
	})

	Context("reheat", func() {
		It("should match the reference cycle", func() {
			log := &eventLog{}
			c, err := registry.Build(config.GetPreset("reheat", "textbook"), backend, log)
			Expect(err).ToNot(HaveOccurred())

			t := c.Totals()
			Expect(t.EnergyEfficiency).To(BeNumerically("~", 0.3726, 5e-4))
			Expect(t.BackWorkRatio).To(BeNumerically("~", 0.00603, 5e-5))
			Expect(t.WorkNet).To(BeNumerically("~", 1337.31e3, 500))

			Expect(stateNames(c)).To(Equal([]string{"1", "2s", "2", "3", "4s", "4", "5", "6s", "6"}))
			Expect(log.processes).To(Equal([]string{"HP Turbine", "Reheater", "LP Turbine", "Condenser", "Pump", "Boiler"}))
		})

		It("should count the reheater as heat input", func() {
			c, err := registry.Build(config.GetPreset("reheat", "moderate"), backend)
			Expect(err).ToNot(HaveOccurred())

			boiler, _ := c.Process("Boiler")
			reheater, _ := c.Process("Reheater")
			Expect(c.Totals().HeatIn).To(BeNumerically("~", boiler.Heat()+reheater.Heat(), 1e-6))
			Expect(c.Totals().EnergyEfficiency).To(BeNumerically("~", 0.35866, 5e-4))
		})

		It("should reject a reheat temperature below saturation", func() {
			cfg := config.GetPreset("reheat", "textbook")
			cfg.TMid = 440

			_, err := registry.Build(cfg, backend)
			var ie *thermo.CycleInfeasibleError
			Expect(errors.As(err, &ie)).To(BeTrue())
			Expect(ie.Component).To(Equal("Reheater"))
			Expect(ie.State).To(Equal("3"))
		})

		It("should reject p_mid outside the pressure range", func() {
			cfg := config.GetPreset("reheat", "textbook")
			cfg.PMid = 10e3

			_, err := registry.Build(cfg, backend)
			var ce *thermo.ConfigurationError
			Expect(errors.As(err, &ce)).To(BeTrue())
			Expect(ce.Subject).To(Equal("p_mid"))
		})
	})

	Context("plant", func() {
		It("should size the brine flow to the boiler duty", func() {
			plant, err := registry.Plant(config.GetPreset("ideal", "geothermal"), backend)
			Expect(err).ToNot(HaveOccurred())

			Expect(plant.Source.Mdot()).To(BeNumerically("~", 98.717, 0.05))
			Expect(plant.PowerNet).To(BeNumerically("~", 3.43645e6, 5e3))
			Expect(plant.HeatReleased).To(BeNumerically("~", plant.HeatDelivered, 1e-3))
			Expect(plant.EnergyEfficiency).To(BeNumerically("~", 0.10992, 5e-4))
			Expect(plant.ExergyEfficiency).To(BeNumerically("~", 0.8272, 2e-3))
			Expect(plant.EnergyEfficiency).To(BeNumerically("~", 0.8*plant.Power.Totals().EnergyEfficiency, 1e-9))
		})

		It("should name the brine states", func() {
			cfg := config.GetPreset("ideal", "geothermal")
			source, err := Geothermal(cfg, backend, 1e6)
			Expect(err).ToNot(HaveOccurred())

			Expect(stateNames(source)).To(Equal([]string{"Brine In", "Brine Out"}))
			in, _ := source.State("Brine In")
			Expect(in.Phase()).To(Equal(thermo.PhaseLiquid))
			hx, ok := source.Process("Brine HX")
			Expect(ok).To(BeTrue())
			Expect(source.Mdot() * -hx.Heat()).To(BeNumerically("~", 1e6, 1e-3))
		})

		It("should reject a brine flow too small for the boiler", func() {
			cfg := config.GetPreset("ideal", "geothermal")
			cfg.Source.Mdot = 50

			_, err := registry.Plant(cfg, backend)
			Expect(errors.Is(err, thermo.ErrCycleInfeasible)).To(BeTrue())
		})

		It("should reject a source below the dead state", func() {
			cfg := config.GetPreset("ideal", "geothermal")
			cfg.Source.TGround = 290

			_, err := registry.Plant(cfg, backend)
			Expect(errors.Is(err, thermo.ErrCycleInfeasible)).To(BeTrue())
		})

		It("should reject a bad cooling efficiency", func() {
			cfg := config.GetPreset("ideal", "geothermal")
			cfg.CoolEff = 0

			_, err := registry.Plant(cfg, backend)
			Expect(errors.Is(err, thermo.ErrConfiguration)).To(BeTrue())
		})
	})
})
