package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/san-kum/rankine/internal/config"
	"github.com/san-kum/rankine/internal/cycles"
	"github.com/san-kum/rankine/internal/export"
	"github.com/san-kum/rankine/internal/fluid"
	"github.com/san-kum/rankine/internal/sweep"
	"github.com/san-kum/rankine/internal/thermo"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	jsonOut    bool
	basis      string
	save       bool

	fluidName string
	pHi       float64
	pLo       float64
	pMid      float64
	tHi       float64
	tMid      float64
	tLo       float64
	turbEff   float64
	pumpEff   float64
	superheat bool
	cycleMdot float64
	coolEff   float64

	brine     string
	brineMdot float64
	tGround   float64
	pGround   float64

	pHiMin  float64
	pHiMax  float64
	pLoMin  float64
	pLoMax  float64
	steps   int
	metric  string
	workers int

	statesOnly bool
)

var backend = fluid.Default()

func main() {
	rootCmd := &cobra.Command{
		Use:          "rankine",
		Short:        "rankine and geothermal cycle energy and exergy analysis",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				atexit.Register(func() {
					hits, misses := backend.Stats()
					fmt.Fprintf(os.Stderr, "property cache: %d hits, %d misses\n", hits, misses)
				})
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rankine", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "report every state and process as it is computed")

	runCmd := &cobra.Command{
		Use:   "run [cycle]",
		Short: "compute one cycle",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCycle,
	}
	cycleFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "store the run under the data directory")

	plantCmd := &cobra.Command{
		Use:   "plant [cycle]",
		Short: "compute a cycle driven by the geothermal brine loop",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlant,
	}
	cycleFlags(plantCmd)
	plantCmd.Flags().StringVar(&brine, "brine", config.DefaultBrine, "brine fluid")
	plantCmd.Flags().Float64Var(&brineMdot, "brine-mdot", 0, "brine mass flow in kg/s (0 sizes it to the boiler duty)")
	plantCmd.Flags().Float64Var(&tGround, "t-ground", config.DefaultTGround, "brine inlet temperature in K")
	plantCmd.Flags().Float64Var(&pGround, "p-ground", config.DefaultPGround, "brine pressure in Pa")

	sweepCmd := &cobra.Command{
		Use:   "sweep [cycle]",
		Short: "evaluate a grid of high and low pressures",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	cycleFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&pHiMin, "p-hi-min", 1e6, "lowest high pressure in Pa")
	sweepCmd.Flags().Float64Var(&pHiMax, "p-hi-max", 10e6, "highest high pressure in Pa")
	sweepCmd.Flags().Float64Var(&pLoMin, "p-lo-min", 10e3, "lowest low pressure in Pa")
	sweepCmd.Flags().Float64Var(&pLoMax, "p-lo-max", 100e3, "highest low pressure in Pa")
	sweepCmd.Flags().IntVar(&steps, "steps", 5, "grid points per axis")
	sweepCmd.Flags().StringVar(&metric, "metric", string(sweep.EnergyEfficiency), "metric used to pick the best point (en_eff, ex_eff, wnet, bwr)")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 uses every CPU)")

	presetsCmd := &cobra.Command{
		Use:   "presets [cycle]",
		Short: "list available presets for a cycle",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := cycles.NewRegistry().List()
			if len(args) > 0 {
				names = args
			}
			for _, name := range names {
				presets := config.ListPresets(name)
				if len(presets) == 0 {
					fmt.Printf("no presets for cycle: %s\n", name)
					continue
				}
				fmt.Printf("presets for %s:\n", name)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}

	fluidsCmd := &cobra.Command{
		Use:   "fluids",
		Short: "list supported fluids",
		RunE:  listFluids,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().BoolVar(&statesOnly, "states", false, "print the stored state table instead of the JSON record")

	rootCmd.AddCommand(runCmd, plantCmd, sweepCmd, presetsCmd, fluidsCmd, listCmd, exportCmd)

	code := 0
	if err := rootCmd.Execute(); err != nil {
		code = 1
	}
	atexit.Exit(code)
}

func cycleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	cmd.Flags().StringVar(&basis, "basis", string(export.PerMass), "report energies per unit mass (mass) or as rates in kW (rate)")

	cmd.Flags().StringVar(&fluidName, "fluid", config.DefaultFluid, "working fluid")
	cmd.Flags().Float64Var(&pHi, "p-hi", config.DefaultPHi, "boiler pressure in Pa")
	cmd.Flags().Float64Var(&pLo, "p-lo", config.DefaultPLo, "condenser pressure in Pa")
	cmd.Flags().Float64Var(&pMid, "p-mid", 0, "reheat pressure in Pa")
	cmd.Flags().Float64Var(&tHi, "t-hi", 0, "turbine inlet temperature in K")
	cmd.Flags().Float64Var(&tMid, "t-mid", 0, "reheat temperature in K")
	cmd.Flags().Float64Var(&tLo, "t-lo", 0, "condenser outlet temperature in K")
	cmd.Flags().Float64Var(&turbEff, "turb-eff", config.DefaultEff, "turbine isentropic efficiency")
	cmd.Flags().Float64Var(&pumpEff, "pump-eff", config.DefaultEff, "pump isentropic efficiency")
	cmd.Flags().BoolVar(&superheat, "superheat", false, "superheat the turbine inlet to T_hi")
	cmd.Flags().Float64Var(&cycleMdot, "mdot", config.DefaultMdot, "working fluid mass flow in kg/s")
	cmd.Flags().Float64Var(&coolEff, "cool-eff", config.DefaultCoolEff, "fraction of the brine heat released to the cycle")
}

// resolveConfig starts from the defaults, then applies the preset, the
// config file and finally any flag set on the command line.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cycle := cfg.Cycle
	if len(args) > 0 {
		cycle = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cycle, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cycle))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Cycle = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("fluid") {
		cfg.Fluid = fluidName
	}
	if flags.Changed("p-hi") {
		cfg.PHi = pHi
	}
	if flags.Changed("p-lo") {
		cfg.PLo = pLo
	}
	if flags.Changed("p-mid") {
		cfg.PMid = pMid
	}
	if flags.Changed("t-hi") {
		cfg.THi = tHi
	}
	if flags.Changed("t-mid") {
		cfg.TMid = tMid
	}
	if flags.Changed("t-lo") {
		cfg.TLo = tLo
	}
	if flags.Changed("turb-eff") {
		cfg.TurbEff = turbEff
	}
	if flags.Changed("pump-eff") {
		cfg.PumpEff = pumpEff
	}
	if flags.Changed("superheat") {
		cfg.Superheat = superheat
	}
	if flags.Changed("mdot") {
		cfg.CycleMdot = cycleMdot
	}
	if flags.Changed("cool-eff") {
		cfg.CoolEff = coolEff
	}
	if flags.Lookup("brine") != nil {
		if flags.Changed("brine") {
			cfg.Source.Brine = brine
		}
		if flags.Changed("brine-mdot") {
			cfg.Source.Mdot = brineMdot
		}
		if flags.Changed("t-ground") {
			cfg.Source.TGround = tGround
		}
		if flags.Changed("p-ground") {
			cfg.Source.PGround = pGround
		}
	}

	return cfg, nil
}

func observers() []thermo.Observer {
	if !verbose {
		return nil
	}
	return []thermo.Observer{progress{}}
}

// progress writes one line per cycle event to stderr.
type progress struct{}

func (progress) OnStateFixed(c *thermo.Cycle, s *thermo.State) {
	fmt.Fprintf(os.Stderr, "[%s] state %-4s T=%.2f K p=%.1f kPa h=%.2f kJ/kg (%s)\n",
		c.Name(), s.Name(), s.T(), s.P()/1e3, s.H()/1e3, s.Phase())
}

func (progress) OnProcessAdded(c *thermo.Cycle, p *thermo.Process) {
	fmt.Fprintf(os.Stderr, "[%s] process %s %s -> %s q=%.2f w=%.2f kJ/kg\n",
		c.Name(), p.Name(), p.In().Name(), p.Out().Name(), p.Heat()/1e3, p.Work()/1e3)
}

func runCycle(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	b, err := export.ParseBasis(basis)
	if err != nil {
		return err
	}

	start := time.Now()
	c, err := cycles.NewRegistry().Build(cfg, backend, observers()...)
	if err != nil {
		return err
	}
	rec := export.FromCycle(c, b)

	if save {
		st := export.NewStore(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		if _, err := st.Save(rec); err != nil {
			return err
		}
	}

	if jsonOut {
		return export.WriteJSON(os.Stdout, rec)
	}
	printCycle(rec)
	fmt.Printf("\ncompleted in %v\n", time.Since(start))
	if save {
		fmt.Printf("run id: %s\n", rec.ID)
	}
	return nil
}

func runPlant(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	b, err := export.ParseBasis(basis)
	if err != nil {
		return err
	}

	plant, err := cycles.NewRegistry().Plant(cfg, backend, observers()...)
	if err != nil {
		return err
	}
	rec := export.FromPlant(plant, b)

	if jsonOut {
		return export.WriteJSON(os.Stdout, rec)
	}
	printCycle(rec.Power)
	fmt.Println()
	printCycle(rec.Source)

	fmt.Println("\nplant:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  cool_eff\t%.4f\n", rec.CoolEff)
	fmt.Fprintf(w, "  brine mdot\t%.3f kg/s\n", rec.Source.Mdot)
	fmt.Fprintf(w, "  net power\t%.2f kW\n", rec.PowerNet)
	fmt.Fprintf(w, "  heat delivered\t%.2f kW\n", rec.HeatDelivered)
	fmt.Fprintf(w, "  heat available\t%.2f kW\n", rec.HeatAvailable)
	fmt.Fprintf(w, "  exergy available\t%.2f kW\n", rec.ExergyAvailable)
	fmt.Fprintf(w, "  en_eff\t%.4f\n", rec.EnergyEfficiency)
	fmt.Fprintf(w, "  ex_eff\t%.4f\n", rec.ExergyEfficiency)
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	m, err := sweep.ParseMetric(metric)
	if err != nil {
		return err
	}
	build, err := cycles.NewRegistry().Get(cfg.Cycle)
	if err != nil {
		return err
	}

	grid := sweep.NewGrid(sweep.Linspace(pHiMin, pHiMax, steps), sweep.Linspace(pLoMin, pLoMax, steps))
	if workers > 0 {
		grid.Workers = workers
	}

	start := time.Now()
	points, err := grid.Run(context.Background(), cfg, build, backend)
	if err != nil {
		return err
	}

	if jsonOut {
		type row struct {
			PHi   float64 `json:"p_hi"`
			PLo   float64 `json:"p_lo"`
			Value float64 `json:"value"`
			Error string  `json:"error,omitempty"`
		}
		rows := make([]row, 0, len(points))
		for _, p := range points {
			r := row{PHi: p.PHi, PLo: p.PLo}
			if p.OK() {
				r.Value = m.Value(p.Cycle.Totals())
			} else {
				r.Error = p.Err.Error()
			}
			rows = append(rows, r)
		}
		return export.WriteJSON(os.Stdout, map[string]any{"metric": m, "points": rows})
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "P_HI (kPa)\tP_LO (kPa)\t%s\n", strings.ToUpper(string(m)))
	for _, p := range points {
		if !p.OK() {
			fmt.Fprintf(w, "%.1f\t%.1f\t%v\n", p.PHi/1e3, p.PLo/1e3, p.Err)
			continue
		}
		fmt.Fprintf(w, "%.1f\t%.1f\t%.6f\n", p.PHi/1e3, p.PLo/1e3, m.Value(p.Cycle.Totals()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d points in %v\n", len(points), time.Since(start))
	if best, ok := sweep.Best(points, m); ok {
		fmt.Printf("best %s: %.6f at p_hi=%.1f kPa, p_lo=%.1f kPa\n",
			m, m.Value(best.Cycle.Totals()), best.PHi/1e3, best.PLo/1e3)
	}
	return nil
}

func printCycle(rec export.CycleRecord) {
	fmt.Printf("%s (%s, mdot=%.3f kg/s, id %s)\n\n", rec.Name, rec.Fluid, rec.Mdot, rec.ID)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATE\tPHASE\tT (K)\tP (kPa)\tH (kJ/kg)\tS (kJ/kg K)\tX\tEF (kJ/kg)")
	for _, s := range append([]export.StateRecord{rec.DeadState}, rec.States...) {
		x := "-"
		if s.X != nil {
			x = fmt.Sprintf("%.4f", *s.X)
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.4f\t%s\t%.2f\n",
			s.Name, s.Phase, s.T, s.P, s.H, s.S, x, s.Ef)
	}
	w.Flush()

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PROCESS\tKIND\tIN\tOUT\tQ (%s)\tW (%s)\tEX_D (%s)\tEX_EFF\n", rec.Unit, rec.Unit, rec.Unit)
	for _, p := range rec.Processes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%.4f\n",
			p.Name, p.Kind, p.In, p.Out, p.Heat, p.Work, p.ExergyDestroyed, p.ExergyEfficiency)
	}
	w.Flush()

	t := rec.Totals
	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  wnet\t%.2f %s\n", t.WorkNet, rec.Unit)
	fmt.Fprintf(w, "  qin\t%.2f %s\n", t.HeatIn, rec.Unit)
	fmt.Fprintf(w, "  en_eff\t%.4f\n", t.EnergyEfficiency)
	fmt.Fprintf(w, "  bwr\t%.4f\n", t.BackWorkRatio)
	fmt.Fprintf(w, "  ex_eff\t%.4f\n", t.ExergyEfficiency)
	fmt.Fprintf(w, "  ex_d\t%.2f %s\n", t.ExergyDestroyed, rec.Unit)
	w.Flush()
}

func listFluids(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FLUID\tALIASES\tT_CRIT (K)\tP_CRIT (MPa)")
	for _, name := range backend.Fluids() {
		tc, pc := "-", "-"
		if t, p, err := backend.Critical(name); err == nil {
			tc, pc = fmt.Sprintf("%.3f", t), fmt.Sprintf("%.3f", p/1e6)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, strings.Join(backend.Aliases(name), ", "), tc, pc)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := export.NewStore(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCYCLE\tFLUID\tEN_EFF\tEX_EFF\tWNET")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%.4f\t%.2f %s\n",
			r.ID, r.Name, r.Fluid, r.Totals.EnergyEfficiency, r.Totals.ExergyEfficiency, r.Totals.WorkNet, r.Unit)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := export.NewStore(dataDir)
	if statesOnly {
		header, rows, err := st.LoadStates(args[0])
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, strings.Join(header, "\t"))
		for _, row := range rows {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return w.Flush()
	}

	rec, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, rec)
}
