// Package thermo provides the state-resolution and cycle-bookkeeping core
// for thermodynamic power cycles.
//
// The package defines the fundamental types used to describe a cycle:
//
//   - [State]: one equilibrium point of a fluid stream, fixed from two
//     independent properties
//   - [Process]: energy transfer between an inflow and an outflow state
//   - [Cycle]: ordered states and processes plus a reference dead state
//   - [Plant]: a power cycle driven by a heat-source cycle
//   - [Backend]: the property evaluator contract (two properties in, one out)
//
// # Example
//
//	cyc, _ := thermo.NewCycle("rankine", "Water", backend, thermo.DefaultReference())
//	st := cyc.NewState("1")
//	_ = st.Fix(thermo.Pressure, 8e6, thermo.Quality, 1.0)
//	fmt.Println(st.H(), st.S())
//
// # Errors
//
// Every failure is returned as one of [ConfigurationError],
// [UnresolvedStateError] or [CycleInfeasibleError]. They unwrap to
// [ErrConfiguration], [ErrUnresolvedState] and [ErrCycleInfeasible].
//
// # Thread Safety
//
// A Cycle and the states it owns are NOT thread-safe. Independent cycles
// may be computed concurrently as long as the Backend is safe for
// concurrent use.
package thermo
