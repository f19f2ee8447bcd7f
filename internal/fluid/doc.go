// Package fluid provides the property backends behind thermo.Backend.
//
// Two evaluators are built in:
//
//   - [Water]: IAPWS-IF97 regions 1, 2 and 4 for ordinary water and steam
//   - [Brine]: an incompressible liquid; [NewMNA20] gives the MNA-20
//     geothermal brine
//
// A [Registry] resolves fluid names and aliases ("Water", "H2O",
// "IF97::Water", "INCOMP::MNA-20") to evaluators, and a [Memo] caches its
// answers for repeated lookups.
//
// # Example
//
//	b := fluid.Default()
//	h, err := b.Props(thermo.Enthalpy, thermo.Pressure, 2e6, thermo.Quality, 1, "Water")
//
// # Inversions
//
// Pairs containing pressure or temperature are solved for the missing one
// of the two with Brent's method; any other pair searches pressure. Input
// properties are echoed back exactly.
//
// # Thread Safety
//
// Water, Brine and a Registry that is no longer being registered into are
// safe for concurrent use. Memo guards its cache with a mutex.
package fluid
