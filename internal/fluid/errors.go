package fluid

import "errors"

// Backend errors. Callers in thermo wrap them in UnresolvedStateError.
var (
	// ErrUnsupportedFluid indicates a fluid name no evaluator is registered for.
	ErrUnsupportedFluid = errors.New("fluid: unsupported fluid")

	// ErrOutOfRange indicates inputs outside the region an evaluator covers.
	ErrOutOfRange = errors.New("fluid: state outside the valid range")

	// ErrNoConvergence indicates an inversion that failed to settle.
	ErrNoConvergence = errors.New("fluid: solver did not converge")
)
