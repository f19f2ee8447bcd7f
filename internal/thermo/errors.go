package thermo

import (
	"errors"
	"fmt"
)

// Domain errors for cycle computations.
var (
	// ErrConfiguration indicates insufficient, contradictory or dependent
	// inputs, or a missing boundary condition.
	ErrConfiguration = errors.New("thermo: invalid configuration")

	// ErrUnresolvedState indicates the property backend could not resolve a
	// property pair for the fluid.
	ErrUnresolvedState = errors.New("thermo: state could not be resolved")

	// ErrCycleInfeasible indicates a derived state violates the physical
	// assumptions of the cycle.
	ErrCycleInfeasible = errors.New("thermo: cycle is physically infeasible")
)

// ConfigurationError wraps ErrConfiguration with the offending subject and,
// optionally, the underlying cause.
type ConfigurationError struct {
	Subject string
	Reason  string
	Err     error
}

func (e *ConfigurationError) Error() string {
	reason := e.Reason
	if reason == "" && e.Err != nil {
		reason = e.Err.Error()
	}
	if e.Subject == "" {
		return fmt.Sprintf("thermo: configuration: %s", reason)
	}
	return fmt.Sprintf("thermo: configuration of %s: %s", e.Subject, reason)
}

func (e *ConfigurationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConfiguration, e.Err}
	}
	return []error{ErrConfiguration}
}

// Configf builds a ConfigurationError with a formatted reason.
func Configf(subject, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Subject: subject, Reason: fmt.Sprintf(format, args...)}
}

// UnresolvedStateError reports a backend failure for one property pair.
type UnresolvedStateError struct {
	State   string
	Fluid   string
	Name1   Property
	Value1  float64
	Name2   Property
	Value2  float64
	Wrapped error
}

func (e *UnresolvedStateError) Error() string {
	return fmt.Sprintf("thermo: state %q (%s) unresolved for %s=%g, %s=%g: %v",
		e.State, e.Fluid, e.Name1, e.Value1, e.Name2, e.Value2, e.Wrapped)
}

func (e *UnresolvedStateError) Is(target error) bool {
	return target == ErrUnresolvedState
}

func (e *UnresolvedStateError) Unwrap() error {
	return e.Wrapped
}

// CycleInfeasibleError reports a component whose derived state breaks the
// cycle assumptions.
type CycleInfeasibleError struct {
	Component string
	State     string
	Reason    string
}

func (e *CycleInfeasibleError) Error() string {
	if e.State == "" {
		return fmt.Sprintf("thermo: %s infeasible: %s", e.Component, e.Reason)
	}
	return fmt.Sprintf("thermo: %s infeasible at state %q: %s", e.Component, e.State, e.Reason)
}

func (e *CycleInfeasibleError) Unwrap() error {
	return ErrCycleInfeasible
}
