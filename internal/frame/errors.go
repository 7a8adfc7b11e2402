package frame

import (
	"errors"
	"fmt"
)

// Modelling errors. They are never retried: the input model has to be corrected.
var (
	// ErrDegenerateGeometry indicates an element whose end nodes coincide.
	ErrDegenerateGeometry = errors.New("frame: degenerate element geometry")

	// ErrSingularSystem indicates a free-DOF stiffness block that cannot be inverted.
	ErrSingularSystem = errors.New("frame: singular stiffness system")

	// ErrUnderconstrained is the same failure seen from the modelling side
	// (rigid-body modes, disconnected substructures).
	ErrUnderconstrained = ErrSingularSystem

	// ErrInconsistentBoundary indicates a DOF with both or neither of force and
	// displacement prescribed.
	ErrInconsistentBoundary = errors.New("frame: inconsistent boundary condition")
)

// DegenerateGeometryError is returned when an element is built on coincident
// nodes or on coordinates that give a non-finite length
type DegenerateGeometryError struct {
	Node1, Node2 int
	X, Y         float64
	Length       float64
}

func (e *DegenerateGeometryError) Error() string {
	if e.Length != 0 {
		return fmt.Sprintf("frame: element between nodes %d and %d has non-finite length %g", e.Node1, e.Node2, e.Length)
	}
	return fmt.Sprintf("frame: element nodes %d and %d coincide at (%g, %g)", e.Node1, e.Node2, e.X, e.Y)
}

func (e *DegenerateGeometryError) Unwrap() error {
	return ErrDegenerateGeometry
}

// SingularSystemError is returned when the free-DOF stiffness block is not invertible
type SingularSystemError struct {
	FreeDOFs  int
	Condition float64
	Reason    string
	Wrapped   error
}

func (e *SingularSystemError) Error() string {
	msg := fmt.Sprintf("frame: stiffness matrix of %d free DOFs is singular", e.FreeDOFs)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Is reports ErrSingularSystem so callers can match without a type assertion.
func (e *SingularSystemError) Is(target error) bool {
	return target == ErrSingularSystem
}

func (e *SingularSystemError) Unwrap() error {
	return e.Wrapped
}

// InconsistentBoundaryConditionError is returned when a DOF has both a prescribed
// force and a prescribed displacement, or neither.
type InconsistentBoundaryConditionError struct {
	Node int
	DOF  DOF
	Both bool
}

func (e *InconsistentBoundaryConditionError) Error() string {
	if e.Both {
		return fmt.Sprintf("frame: node %d %s has both force and displacement prescribed", e.Node, e.DOF)
	}
	return fmt.Sprintf("frame: node %d %s has neither force nor displacement prescribed", e.Node, e.DOF)
}

func (e *InconsistentBoundaryConditionError) Unwrap() error {
	return ErrInconsistentBoundary
}

// ValidationError represents an invalid section or element property
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
