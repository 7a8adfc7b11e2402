// Package solver assembles element matrices into the global structure
// system, partitions it by boundary condition and solves for displacements,
// support reactions and member-end forces (Direct Stiffness Method).
package solver

import (
	"math"

	"github.com/alexiusacademia/goframe/internal/frame"
	"gonum.org/v1/gonum/floats"
)

// Analyze assembles and solves the model and writes the results onto its nodes
func Analyze(m *frame.Model, opts ...Option) (*Result, error) {
	sys, err := Assemble(m.Nodes(), m.Elements(), opts...)
	if err != nil {
		return nil, err
	}
	res, err := sys.Solve(opts...)
	if err != nil {
		return nil, err
	}
	res.Apply()
	return res, nil
}

// MaxDisplacement returns the node and DOF with the largest absolute
// displacement of the given kind (translations or rotation).
func (r *Result) MaxDisplacement(dof frame.DOF) (*frame.Node, float64) {
	var (
		best *frame.Node
		val  float64
	)
	for _, n := range r.System.Nodes {
		d := r.D.AtVec(n.Offset() + int(dof))
		if best == nil || math.Abs(d) > math.Abs(val) {
			best, val = n, d
		}
	}
	return best, val
}

// DisplacementNorm returns the Euclidean norm of the full displacement vector
func (r *Result) DisplacementNorm() float64 {
	return floats.Norm(r.D.RawVector().Data, 2)
}
