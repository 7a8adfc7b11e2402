package frame

import (
	"fmt"
	"math"
	"sort"
)

// Kind selects which matrix derivation an element uses
type Kind int

const (
	Frame Kind = iota // axial + bending
	Beam              // bending only
	Truss             // axial only
)

func (k Kind) String() string {
	switch k {
	case Frame:
		return "frame"
	case Beam:
		return "beam"
	case Truss:
		return "truss"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts "frame", "beam" or "truss" into a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "frame":
		return Frame, nil
	case "beam":
		return Beam, nil
	case "truss":
		return Truss, nil
	}
	return 0, fmt.Errorf("unknown element kind %q (want frame, beam or truss)", s)
}

// Section holds the material and cross-section properties of an element
type Section struct {
	A   float64 // cross-sectional area
	E   float64 // Young's modulus
	Iz  float64 // second moment of area about the out-of-plane axis
	Rho float64 // density
}

// Validate checks the properties needed by the given kind
func (s Section) Validate(k Kind) error {
	for _, v := range []float64{s.A, s.E, s.Iz, s.Rho} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ValidationError{fmt.Sprintf("section properties must be finite, got %+v", s)}
		}
	}
	if s.A <= 0 {
		return &ValidationError{fmt.Sprintf("area A must be positive, got %g", s.A)}
	}
	if s.E <= 0 {
		return &ValidationError{fmt.Sprintf("Young's modulus E must be positive, got %g", s.E)}
	}
	if s.Rho < 0 {
		return &ValidationError{fmt.Sprintf("density rho must not be negative, got %g", s.Rho)}
	}
	if k != Truss && s.Iz <= 0 {
		return &ValidationError{fmt.Sprintf("second moment of area Iz must be positive for %s elements, got %g", k, s.Iz)}
	}
	return nil
}

// Loads are the member loads passed to ComputeLocalMatrices.
// Fx and Fy are distributed intensities along the local axes; M1 and M2 are
// concentrated moments delivered at node 1 and node 2.
type Loads struct {
	Fx, Fy float64
	M1, M2 float64
}

// EndForces are concentrated local-axis forces acting at the element ends
type EndForces struct {
	Fsx1, Fsy1 float64
	Fsx2, Fsy2 float64
}

// Element is a two-node member of the structure
type Element struct {
	ID      int
	Kind    Kind
	N1, N2  *Node
	Section Section

	Loads     Loads
	EndForces EndForces

	le     float64
	lx, mx float64 // local x-axis direction cosines
	ly, my float64 // local y-axis direction cosines
}

func newElement(id int, kind Kind, n1, n2 *Node, sec Section) (*Element, error) {
	if n1 == nil || n2 == nil {
		return nil, &ValidationError{"element needs two nodes"}
	}
	if err := sec.Validate(kind); err != nil {
		return nil, err
	}
	dx := n2.X() - n1.X()
	dy := n2.Y() - n1.Y()
	le := math.Hypot(dx, dy)
	if le == 0 || math.IsNaN(le) || math.IsInf(le, 0) {
		return nil, &DegenerateGeometryError{Node1: n1.ID, Node2: n2.ID, X: n1.X(), Y: n1.Y(), Length: le}
	}
	o := &Element{ID: id, Kind: kind, N1: n1, N2: n2, Section: sec, le: le}
	o.lx, o.mx = dx/le, dy/le
	o.ly, o.my = -o.mx, o.lx
	return o, nil
}

// Length returns the element length
func (o *Element) Length() float64 { return o.le }

// Cosines returns the direction cosines (lx, mx) of the local x-axis and (ly, my) of the local y-axis
func (o *Element) Cosines() (lx, mx, ly, my float64) {
	return o.lx, o.mx, o.ly, o.my
}

// DOFPair links a row/column of the element matrices to a global equation
type DOFPair struct {
	Local  int
	Global int
}

// DOFMap returns the element's six local/global equation pairs ordered by
// ascending global index.
func (o *Element) DOFMap() []DOFPair {
	m := make([]DOFPair, 0, 2*DOFsPerNode)
	for k, n := range [2]*Node{o.N1, o.N2} {
		for i := 0; i < DOFsPerNode; i++ {
			m = append(m, DOFPair{Local: k*DOFsPerNode + i, Global: n.Offset() + i})
		}
	}
	sort.Slice(m, func(i, j int) bool { return m[i].Global < m[j].Global })
	return m
}
