package frame

import "fmt"

// DOF identifies one of the three degrees of freedom carried by a node
type DOF int

const (
	UX DOF = iota // x-translation
	UY            // y-translation
	RZ            // z-rotation
)

// DOFsPerNode is the number of degrees of freedom per node of a planar frame
const DOFsPerNode = 3

var dofNames = [DOFsPerNode]string{"ux", "uy", "rz"}

func (d DOF) String() string {
	if d < 0 || int(d) >= DOFsPerNode {
		return fmt.Sprintf("dof(%d)", int(d))
	}
	return dofNames[d]
}

// ParseDOF converts "ux", "uy" or "rz" into a DOF
func ParseDOF(s string) (DOF, error) {
	for i, n := range dofNames {
		if n == s {
			return DOF(i), nil
		}
	}
	return 0, fmt.Errorf("unknown degree of freedom %q (want ux, uy or rz)", s)
}

// Slot holds a value that is either prescribed (Known) or left for the solver
type Slot struct {
	Value float64
	Known bool
}

// Node is a point of the structure.
//
// Coordinates are fixed at creation. Force and Disp are the input boundary
// conditions; Displacement, Reaction and EndMoment are written by the solver.
type Node struct {
	ID int

	x, y float64

	Force [DOFsPerNode]Slot // applied Fx, Fy, Mz
	Disp  [DOFsPerNode]Slot // D1, D2, D3

	// Results
	Displacement [DOFsPerNode]float64
	Reaction     [DOFsPerNode]float64
	EndMoment    float64 // sum of element end moments delivered at this node
	Solved       bool
}

func newNode(id int, x, y float64) *Node {
	n := &Node{ID: id, x: x, y: y}
	for i := range n.Force {
		n.Force[i] = Slot{Known: true}
	}
	return n
}

// X returns the x-coordinate
func (n *Node) X() float64 { return n.x }

// Y returns the y-coordinate
func (n *Node) Y() float64 { return n.y }

// Offset returns the first global equation number of the node (0-based)
func (n *Node) Offset() int {
	return DOFsPerNode * (n.ID - 1)
}

// Fix marks the given DOFs (all three if none given) as supports with zero displacement
func (n *Node) Fix(dofs ...DOF) {
	if len(dofs) == 0 {
		dofs = []DOF{UX, UY, RZ}
	}
	for _, d := range dofs {
		n.Prescribe(d, 0)
	}
}

// Prescribe sets a known displacement on d; its force becomes the unknown reaction
func (n *Node) Prescribe(d DOF, value float64) {
	n.Disp[d] = Slot{Value: value, Known: true}
	n.Force[d] = Slot{}
}

// Load adds an applied force (or moment for RZ) on d
func (n *Node) Load(d DOF, value float64) {
	n.Force[d].Value += value
	n.Force[d].Known = true
}

// IsSupport reports whether any DOF of the node has a prescribed displacement
func (n *Node) IsSupport() bool {
	for _, s := range n.Disp {
		if s.Known {
			return true
		}
	}
	return false
}

// CheckBoundary verifies that every DOF has exactly one of force and displacement known
func (n *Node) CheckBoundary() error {
	for i := 0; i < DOFsPerNode; i++ {
		f, d := n.Force[i].Known, n.Disp[i].Known
		if f == d {
			return &InconsistentBoundaryConditionError{Node: n.ID, DOF: DOF(i), Both: f}
		}
	}
	return nil
}

// ResetResults clears the values written by a previous analysis
func (n *Node) ResetResults() {
	n.Displacement = [DOFsPerNode]float64{}
	n.Reaction = [DOFsPerNode]float64{}
	n.EndMoment = 0
	n.Solved = false
}
