package solver

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/goframe/internal/frame"
	"gonum.org/v1/gonum/mat"
)

// GlobalSystem is the assembled structure. It is rebuilt by every analysis.
type GlobalSystem struct {
	Size int // 3·N

	K   *mat.Dense    // global stiffness [Size][Size]
	M   *mat.Dense    // global consistent mass [Size][Size]
	F   *mat.VecDense // known nodal loads (zero at support DOFs)
	Feq *mat.VecDense // element equivalent loads
	D   *mat.VecDense // prescribed displacements (zero at free DOFs)

	Free []bool // true: unknown displacement, known force

	Nodes    []*frame.Node
	Elements []*frame.Element
	Local    []*frame.LocalMatrices // per element, same order as Elements
}

// Assemble validates the boundary conditions, computes every element's
// matrices and scatter-adds them into the global system.
func Assemble(nodes []*frame.Node, elements []*frame.Element, opts ...Option) (*GlobalSystem, error) {
	o := newOptions(opts)
	if len(nodes) == 0 {
		return nil, errors.New("solver: structure has no nodes")
	}
	for i, n := range nodes {
		if n.ID != i+1 {
			return nil, fmt.Errorf("solver: node at position %d has ID %d, want %d", i, n.ID, i+1)
		}
		if err := n.CheckBoundary(); err != nil {
			return nil, err
		}
	}
	for _, e := range elements {
		for _, n := range []*frame.Node{e.N1, e.N2} {
			if n.ID < 1 || n.ID > len(nodes) || nodes[n.ID-1] != n {
				return nil, fmt.Errorf("solver: element %d references node %d outside the structure", e.ID, n.ID)
			}
		}
	}

	size := frame.DOFsPerNode * len(nodes)
	sys := &GlobalSystem{
		Size:     size,
		K:        mat.NewDense(size, size, nil),
		M:        mat.NewDense(size, size, nil),
		F:        mat.NewVecDense(size, nil),
		Feq:      mat.NewVecDense(size, nil),
		D:        mat.NewVecDense(size, nil),
		Free:     make([]bool, size),
		Nodes:    nodes,
		Elements: elements,
	}

	for _, n := range nodes {
		off := n.Offset()
		for i := 0; i < frame.DOFsPerNode; i++ {
			if n.Disp[i].Known {
				sys.D.SetVec(off+i, n.Disp[i].Value)
				continue
			}
			sys.Free[off+i] = true
			sys.F.SetVec(off+i, n.Force[i].Value)
		}
	}

	local, err := computeAll(elements, o.Workers)
	if err != nil {
		return nil, err
	}
	sys.Local = local

	// scatter is serial: neighbouring elements write the same cells
	for k, e := range elements {
		sys.scatter(e.DOFMap(), local[k])
	}

	o.Logger.Debug("assembled global system",
		"nodes", len(nodes), "elements", len(elements), "dofs", size, "workers", o.Workers)
	return sys, nil
}

// scatter adds one element's global contributions into the system
func (sys *GlobalSystem) scatter(dofs []frame.DOFPair, lm *frame.LocalMatrices) {
	for _, r := range dofs {
		for _, c := range dofs {
			sys.K.Set(r.Global, c.Global, sys.K.At(r.Global, c.Global)+lm.Ke.At(r.Local, c.Local))
			sys.M.Set(r.Global, c.Global, sys.M.At(r.Global, c.Global)+lm.Me.At(r.Local, c.Local))
		}
		sys.Feq.SetVec(r.Global, sys.Feq.AtVec(r.Global)+lm.Fe.AtVec(r.Local))
	}
}

// FreeDOFs returns the equation numbers with unknown displacement, ascending
func (sys *GlobalSystem) FreeDOFs() []int {
	return sys.dofs(true)
}

// FixedDOFs returns the equation numbers with prescribed displacement, ascending
func (sys *GlobalSystem) FixedDOFs() []int {
	return sys.dofs(false)
}

func (sys *GlobalSystem) dofs(free bool) []int {
	var idx []int
	for i, f := range sys.Free {
		if f == free {
			idx = append(idx, i)
		}
	}
	return idx
}
