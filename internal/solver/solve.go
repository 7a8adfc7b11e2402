package solver

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/goframe/internal/frame"
	"gonum.org/v1/gonum/mat"
)

// Partition splits the global stiffness into free (f) and support (s) blocks.
// A block is nil when one of its dimensions is zero.
type Partition struct {
	Free  []int
	Fixed []int

	Kff, Kfs *mat.Dense
	Ksf, Kss *mat.Dense
}

// Result holds the solution of one analysis
type Result struct {
	D *mat.VecDense // full displacement vector
	F *mat.VecDense // full force vector, reactions at support DOFs

	Members []MemberForces

	// Inactive lists free DOFs without stiffness or load (e.g. rotations at
	// pure truss joints). They are held at zero.
	Inactive  []int
	Condition float64

	System *GlobalSystem
}

// Partition reorders the stiffness into blocks for the given free and fixed equations
func (sys *GlobalSystem) Partition(free, fixed []int) *Partition {
	return &Partition{
		Free:  free,
		Fixed: fixed,
		Kff:   submatrix(sys.K, free, free),
		Kfs:   submatrix(sys.K, free, fixed),
		Ksf:   submatrix(sys.K, fixed, free),
		Kss:   submatrix(sys.K, fixed, fixed),
	}
}

// Solve computes the unknown displacements and the support reactions.
// The nodes are not modified; see Result.Apply.
func (sys *GlobalSystem) Solve(opts ...Option) (*Result, error) {
	o := newOptions(opts)

	free, inactive, err := sys.activeFree()
	if err != nil {
		return nil, err
	}
	p := sys.Partition(free, sys.FixedDOFs())
	if len(inactive) > 0 {
		o.Logger.Debug("holding DOFs without stiffness at zero", "dofs", inactive)
	}

	// K_ff·D_f = F_f − K_fs·D_s
	ds := gather(sys.D, p.Fixed)
	rhs := gather(sys.F, p.Free)
	for i, v := range gather(sys.Feq, p.Free) {
		rhs[i] += v
	}
	mulAdd(rhs, -1, p.Kfs, ds)

	res := &Result{
		D:        mat.NewVecDense(sys.Size, nil),
		F:        mat.NewVecDense(sys.Size, nil),
		Inactive: inactive,
		System:   sys,
	}
	res.D.CopyVec(sys.D)

	df := make([]float64, len(p.Free))
	if len(p.Free) > 0 {
		df, res.Condition, err = solveDense(p.Kff, rhs, o.ConditionLimit)
		if err != nil {
			return nil, err
		}
		o.Logger.Debug("solved free displacements", "free", len(p.Free), "fixed", len(p.Fixed), "cond", res.Condition)
	}
	scatterVec(res.D, p.Free, df)

	// F_s = K_sf·D_f + K_ss·D_s − Feq_s
	fs := gather(sys.Feq, p.Fixed)
	for i := range fs {
		fs[i] = -fs[i]
	}
	mulAdd(fs, 1, p.Ksf, df)
	mulAdd(fs, 1, p.Kss, ds)

	res.F.CopyVec(sys.F)
	scatterVec(res.F, p.Fixed, fs)

	res.Members = make([]MemberForces, len(sys.Elements))
	for k, e := range sys.Elements {
		res.Members[k] = newMemberForces(e, sys.Local[k], res.D)
	}
	return res, nil
}

// activeFree returns the free equations that carry stiffness, and the ones
// that carry neither stiffness nor load.
func (sys *GlobalSystem) activeFree() (active, inactive []int, err error) {
	for _, i := range sys.FreeDOFs() {
		if !sys.zeroStiffness(i) {
			active = append(active, i)
			continue
		}
		if sys.F.AtVec(i)+sys.Feq.AtVec(i) != 0 {
			return nil, nil, &frame.SingularSystemError{
				FreeDOFs:  len(sys.FreeDOFs()),
				Condition: math.Inf(1),
				Reason:    fmt.Sprintf("load on equation %d which has no stiffness", i),
			}
		}
		inactive = append(inactive, i)
	}
	return active, inactive, nil
}

func (sys *GlobalSystem) zeroStiffness(i int) bool {
	for j := 0; j < sys.Size; j++ {
		if sys.K.At(i, j) != 0 || sys.K.At(j, i) != 0 {
			return false
		}
	}
	return true
}

// solveDense solves a·x = b with an LU factorization, rejecting singular and
// ill-conditioned matrices.
func solveDense(a *mat.Dense, b []float64, condLimit float64) ([]float64, float64, error) {
	n, _ := a.Dims()
	var lu mat.LU
	lu.Factorize(a)
	cond := lu.Cond()
	if math.IsNaN(cond) || math.IsInf(cond, 0) || cond > condLimit {
		return nil, cond, &frame.SingularSystemError{FreeDOFs: n, Condition: cond, Reason: fmt.Sprintf("condition number %g", cond)}
	}

	x := mat.NewVecDense(n, nil)
	if err := lu.SolveVecTo(x, false, mat.NewVecDense(n, b)); err != nil {
		return nil, cond, &frame.SingularSystemError{FreeDOFs: n, Condition: cond, Wrapped: err}
	}
	for i := 0; i < n; i++ {
		if v := x.AtVec(i); math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, cond, &frame.SingularSystemError{FreeDOFs: n, Condition: cond, Reason: "non-finite displacement"}
		}
	}
	return x.RawVector().Data, cond, nil
}

// Apply writes displacements, reactions and element end moments onto the nodes
func (r *Result) Apply() {
	sys := r.System
	for _, n := range sys.Nodes {
		n.ResetResults()
		off := n.Offset()
		for i := 0; i < frame.DOFsPerNode; i++ {
			n.Displacement[i] = r.D.AtVec(off + i)
			if !sys.Free[off+i] {
				n.Reaction[i] = r.F.AtVec(off + i)
			}
		}
		n.Solved = true
	}
	for k, e := range sys.Elements {
		m := sys.Local[k].EndMoments
		e.N1.EndMoment += m[0]
		e.N2.EndMoment += m[1]
	}
}

// NodeDisplacement returns the displacement triple (D1, D2, D3) of n
func (r *Result) NodeDisplacement(n *frame.Node) [frame.DOFsPerNode]float64 {
	var d [frame.DOFsPerNode]float64
	for i := range d {
		d[i] = r.D.AtVec(n.Offset() + i)
	}
	return d
}

func submatrix(a *mat.Dense, rows, cols []int) *mat.Dense {
	if len(rows) == 0 || len(cols) == 0 {
		return nil
	}
	m := mat.NewDense(len(rows), len(cols), nil)
	for i, r := range rows {
		for j, c := range cols {
			m.Set(i, j, a.At(r, c))
		}
	}
	return m
}

func gather(v *mat.VecDense, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, k := range idx {
		out[i] = v.AtVec(k)
	}
	return out
}

func scatterVec(v *mat.VecDense, idx []int, vals []float64) {
	for i, k := range idx {
		v.SetVec(k, vals[i])
	}
}

// mulAdd computes dst += alpha·m·x; a nil block contributes nothing
func mulAdd(dst []float64, alpha float64, m *mat.Dense, x []float64) {
	if m == nil {
		return
	}
	r, c := m.Dims()
	var mx mat.VecDense
	mx.MulVec(m, mat.NewVecDense(c, x))
	d := mat.NewVecDense(r, dst)
	d.AddScaledVec(d, alpha, &mx)
}
