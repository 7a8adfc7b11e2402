package frame

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ElementDOFs is the size of the element matrices (two nodes, three DOFs each)
const ElementDOFs = 2 * DOFsPerNode

// LocalMatrices holds the result of an element's matrix derivation.
// Ke, Me and Fe are in global axes; the *Local variants are aligned with the element.
type LocalMatrices struct {
	T *mat.Dense // global-to-local rotation [6][6]

	KeLocal *mat.Dense
	MeLocal *mat.Dense
	FeLocal *mat.VecDense

	Ke *mat.Dense    // Tᵗ·ke·T
	Me *mat.Dense    // Tᵗ·me·T
	Fe *mat.VecDense // Tᵗ·fe

	// EndMoments are the concentrated moments delivered at node 1 and node 2.
	// Writing them onto the nodes is left to the caller.
	EndMoments [2]float64
}

// Transformation returns the 6×6 matrix mapping global (x, y, rz) DOFs at both
// ends to local (axial, transverse, rz) DOFs.
func (o *Element) Transformation() *mat.Dense {
	return mat.NewDense(ElementDOFs, ElementDOFs, []float64{
		o.lx, o.mx, 0, 0, 0, 0,
		o.ly, o.my, 0, 0, 0, 0,
		0, 0, 1, 0, 0, 0,
		0, 0, 0, o.lx, o.mx, 0,
		0, 0, 0, o.ly, o.my, 0,
		0, 0, 0, 0, 0, 1,
	})
}

// ComputeLocalMatrices derives the element stiffness, mass and equivalent
// nodal-force matrices for the given member loads and transforms them to
// global axes. It reads the element only and never touches its nodes.
func (o *Element) ComputeLocalMatrices(loads Loads) (*LocalMatrices, error) {
	if o.le == 0 {
		return nil, &DegenerateGeometryError{Node1: o.N1.ID, Node2: o.N2.ID, X: o.N1.X(), Y: o.N1.Y()}
	}
	if err := o.Section.Validate(o.Kind); err != nil {
		return nil, err
	}
	if o.Kind == Truss && (loads.M1 != 0 || loads.M2 != 0) {
		return nil, &ValidationError{fmt.Sprintf("truss element %d cannot carry end moments", o.ID)}
	}

	lm := &LocalMatrices{
		T:          o.Transformation(),
		KeLocal:    o.stiffness(),
		MeLocal:    o.mass(),
		FeLocal:    o.equivalentForces(loads),
		EndMoments: [2]float64{loads.M1, loads.M2},
	}

	lm.Ke = mat.NewDense(ElementDOFs, ElementDOFs, nil)
	lm.Ke.Product(lm.T.T(), lm.KeLocal, lm.T)
	lm.Me = mat.NewDense(ElementDOFs, ElementDOFs, nil)
	lm.Me.Product(lm.T.T(), lm.MeLocal, lm.T)
	lm.Fe = mat.NewVecDense(ElementDOFs, nil)
	lm.Fe.MulVec(lm.T.T(), lm.FeLocal)
	return lm, nil
}

// stiffness returns the local stiffness matrix written with the half-length a = le/2
func (o *Element) stiffness() *mat.Dense {
	s := o.Section
	a := o.le / 2
	v := s.A * s.E / (2 * a)
	w := 3 * s.E * s.Iz / (2 * a * a * a)
	x := 3 * s.E * s.Iz / (2 * a * a)
	y := s.E * s.Iz / a
	z := 2 * s.E * s.Iz / a

	switch o.Kind {
	case Truss:
		w, x, y, z = 0, 0, 0, 0
	case Beam:
		v = 0
	}

	return mat.NewDense(ElementDOFs, ElementDOFs, []float64{
		v, 0, 0, -v, 0, 0,
		0, w, x, 0, -w, x,
		0, x, z, 0, -x, y,
		-v, 0, 0, v, 0, 0,
		0, -w, -x, 0, w, -x,
		0, x, y, 0, -x, z,
	})
}

// mass returns the local consistent mass matrix
func (o *Element) mass() *mat.Dense {
	s := o.Section
	a := o.le / 2

	if o.Kind == Truss {
		m := s.Rho * s.A * a / 3
		return mat.NewDense(ElementDOFs, ElementDOFs, []float64{
			2 * m, 0, 0, m, 0, 0,
			0, 2 * m, 0, 0, m, 0,
			0, 0, 0, 0, 0, 0,
			m, 0, 0, 2 * m, 0, 0,
			0, m, 0, 0, 2 * m, 0,
			0, 0, 0, 0, 0, 0,
		})
	}

	m := s.Rho * s.A * a / 105
	aa := a * a
	ax, ay := 70.0, 35.0
	if o.Kind == Beam {
		ax, ay = 0, 0
	}
	me := mat.NewDense(ElementDOFs, ElementDOFs, []float64{
		ax, 0, 0, ay, 0, 0,
		0, 78, 22 * a, 0, 27, -13 * a,
		0, 22 * a, 8 * aa, 0, 13 * a, -6 * aa,
		ay, 0, 0, ax, 0, 0,
		0, 27, 13 * a, 0, 78, -22 * a,
		0, -13 * a, -6 * aa, 0, -22 * a, 8 * aa,
	})
	me.Scale(m, me)
	return me
}

// equivalentForces returns the local nodal forces equivalent to the member loads
func (o *Element) equivalentForces(loads Loads) *mat.VecDense {
	a := o.le / 2
	f := o.EndForces
	fx, fy := loads.Fx, loads.Fy
	// beams carry no axial stiffness
	if o.Kind == Beam {
		fx, f.Fsx1, f.Fsx2 = 0, 0, 0
	}

	fe := []float64{
		fx*a + f.Fsx1,
		fy*a + f.Fsy1,
		fy*a*a/3 + loads.M1,
		fx*a + f.Fsx2,
		fy*a + f.Fsy2,
		-fy*a*a/3 + loads.M2,
	}
	if o.Kind == Truss {
		fe[2], fe[5] = 0, 0
	}
	return mat.NewVecDense(ElementDOFs, fe)
}

// MemberForces returns the local member-end forces ke·(T·d) − fe for the
// element's global end displacements d.
func (lm *LocalMatrices) MemberForces(d []float64) []float64 {
	dl := mat.NewVecDense(ElementDOFs, nil)
	dl.MulVec(lm.T, mat.NewVecDense(ElementDOFs, d))
	f := mat.NewVecDense(ElementDOFs, nil)
	f.MulVec(lm.KeLocal, dl)
	f.SubVec(f, lm.FeLocal)
	return f.RawVector().Data
}
