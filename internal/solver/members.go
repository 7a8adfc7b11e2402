package solver

import (
	"math"

	"github.com/alexiusacademia/goframe/internal/frame"
	"gonum.org/v1/gonum/mat"
)

// MemberForces holds the end forces of one element in its local axes
//
//	Local = [N1 V1 M1 N2 V2 M2], the forces the nodes exert on the member
type MemberForces struct {
	Element       *frame.Element
	Displacements [frame.ElementDOFs]float64 // global end displacements
	Local         [frame.ElementDOFs]float64
}

// Station holds the internal forces at distance X from node 1
type Station struct {
	X      float64
	Axial  float64 // tension positive
	Shear  float64
	Moment float64 // sagging positive
}

func newMemberForces(e *frame.Element, lm *frame.LocalMatrices, d *mat.VecDense) MemberForces {
	mf := MemberForces{Element: e}
	for _, p := range e.DOFMap() {
		mf.Displacements[p.Local] = d.AtVec(p.Global)
	}
	copy(mf.Local[:], lm.MemberForces(mf.Displacements[:]))
	return mf
}

// Stations returns the internal forces at n evenly spaced points along the
// element, including both ends. n < 2 is treated as 2.
func (mf MemberForces) Stations(n int) []Station {
	if n < 2 {
		n = 2
	}
	e := mf.Element
	l := e.Length()
	fx, fy := e.Loads.Fx, e.Loads.Fy
	if e.Kind == frame.Beam {
		fx = 0
	}
	f := mf.Local

	st := make([]Station, n)
	dx := l / float64(n-1)
	for i := range st {
		x := float64(i) * dx
		st[i] = Station{
			X:      x,
			Axial:  -(f[0] + fx*x),
			Shear:  f[1] + fy*x,
			Moment: -f[2] + f[1]*x + fy*x*x/2,
		}
	}
	return st
}

// Deflection is the displaced position of a point at distance X from node 1,
// U along and V across the member axis
type Deflection struct {
	X, U, V float64
}

// LocalDisplacements returns the end displacements rotated into member axes
func (mf MemberForces) LocalDisplacements() [frame.ElementDOFs]float64 {
	lx, mx, ly, my := mf.Element.Cosines()
	d := mf.Displacements
	var dl [frame.ElementDOFs]float64
	for k := 0; k < frame.ElementDOFs; k += frame.DOFsPerNode {
		dl[k] = lx*d[k] + mx*d[k+1]
		dl[k+1] = ly*d[k] + my*d[k+1]
		dl[k+2] = d[k+2]
	}
	return dl
}

// Deflections interpolates the member displacement at n evenly spaced points,
// linearly along the axis and with cubic Hermite shape functions across it.
// Truss members stay straight between their ends.
func (mf MemberForces) Deflections(n int) []Deflection {
	if n < 2 {
		n = 2
	}
	l := mf.Element.Length()
	d := mf.LocalDisplacements()

	out := make([]Deflection, n)
	for i := range out {
		xi := float64(i) / float64(n-1)
		v := d[1]*(1-xi) + d[4]*xi
		if mf.Element.Kind != frame.Truss {
			xi2, xi3 := xi*xi, xi*xi*xi
			v = d[1]*(1-3*xi2+2*xi3) + d[2]*l*(xi-2*xi2+xi3) +
				d[4]*(3*xi2-2*xi3) + d[5]*l*(xi3-xi2)
		}
		out[i] = Deflection{
			X: xi * l,
			U: d[0]*(1-xi) + d[3]*xi,
			V: v,
		}
	}
	return out
}

// MaxMoment returns the largest absolute bending moment over n stations
func (mf MemberForces) MaxMoment(n int) (x, m float64) {
	for _, s := range mf.Stations(n) {
		if math.Abs(s.Moment) > math.Abs(m) {
			x, m = s.X, s.Moment
		}
	}
	return x, m
}
