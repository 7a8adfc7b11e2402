package frame

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var unitSection = Section{A: 1, E: 1, Iz: 1, Rho: 1}

func twoNodeElement(t *testing.T, kind Kind, x2, y2 float64, sec Section) *Element {
	t.Helper()
	m := NewModel()
	n1 := m.AddNode(0, 0)
	n2 := m.AddNode(x2, y2)
	e, err := m.AddElement(kind, n1, n2, sec)
	require.NoError(t, err)
	return e
}

func TestModelNumbering(t *testing.T) {
	m1 := NewModel()
	m2 := NewModel()
	a := m1.AddNode(0, 0)
	b := m1.AddNode(1, 0)
	c := m2.AddNode(5, 5)

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, 1, c.ID, "numbering is per model")
	assert.Equal(t, 3, b.Offset())
	assert.Equal(t, 6, m1.DOFCount())
	assert.Same(t, b, m1.Node(2))
	assert.Nil(t, m1.Node(3))

	_, err := m1.AddElement(Frame, a, c, unitSection)
	require.Error(t, err, "node from another model")

	e, err := m1.AddElement(Frame, a, b, unitSection)
	require.NoError(t, err)
	assert.Equal(t, 1, e.ID)
	assert.Same(t, e, m1.Element(1))
}

func TestDegenerateElement(t *testing.T) {
	m := NewModel()
	n1 := m.AddNode(2, 3)
	n2 := m.AddNode(2, 3)

	e, err := m.AddElement(Frame, n1, n2, unitSection)
	require.Error(t, err)
	assert.Nil(t, e)
	assert.True(t, errors.Is(err, ErrDegenerateGeometry))

	var dge *DegenerateGeometryError
	require.True(t, errors.As(err, &dge))
	assert.Equal(t, 1, dge.Node1)
	assert.Equal(t, 2, dge.Node2)
	assert.Empty(t, m.Elements(), "failed element is not registered")
}

func TestNonFiniteGeometry(t *testing.T) {
	coords := [][2]float64{
		{math.NaN(), 0},
		{0, math.Inf(1)},
		{math.Inf(-1), math.Inf(-1)},
	}
	for _, c := range coords {
		m := NewModel()
		n1 := m.AddNode(0, 0)
		n2 := m.AddNode(c[0], c[1])

		e, err := m.AddElement(Frame, n1, n2, unitSection)
		assert.Nil(t, e, "%v", c)
		assert.ErrorIs(t, err, ErrDegenerateGeometry, "%v", c)
		assert.Empty(t, m.Elements())
	}
}

func TestSectionValidation(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		sec  Section
		ok   bool
	}{
		{"frame ok", Frame, unitSection, true},
		{"zero area", Frame, Section{A: 0, E: 1, Iz: 1}, false},
		{"negative modulus", Beam, Section{A: 1, E: -1, Iz: 1}, false},
		{"negative density", Frame, Section{A: 1, E: 1, Iz: 1, Rho: -1}, false},
		{"frame without inertia", Frame, Section{A: 1, E: 1}, false},
		{"truss without inertia", Truss, Section{A: 1, E: 1}, true},
		{"NaN area", Frame, Section{A: math.NaN(), E: 1, Iz: 1}, false},
		{"infinite modulus", Frame, Section{A: 1, E: math.Inf(1), Iz: 1}, false},
		{"NaN inertia on truss", Truss, Section{A: 1, E: 1, Iz: math.NaN()}, false},
		{"NaN density", Frame, Section{A: 1, E: 1, Iz: 1, Rho: math.NaN()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sec.Validate(tt.kind)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGeometry(t *testing.T) {
	e := twoNodeElement(t, Frame, 3, 4, unitSection)
	assert.InDelta(t, 5.0, e.Length(), 1e-12)
	lx, mx, ly, my := e.Cosines()
	assert.InDelta(t, 0.6, lx, 1e-12)
	assert.InDelta(t, 0.8, mx, 1e-12)
	assert.InDelta(t, -0.8, ly, 1e-12)
	assert.InDelta(t, 0.6, my, 1e-12)

	// rotation is orthogonal
	T := e.Transformation()
	var tt mat.Dense
	tt.Mul(T.T(), T)
	assert.True(t, mat.EqualApprox(&tt, eye(ElementDOFs), 1e-12))
}

func TestLocalStiffnessPattern(t *testing.T) {
	e := twoNodeElement(t, Frame, 2, 0, Section{A: 1, E: 1, Iz: 1})
	lm, err := e.ComputeLocalMatrices(Loads{})
	require.NoError(t, err)

	// L=2: AE/L=0.5, 12EI/L³=1.5, 6EI/L²=1.5, 4EI/L=2, 2EI/L=1
	want := mat.NewDense(6, 6, []float64{
		0.5, 0, 0, -0.5, 0, 0,
		0, 1.5, 1.5, 0, -1.5, 1.5,
		0, 1.5, 2, 0, -1.5, 1,
		-0.5, 0, 0, 0.5, 0, 0,
		0, -1.5, -1.5, 0, 1.5, -1.5,
		0, 1.5, 1, 0, -1.5, 2,
	})
	assert.True(t, mat.EqualApprox(lm.KeLocal, want, 1e-12))
	assert.True(t, mat.EqualApprox(lm.Ke, want, 1e-12), "horizontal element: global equals local")
}

func TestMatricesSymmetric(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		x2, y2 float64
	}{
		{"frame horizontal", Frame, 4, 0},
		{"frame vertical", Frame, 0, 3},
		{"frame inclined", Frame, -2.5, 1.7},
		{"beam inclined", Beam, 1, 1},
		{"truss inclined", Truss, 3, -4},
	}
	sec := Section{A: 0.02, E: 200e3, Iz: 3e-4, Rho: 7.85}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := twoNodeElement(t, tt.kind, tt.x2, tt.y2, sec)
			lm, err := e.ComputeLocalMatrices(Loads{})
			require.NoError(t, err)
			assert.True(t, mat.EqualApprox(lm.Ke, lm.Ke.T(), 1e-9), "Ke symmetric")
			assert.True(t, mat.EqualApprox(lm.Me, lm.Me.T(), 1e-9), "Me symmetric")
			assert.True(t, mat.EqualApprox(lm.KeLocal, lm.KeLocal.T(), 1e-9), "ke symmetric")
		})
	}
}

func TestRigidBodyNullSpace(t *testing.T) {
	for _, kind := range []Kind{Frame, Beam, Truss} {
		x2, y2 := 2.0, 1.5
		e := twoNodeElement(t, kind, x2, y2, Section{A: 3, E: 10, Iz: 2})
		lm, err := e.ComputeLocalMatrices(Loads{})
		require.NoError(t, err)

		const θ = 1e-3
		modes := map[string][]float64{
			"translate x": {1, 0, 0, 1, 0, 0},
			"translate y": {0, 1, 0, 0, 1, 0},
			"rotate":      {0, 0, θ, -y2 * θ, x2 * θ, θ},
		}
		for name, d := range modes {
			if kind == Truss && name == "rotate" {
				// truss rotations carry no stiffness, check translations of the rotation only
				d = []float64{0, 0, 0, -y2 * θ, x2 * θ, 0}
			}
			f := mat.NewVecDense(6, nil)
			f.MulVec(lm.Ke, mat.NewVecDense(6, d))
			for i := 0; i < 6; i++ {
				assert.InDeltaf(t, 0, f.AtVec(i), 1e-9, "%s %s: row %d", kind, name, i)
			}
		}
	}
}

func TestMassMatrixTotals(t *testing.T) {
	sec := Section{A: 2, E: 1, Iz: 1, Rho: 3}
	e := twoNodeElement(t, Frame, 4, 0, sec)
	lm, err := e.ComputeLocalMatrices(Loads{})
	require.NoError(t, err)

	total := sec.Rho * sec.A * e.Length()
	sum := func(idx ...int) float64 {
		var s float64
		for _, i := range idx {
			for _, j := range idx {
				s += lm.Me.At(i, j)
			}
		}
		return s
	}
	assert.InDelta(t, total, sum(0, 3), 1e-9, "axial mass")
	assert.InDelta(t, total, sum(1, 4), 1e-9, "transverse mass")

	tr := twoNodeElement(t, Truss, 0, 4, sec)
	lmt, err := tr.ComputeLocalMatrices(Loads{})
	require.NoError(t, err)
	var s float64
	for _, i := range []int{0, 3} {
		for _, j := range []int{0, 3} {
			s += lmt.Me.At(i, j)
		}
	}
	assert.InDelta(t, total, s, 1e-9, "truss mass")
}

func TestEquivalentForces(t *testing.T) {
	e := twoNodeElement(t, Frame, 4, 0, unitSection)
	e.EndForces = EndForces{Fsy1: 1, Fsx2: 2}
	lm, err := e.ComputeLocalMatrices(Loads{Fx: 0.5, Fy: -10, M1: 3, M2: -4})
	require.NoError(t, err)

	// qL/2 and ±qL²/12 with L=4
	want := []float64{1, -20 + 1, -40.0/3 + 3, 1 + 2, -20, 40.0/3 - 4}
	assert.InDeltaSlice(t, want, lm.FeLocal.RawVector().Data, 1e-12)
	assert.InDeltaSlice(t, want, lm.Fe.RawVector().Data, 1e-12)
	assert.Equal(t, [2]float64{3, -4}, lm.EndMoments)
}

func TestBeamDropsAxialLoads(t *testing.T) {
	e := twoNodeElement(t, Beam, 2, 0, unitSection)
	e.EndForces = EndForces{Fsx1: 1, Fsy1: 2, Fsx2: 3, Fsy2: 4}
	lm, err := e.ComputeLocalMatrices(Loads{Fx: 5, Fy: -6})
	require.NoError(t, err)

	// a = 1
	want := []float64{0, -6 + 2, -2, 0, -6 + 4, 2}
	assert.InDeltaSlice(t, want, lm.FeLocal.RawVector().Data, 1e-12)
}

func TestEquivalentForcesRotated(t *testing.T) {
	// vertical member: local y points to global -x
	e := twoNodeElement(t, Frame, 0, 2, unitSection)
	lm, err := e.ComputeLocalMatrices(Loads{Fy: 6})
	require.NoError(t, err)
	assert.InDelta(t, -6, lm.Fe.AtVec(0), 1e-12)
	assert.InDelta(t, 0, lm.Fe.AtVec(1), 1e-12)
	assert.InDelta(t, 2, lm.Fe.AtVec(2), 1e-12)
	assert.InDelta(t, -6, lm.Fe.AtVec(3), 1e-12)
	assert.InDelta(t, -2, lm.Fe.AtVec(5), 1e-12)
}

func TestComputeIsPure(t *testing.T) {
	e := twoNodeElement(t, Frame, 2, 1, unitSection)
	before1, before2 := *e.N1, *e.N2

	a, err := e.ComputeLocalMatrices(Loads{Fy: 2, M1: 5, M2: 7})
	require.NoError(t, err)
	b, err := e.ComputeLocalMatrices(Loads{Fy: 2, M1: 5, M2: 7})
	require.NoError(t, err)

	assert.True(t, mat.Equal(a.Ke, b.Ke))
	assert.True(t, mat.Equal(a.Fe, b.Fe))
	assert.Equal(t, before1, *e.N1, "nodes untouched")
	assert.Equal(t, before2, *e.N2, "nodes untouched")
}

func TestTrussRejectsMoments(t *testing.T) {
	e := twoNodeElement(t, Truss, 1, 0, Section{A: 1, E: 1})
	_, err := e.ComputeLocalMatrices(Loads{M1: 1})
	assert.Error(t, err)
}

func TestNodeBoundary(t *testing.T) {
	m := NewModel()
	n := m.AddNode(1, 2)
	assert.Equal(t, 1.0, n.X())
	assert.Equal(t, 2.0, n.Y())
	require.NoError(t, n.CheckBoundary())
	assert.False(t, n.IsSupport())

	n.Fix(UX, UY)
	require.NoError(t, n.CheckBoundary())
	assert.True(t, n.IsSupport())
	assert.False(t, n.Force[UX].Known)
	assert.True(t, n.Force[RZ].Known)

	n.Load(RZ, 2)
	n.Load(RZ, 3)
	assert.Equal(t, 5.0, n.Force[RZ].Value)

	n.Load(UX, 10) // force on a support DOF
	err := n.CheckBoundary()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInconsistentBoundary))
	var ibc *InconsistentBoundaryConditionError
	require.True(t, errors.As(err, &ibc))
	assert.Equal(t, UX, ibc.DOF)
	assert.True(t, ibc.Both)

	n.Force[UX] = Slot{}
	n.Disp[UX] = Slot{}
	err = n.CheckBoundary()
	require.True(t, errors.As(err, &ibc))
	assert.False(t, ibc.Both)
}

func TestParse(t *testing.T) {
	d, err := ParseDOF("rz")
	require.NoError(t, err)
	assert.Equal(t, RZ, d)
	_, err = ParseDOF("uz")
	assert.Error(t, err)

	k, err := ParseKind("truss")
	require.NoError(t, err)
	assert.Equal(t, Truss, k)
	k, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, Frame, k)
	_, err = ParseKind("shell")
	assert.Error(t, err)
	assert.Equal(t, "beam", Beam.String())
}

func TestSingularErrorMatching(t *testing.T) {
	var err error = &SingularSystemError{FreeDOFs: 3, Condition: math.Inf(1)}
	assert.True(t, errors.Is(err, ErrSingularSystem))
	assert.True(t, errors.Is(err, ErrUnderconstrained))
	assert.False(t, errors.Is(err, ErrDegenerateGeometry))
}

func eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}
