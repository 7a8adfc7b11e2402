package section

import (
	"math"

	"github.com/alexiusacademia/goframe/internal/nscp"
)

// Rectangle returns a b×h section with its bottom-left corner at the origin
func Rectangle(name string, b, h float64) *Section {
	return &Section{
		Name: name,
		Vertices: []Point{
			{X: 0, Y: 0},
			{X: b, Y: 0},
			{X: b, Y: h},
			{X: 0, Y: h},
		},
	}
}

// CalculateProperties computes geometric properties of the section
func (s *Section) CalculateProperties() *Properties {
	props := &Properties{}

	if len(s.Vertices) < 3 {
		return props
	}

	// Find bounding box
	props.MinX, props.MaxX = s.Vertices[0].X, s.Vertices[0].X
	props.MinY, props.MaxY = s.Vertices[0].Y, s.Vertices[0].Y

	for _, v := range s.Vertices {
		props.MinX = math.Min(props.MinX, v.X)
		props.MaxX = math.Max(props.MaxX, v.X)
		props.MinY = math.Min(props.MinY, v.Y)
		props.MaxY = math.Max(props.MaxY, v.Y)
	}

	props.Width = props.MaxX - props.MinX
	props.Height = props.MaxY - props.MinY

	props.Area, props.CentroidX, props.CentroidY, props.Iz = s.integrate()

	return props
}

// integrate uses the shoelace formula for area, centroid and the second
// moment of area about the horizontal axis through the centroid.
func (s *Section) integrate() (area, cx, cy, iz float64) {
	n := len(s.Vertices)
	if n < 3 {
		return 0, 0, 0, 0
	}

	var signedArea float64
	var sumX, sumY, sumYY float64

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		vi, vj := s.Vertices[i], s.Vertices[j]
		cross := vi.X*vj.Y - vj.X*vi.Y
		signedArea += cross
		sumX += (vi.X + vj.X) * cross
		sumY += (vi.Y + vj.Y) * cross
		sumYY += (vi.Y*vi.Y + vi.Y*vj.Y + vj.Y*vj.Y) * cross
	}

	signedArea /= 2
	area = math.Abs(signedArea)
	if area == 0 {
		return 0, 0, 0, 0
	}

	cx = sumX / (6 * signedArea)
	cy = sumY / (6 * signedArea)

	// about the x-axis through the origin, then shifted to the centroid
	ix := sumYY / 12
	if signedArea < 0 {
		ix = -ix
	}
	iz = ix - area*cy*cy

	return area, cx, cy, iz
}

// Modulus returns E, or the NSCP concrete modulus for f'c when E is not given
func (s *Section) Modulus() float64 {
	if s.E > 0 {
		return s.E
	}
	return nscp.ConcreteModulus(s.Fc)
}
