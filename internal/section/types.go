package section

import "fmt"

// Section is a member cross-section defined by the vertices of a simple polygon.
// The section is defined in a local coordinate system where:
// - Y-axis points upward (bending about the horizontal centroidal axis)
// - X-axis points to the right
// - Origin can be at any convenient location
type Section struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Vertices of the outer boundary, counter-clockwise or clockwise.
	// The section is assumed to be a simple polygon (no holes)
	Vertices []Point `json:"vertices" yaml:"vertices"`

	// Material
	E       float64 `json:"e,omitempty" yaml:"e,omitempty"`             // Young's modulus
	Fc      float64 `json:"fc,omitempty" yaml:"fc,omitempty"`           // concrete f'c, used when E is not given (MPa)
	Density float64 `json:"density,omitempty" yaml:"density,omitempty"` // mass per unit volume
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Properties holds calculated geometric properties
type Properties struct {
	// Overall dimensions
	Width  float64 // Maximum width
	Height float64 // Total height
	Area   float64 // Gross area

	// Centroid location
	CentroidX float64
	CentroidY float64

	// Second moment of area about the horizontal centroidal axis
	Iz float64

	// Bounding box
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// Validate checks if the section definition is valid
func (s *Section) Validate() error {
	if len(s.Vertices) < 3 {
		return &ValidationError{"section must have at least 3 vertices"}
	}
	if s.E < 0 {
		return &ValidationError{"E must not be negative"}
	}
	if s.E == 0 && s.Fc <= 0 {
		return &ValidationError{"either E or f'c must be positive"}
	}
	if s.Density < 0 {
		return &ValidationError{"density must not be negative"}
	}
	if p := s.CalculateProperties(); p.Area <= 0 {
		return &ValidationError{msg: fmt.Sprintf("section %q has zero area", s.Name)}
	}
	return nil
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
