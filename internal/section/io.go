package section

import (
	"encoding/json"
	"os"

	"github.com/alexiusacademia/goframe/internal/frame"
)

// LoadFromFile loads a section definition from a JSON file
func LoadFromFile(filepath string) (*Section, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	var section Section
	if err := json.Unmarshal(data, &section); err != nil {
		return nil, err
	}

	if err := section.Validate(); err != nil {
		return nil, err
	}

	return &section, nil
}

// FrameSection converts the section into the properties used by frame elements
func (s *Section) FrameSection() (frame.Section, error) {
	if err := s.Validate(); err != nil {
		return frame.Section{}, err
	}
	p := s.CalculateProperties()
	return frame.Section{
		A:   p.Area,
		E:   s.Modulus(),
		Iz:  p.Iz,
		Rho: s.Density,
	}, nil
}
