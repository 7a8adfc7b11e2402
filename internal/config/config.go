// Package config reads and writes frame model files and builds them into
// a frame.Model for a given load combination.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/nscp"
	"github.com/alexiusacademia/goframe/internal/section"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWorkers  = 1
	DefaultStations = 11
	DefaultScale    = 0 // auto
)

type Config struct {
	Name        string                    `yaml:"name"`
	Description string                    `yaml:"description,omitempty"`
	Units       string                    `yaml:"units,omitempty"`
	Materials   map[string]MaterialConfig `yaml:"materials,omitempty"`
	Sections    map[string]SectionConfig  `yaml:"sections"`
	Nodes       []NodeConfig              `yaml:"nodes"`
	Elements    []ElementConfig           `yaml:"elements"`
	Analysis    AnalysisConfig            `yaml:"analysis"`
}

type MaterialConfig struct {
	E       float64 `yaml:"e,omitempty"`
	Fc      float64 `yaml:"fc,omitempty"` // concrete f'c, gives E = 4700√f'c when e is omitted
	Density float64 `yaml:"density,omitempty"`
}

// SectionConfig gives A and Iz directly or through a polygon shape
type SectionConfig struct {
	Material string           `yaml:"material,omitempty"`
	A        float64          `yaml:"a,omitempty"`
	Iz       float64          `yaml:"iz,omitempty"`
	Shape    *section.Section `yaml:"shape,omitempty"`
}

type NodeConfig struct {
	ID         int                `yaml:"id,omitempty"`
	X          float64            `yaml:"x"`
	Y          float64            `yaml:"y"`
	Fix        []string           `yaml:"fix,omitempty"`
	Prescribed map[string]float64 `yaml:"prescribed,omitempty"`
	Loads      []NodeLoadConfig   `yaml:"loads,omitempty"`
}

type NodeLoadConfig struct {
	Case string  `yaml:"case,omitempty"`
	Fx   float64 `yaml:"fx,omitempty"`
	Fy   float64 `yaml:"fy,omitempty"`
	Mz   float64 `yaml:"mz,omitempty"`
}

type ElementConfig struct {
	ID        int                  `yaml:"id,omitempty"`
	Kind      string               `yaml:"kind,omitempty"`
	Nodes     [2]int               `yaml:"nodes"`
	Section   string               `yaml:"section"`
	Loads     []ElementLoadConfig  `yaml:"loads,omitempty"`
	EndForces []EndForceLoadConfig `yaml:"end_forces,omitempty"`
}

type ElementLoadConfig struct {
	Case string  `yaml:"case,omitempty"`
	Fx   float64 `yaml:"fx,omitempty"`
	Fy   float64 `yaml:"fy,omitempty"`
	M1   float64 `yaml:"m1,omitempty"`
	M2   float64 `yaml:"m2,omitempty"`
}

type EndForceLoadConfig struct {
	Case string  `yaml:"case,omitempty"`
	Fsx1 float64 `yaml:"fsx1,omitempty"`
	Fsy1 float64 `yaml:"fsy1,omitempty"`
	Fsx2 float64 `yaml:"fsx2,omitempty"`
	Fsy2 float64 `yaml:"fsy2,omitempty"`
}

type AnalysisConfig struct {
	Workers        int     `yaml:"workers"`
	Stations       int     `yaml:"stations"`
	Scale          float64 `yaml:"scale,omitempty"` // deflected-shape magnification
	ConditionLimit float64 `yaml:"condition_limit,omitempty"`
	Combination    string  `yaml:"combination,omitempty"`
}

func Default() *Config {
	return &Config{
		Name:     "frame",
		Sections: map[string]SectionConfig{},
		Analysis: AnalysisConfig{
			Workers:  DefaultWorkers,
			Stations: DefaultStations,
			Scale:    DefaultScale,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Combination resolves the combination named by id, or by the analysis
// section when id is empty. With neither, every case is applied unfactored.
func (c *Config) Combination(id string, simplified bool) (nscp.LoadCombination, error) {
	if id == "" {
		id = c.Analysis.Combination
	}
	if id == "" {
		return nscp.Service, nil
	}
	combos := nscp.LoadCombinations
	if simplified {
		combos = nscp.SimplifiedCombinations
	}
	combo, ok := nscp.Find(id, combos)
	if !ok {
		return nscp.LoadCombination{}, fmt.Errorf("unknown load combination %q", id)
	}
	return combo, nil
}

// Build creates the model with every load factored by combo.
// A nil combo applies every load case unfactored.
func (c *Config) Build(combo *nscp.LoadCombination) (*frame.Model, error) {
	if combo == nil {
		combo = &nscp.Service
	}
	if len(c.Nodes) == 0 {
		return nil, fmt.Errorf("model %q has no nodes", c.Name)
	}

	sections := make(map[string]frame.Section, len(c.Sections))
	for name, sc := range c.Sections {
		sec, err := c.frameSection(sc)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", name, err)
		}
		sections[name] = sec
	}

	m := frame.NewModel()
	for i, nc := range c.Nodes {
		if nc.ID != 0 && nc.ID != i+1 {
			return nil, fmt.Errorf("node at position %d has id %d, want %d", i+1, nc.ID, i+1)
		}
		n := m.AddNode(nc.X, nc.Y)
		if err := applyNode(n, nc, *combo); err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
	}

	for i, ec := range c.Elements {
		if ec.ID != 0 && ec.ID != i+1 {
			return nil, fmt.Errorf("element at position %d has id %d, want %d", i+1, ec.ID, i+1)
		}
		if _, err := c.addElement(m, ec, sections, *combo); err != nil {
			return nil, fmt.Errorf("element %d: %w", i+1, err)
		}
	}
	return m, nil
}

func (c *Config) frameSection(sc SectionConfig) (frame.Section, error) {
	var mc MaterialConfig
	if sc.Material != "" {
		var ok bool
		if mc, ok = c.Materials[sc.Material]; !ok {
			return frame.Section{}, fmt.Errorf("unknown material %q", sc.Material)
		}
	}

	if sc.Shape != nil {
		shape := *sc.Shape
		if shape.E == 0 && shape.Fc == 0 {
			shape.E, shape.Fc = mc.E, mc.Fc
		}
		if shape.Density == 0 {
			shape.Density = mc.Density
		}
		return shape.FrameSection()
	}

	e := mc.E
	if e == 0 {
		e = nscp.ConcreteModulus(mc.Fc)
	}
	return frame.Section{A: sc.A, E: e, Iz: sc.Iz, Rho: mc.Density}, nil
}

func applyNode(n *frame.Node, nc NodeConfig, combo nscp.LoadCombination) error {
	for _, s := range nc.Fix {
		if strings.EqualFold(s, "all") {
			n.Fix()
			continue
		}
		d, err := frame.ParseDOF(s)
		if err != nil {
			return err
		}
		n.Fix(d)
	}
	for s, v := range nc.Prescribed {
		d, err := frame.ParseDOF(s)
		if err != nil {
			return err
		}
		n.Prescribe(d, v)
	}

	var f [frame.DOFsPerNode]float64
	for _, l := range nc.Loads {
		k, err := combo.Factor(l.Case)
		if err != nil {
			return err
		}
		f[frame.UX] += k * l.Fx
		f[frame.UY] += k * l.Fy
		f[frame.RZ] += k * l.Mz
	}
	for i, v := range f {
		if v != 0 {
			n.Load(frame.DOF(i), v)
		}
	}
	return n.CheckBoundary()
}

func (c *Config) addElement(m *frame.Model, ec ElementConfig, sections map[string]frame.Section, combo nscp.LoadCombination) (*frame.Element, error) {
	kind, err := frame.ParseKind(ec.Kind)
	if err != nil {
		return nil, err
	}
	sec, ok := sections[ec.Section]
	if !ok {
		return nil, fmt.Errorf("unknown section %q", ec.Section)
	}
	n1, n2 := m.Node(ec.Nodes[0]), m.Node(ec.Nodes[1])
	if n1 == nil || n2 == nil {
		return nil, fmt.Errorf("nodes %v not in model", ec.Nodes)
	}

	e, err := m.AddElement(kind, n1, n2, sec)
	if err != nil {
		return nil, err
	}

	for _, l := range ec.Loads {
		k, err := combo.Factor(l.Case)
		if err != nil {
			return nil, err
		}
		e.Loads.Fx += k * l.Fx
		e.Loads.Fy += k * l.Fy
		e.Loads.M1 += k * l.M1
		e.Loads.M2 += k * l.M2
	}
	for _, f := range ec.EndForces {
		k, err := combo.Factor(f.Case)
		if err != nil {
			return nil, err
		}
		e.EndForces.Fsx1 += k * f.Fsx1
		e.EndForces.Fsy1 += k * f.Fsy1
		e.EndForces.Fsx2 += k * f.Fsx2
		e.EndForces.Fsy2 += k * f.Fsy2
	}
	return e, nil
}
