package config

import (
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/nscp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultWorkers, cfg.Analysis.Workers)
	assert.Equal(t, DefaultStations, cfg.Analysis.Stations)
	assert.NotNil(t, cfg.Sections)
}

func TestLoadPortal(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "portal.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "portal", cfg.Name)
	assert.Len(t, cfg.Nodes, 4)
	assert.Len(t, cfg.Elements, 3)
	assert.Equal(t, 2, cfg.Analysis.Workers)
	assert.Equal(t, 21, cfg.Analysis.Stations)
	require.NotNil(t, cfg.Sections["girder"].Shape)
	assert.Len(t, cfg.Sections["girder"].Shape.Vertices, 4)
}

func TestBuildFactorsLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "portal.yaml"))
	require.NoError(t, err)

	combo, err := cfg.Combination("2", false)
	require.NoError(t, err)
	m, err := cfg.Build(&combo)
	require.NoError(t, err)

	require.Len(t, m.Nodes(), 4)
	require.Len(t, m.Elements(), 3)

	// 1.2·(−20) + 1.6·(−10)
	assert.InDelta(t, -40.0, m.Element(2).Loads.Fy, 1e-12)
	// wind is not part of combination 2
	assert.Zero(t, m.Node(2).Force[frame.UX].Value)

	n1 := m.Node(1)
	for i := 0; i < frame.DOFsPerNode; i++ {
		assert.True(t, n1.Disp[i].Known)
		assert.False(t, n1.Force[i].Known)
	}

	girder := m.Element(2).Section
	assert.InDelta(t, 0.15, girder.A, 1e-12)
	assert.InDelta(t, 0.3*0.125/12, girder.Iz, 1e-12)
	assert.InDelta(t, nscp.ConcreteModulus(25), girder.E, 1e-9)
	assert.Equal(t, 2.4, girder.Rho)
}

func TestBuildUnfactored(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "portal.yaml"))
	require.NoError(t, err)

	m, err := cfg.Build(nil)
	require.NoError(t, err)
	assert.InDelta(t, -30.0, m.Element(2).Loads.Fy, 1e-12)
	assert.InDelta(t, 10.0, m.Node(2).Force[frame.UX].Value, 1e-12)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "portal.yaml"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(path, cfg))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestBuildErrors(t *testing.T) {
	base := func() *Config {
		cfg := Default()
		cfg.Sections["s"] = SectionConfig{A: 1, Iz: 1, Material: "steel"}
		cfg.Materials = map[string]MaterialConfig{"steel": {E: nscp.Es}}
		cfg.Nodes = []NodeConfig{{X: 0, Y: 0, Fix: []string{"all"}}, {X: 1, Y: 0}}
		cfg.Elements = []ElementConfig{{Nodes: [2]int{1, 2}, Section: "s"}}
		return cfg
	}

	_, err := base().Build(nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no nodes", func(c *Config) { c.Nodes = nil }},
		{"unknown section", func(c *Config) { c.Elements[0].Section = "x" }},
		{"unknown material", func(c *Config) { c.Sections["s"] = SectionConfig{A: 1, Iz: 1, Material: "wood"} }},
		{"unknown node", func(c *Config) { c.Elements[0].Nodes = [2]int{1, 5} }},
		{"unknown kind", func(c *Config) { c.Elements[0].Kind = "cable" }},
		{"bad dof", func(c *Config) { c.Nodes[1].Fix = []string{"uz"} }},
		{"unknown case", func(c *Config) { c.Nodes[1].Loads = []NodeLoadConfig{{Case: "snow", Fy: 1}} }},
		{"load on support", func(c *Config) { c.Nodes[0].Loads = []NodeLoadConfig{{Fy: 1}} }},
		{"out of order id", func(c *Config) { c.Nodes[1].ID = 7 }},
		{"same node twice", func(c *Config) { c.Elements[0].Nodes = [2]int{1, 1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			_, err := cfg.Build(nil)
			assert.Error(t, err)
		})
	}

	_, err = base().Combination("42", false)
	assert.Error(t, err)
}
