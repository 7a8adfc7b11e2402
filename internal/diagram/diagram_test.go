package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cantilever of length 3 with a downward tip load
func cantilever(t *testing.T) *solver.Result {
	t.Helper()
	m := frame.NewModel()
	n1 := m.AddNode(0, 0)
	n2 := m.AddNode(3, 0)
	n1.Fix()
	n2.Load(frame.UY, -12)
	_, err := m.AddElement(frame.Frame, n1, n2, frame.Section{A: 1, E: 200, Iz: 4})
	require.NoError(t, err)

	res, err := solver.Analyze(m)
	require.NoError(t, err)
	return res
}

func TestDrawFrame(t *testing.T) {
	res := cantilever(t)
	out := DrawFrame(res.System.Nodes, res.System.Elements, 30, 5)

	assert.Contains(t, out, "■")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "─")
	assert.Empty(t, DrawFrame(nil, nil, 30, 5))
}

func TestLineRune(t *testing.T) {
	assert.Equal(t, '─', lineRune(5, 0))
	assert.Equal(t, '│', lineRune(0, 3))
	assert.Equal(t, '/', lineRune(2, -2))
	assert.Equal(t, '\\', lineRune(2, 2))
}

func TestDrawForceDiagram(t *testing.T) {
	res := cantilever(t)
	out := DrawForceDiagram(res.Members[0], Moment, 11)

	assert.Contains(t, out, "moment, element 1")
	assert.Greater(t, len(strings.Split(out, "\n")), 5)
}

func TestDrawSummaryBox(t *testing.T) {
	rows := []string{"D = 1.0", "R = -12.0"}
	out := DrawSummaryBox("RESULTS", rows)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// top border, title, separator, rows, bottom border
	require.Len(t, lines, 2+len(rows)+2)
	assert.True(t, strings.HasPrefix(lines[0], "  ╔"))
	assert.Contains(t, lines[1], "RESULTS")
	assert.True(t, strings.HasPrefix(lines[2], "  ╠"))
	assert.True(t, strings.HasSuffix(lines[2], "╣"))
	assert.Empty(t, strings.Trim(lines[2], " ╠═╣"), "separator holds only border runes")
	assert.Contains(t, lines[3], rows[0])
	assert.Contains(t, lines[4], rows[1])
	assert.True(t, strings.HasPrefix(lines[5], "  ╚"))
	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), l)
	}
}

func TestExportDiagrams(t *testing.T) {
	res := cantilever(t)
	dir := filepath.Join(t.TempDir(), "out")

	shape := filepath.Join(dir, "shape.png")
	require.NoError(t, ExportFrameDiagram(res, shape, 0))
	assert.FileExists(t, shape)

	moment := filepath.Join(dir, "moment")
	require.NoError(t, ExportMomentDiagram(res, moment, 11))
	info, err := os.Stat(moment + ".png")
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestAutoScale(t *testing.T) {
	res := cantilever(t)
	// tip deflection PL³/3EI = 12·27/2400
	tip := 12.0 * 27 / 2400
	assert.InDelta(t, 0.1*3/tip, autoScale(res), 1e-9)
}
