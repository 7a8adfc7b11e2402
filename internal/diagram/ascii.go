package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/solver"
	"github.com/guptarohit/asciigraph"
)

// Quantity selects the internal force drawn along a member
type Quantity int

const (
	Moment Quantity = iota
	Shear
	Axial
)

func (q Quantity) String() string {
	switch q {
	case Shear:
		return "shear"
	case Axial:
		return "axial"
	default:
		return "moment"
	}
}

func (q Quantity) of(s solver.Station) float64 {
	switch q {
	case Shear:
		return s.Shear
	case Axial:
		return s.Axial
	default:
		return s.Moment
	}
}

// DrawForceDiagram plots one internal force along a member over n stations
func DrawForceDiagram(mf solver.MemberForces, q Quantity, n int) string {
	stations := mf.Stations(n)
	data := make([]float64, len(stations))
	for i, s := range stations {
		data[i] = q.of(s)
	}

	e := mf.Element
	caption := fmt.Sprintf("%s, element %d (%d→%d), L = %.3f", q, e.ID, e.N1.ID, e.N2.ID, e.Length())
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
	)
}

// DrawFrame creates an ASCII sketch of the structure geometry.
// Supports are drawn as ▲ (■ when all three DOFs are restrained), free nodes as ●.
func DrawFrame(nodes []*frame.Node, elements []*frame.Element, width, height int) string {
	var sb strings.Builder
	if len(nodes) == 0 {
		return ""
	}
	if width < 10 {
		width = 10
	}
	if height < 5 {
		height = 5
	}

	minX, maxX := nodes[0].X(), nodes[0].X()
	minY, maxY := nodes[0].Y(), nodes[0].Y()
	for _, n := range nodes {
		minX, maxX = math.Min(minX, n.X()), math.Max(maxX, n.X())
		minY, maxY = math.Min(minY, n.Y()), math.Max(maxY, n.Y())
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	toCell := func(x, y float64) (int, int) {
		c, r := width/2, height/2
		if maxX > minX {
			c = int(math.Round((x - minX) / (maxX - minX) * float64(width-1)))
		}
		if maxY > minY {
			r = int(math.Round((maxY - y) / (maxY - minY) * float64(height-1)))
		}
		return c, r
	}

	for _, e := range elements {
		c1, r1 := toCell(e.N1.X(), e.N1.Y())
		c2, r2 := toCell(e.N2.X(), e.N2.Y())
		ch := lineRune(c2-c1, r2-r1)
		steps := max(abs(c2-c1), abs(r2-r1))
		for s := 0; s <= steps; s++ {
			t := 0.0
			if steps > 0 {
				t = float64(s) / float64(steps)
			}
			c := c1 + int(math.Round(t*float64(c2-c1)))
			r := r1 + int(math.Round(t*float64(r2-r1)))
			grid[r][c] = ch
		}
	}

	for _, n := range nodes {
		c, r := toCell(n.X(), n.Y())
		grid[r][c] = nodeRune(n)
	}

	sb.WriteString("\n")
	for _, row := range grid {
		sb.WriteString("  ")
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\n  x: %.3f to %.3f   y: %.3f to %.3f\n", minX, maxX, minY, maxY))
	sb.WriteString("  ● free node   ▲ support   ■ fixed support\n")

	return sb.String()
}

func lineRune(dc, dr int) rune {
	switch {
	case dr == 0:
		return '─'
	case dc == 0:
		return '│'
	case (dc > 0) == (dr < 0):
		return '/'
	default:
		return '\\'
	}
}

func nodeRune(n *frame.Node) rune {
	known := 0
	for _, s := range n.Disp {
		if s.Known {
			known++
		}
	}
	switch known {
	case 0:
		return '●'
	case frame.DOFsPerNode:
		return '■'
	default:
		return '▲'
	}
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if l := len([]rune(line)); l > maxLen {
			maxLen = l
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
