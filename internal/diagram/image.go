package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/solver"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const curvePoints = 21

var (
	structureColor = color.Gray{Y: 128}
	deflectedColor = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	momentColor    = color.RGBA{R: 200, G: 0, B: 0, A: 255}
	supportColor   = color.RGBA{R: 139, G: 69, B: 19, A: 255}
)

// ExportFrameDiagram exports the structure with its deflected shape to an
// image file. The displacements are magnified by scale; scale <= 0 picks a
// magnification that makes the largest displacement a tenth of the structure size.
func ExportFrameDiagram(res *solver.Result, filename string, scale float64) error {
	nodes := res.System.Nodes
	if scale <= 0 {
		scale = autoScale(res)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Deflected Shape (×%.3g)", scale)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	if err := addStructure(p, res.System.Elements); err != nil {
		return err
	}

	for _, mf := range res.Members {
		e := mf.Element
		lx, mx, ly, my := e.Cosines()
		pts := make(plotter.XYs, 0, curvePoints)
		for _, d := range mf.Deflections(curvePoints) {
			pts = append(pts, plotter.XY{
				X: e.N1.X() + d.X*lx + scale*(d.U*lx+d.V*ly),
				Y: e.N1.Y() + d.X*mx + scale*(d.U*mx+d.V*my),
			})
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = deflectedColor
		p.Add(line)
	}

	if err := addSupports(p, nodes); err != nil {
		return err
	}
	if err := addNodeLabels(p, nodes); err != nil {
		return err
	}

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// ExportMomentDiagram exports the bending moment diagram drawn across each
// member, on the tension side for sagging moments.
func ExportMomentDiagram(res *solver.Result, filename string, stations int) error {
	p := plot.New()
	p.Title.Text = "Bending Moment Diagram"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	if err := addStructure(p, res.System.Elements); err != nil {
		return err
	}

	var maxM float64
	for _, mf := range res.Members {
		if _, m := mf.MaxMoment(stations); math.Abs(m) > maxM {
			maxM = math.Abs(m)
		}
	}
	if maxM == 0 {
		return save(p, 8*vg.Inch, 6*vg.Inch, filename)
	}
	k := 0.15 * structureSize(res.System.Nodes) / maxM

	for _, mf := range res.Members {
		e := mf.Element
		lx, mx, ly, my := e.Cosines()
		x0, y0 := e.N1.X(), e.N1.Y()

		pts := plotter.XYs{{X: x0, Y: y0}}
		for _, s := range mf.Stations(stations) {
			// sagging moment plotted below the member axis
			pts = append(pts, plotter.XY{
				X: x0 + s.X*lx - k*s.Moment*ly,
				Y: y0 + s.X*mx - k*s.Moment*my,
			})
		}
		pts = append(pts, plotter.XY{X: e.N2.X(), Y: e.N2.Y()})

		poly, err := plotter.NewPolygon(pts)
		if err != nil {
			return err
		}
		poly.Color = color.RGBA{R: 237, G: 100, B: 100, A: 120}
		poly.LineStyle.Color = momentColor
		p.Add(poly)

		x, m := mf.MaxMoment(stations)
		l, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: x0 + x*lx - k*m*ly, Y: y0 + x*mx - k*m*my}},
			Labels: []string{fmt.Sprintf("%.2f", m)},
		})
		if err != nil {
			return err
		}
		p.Add(l)
	}

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

func addStructure(p *plot.Plot, elements []*frame.Element) error {
	for _, e := range elements {
		line, err := plotter.NewLine(plotter.XYs{
			{X: e.N1.X(), Y: e.N1.Y()},
			{X: e.N2.X(), Y: e.N2.Y()},
		})
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = structureColor
		line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(line)
	}
	return nil
}

func addSupports(p *plot.Plot, nodes []*frame.Node) error {
	var pts plotter.XYs
	for _, n := range nodes {
		if n.IsSupport() {
			pts = append(pts, plotter.XY{X: n.X(), Y: n.Y()})
		}
	}
	if len(pts) == 0 {
		return nil
	}
	supports, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	supports.GlyphStyle.Color = supportColor
	supports.GlyphStyle.Radius = vg.Points(6)
	supports.GlyphStyle.Shape = draw.PyramidGlyph{}
	p.Add(supports)
	return nil
}

func addNodeLabels(p *plot.Plot, nodes []*frame.Node) error {
	xys := make([]plotter.XY, len(nodes))
	labels := make([]string, len(nodes))
	for i, n := range nodes {
		xys[i] = plotter.XY{X: n.X(), Y: n.Y()}
		labels[i] = fmt.Sprintf(" %d", n.ID)
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return err
	}
	p.Add(l)
	return nil
}

func structureSize(nodes []*frame.Node) float64 {
	if len(nodes) == 0 {
		return 1
	}
	minX, maxX := nodes[0].X(), nodes[0].X()
	minY, maxY := nodes[0].Y(), nodes[0].Y()
	for _, n := range nodes {
		minX, maxX = math.Min(minX, n.X()), math.Max(maxX, n.X())
		minY, maxY = math.Min(minY, n.Y()), math.Max(maxY, n.Y())
	}
	if size := math.Max(maxX-minX, maxY-minY); size > 0 {
		return size
	}
	return 1
}

func autoScale(res *solver.Result) float64 {
	var maxD float64
	for _, n := range res.System.Nodes {
		d := res.NodeDisplacement(n)
		maxD = math.Max(maxD, math.Hypot(d[frame.UX], d[frame.UY]))
	}
	if maxD == 0 {
		return 1
	}
	return 0.1 * structureSize(res.System.Nodes) / maxD
}

// save writes the plot, picking the format from the file extension
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
