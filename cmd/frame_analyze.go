package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/goframe/internal/config"
	"github.com/alexiusacademia/goframe/internal/diagram"
	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/solver"
	"github.com/spf13/cobra"
)

var (
	analyzeCombo       string
	analyzeSimplified  bool
	analyzeShowDiagram bool
	analyzeExportFile  string
	analyzeWorkers     int
	analyzeStations    int
	analyzeScale       float64
)

var frameAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Solve a frame model for one load combination",
	Long: `Assemble and solve the frame defined in a YAML model file.

Loads are factored by the selected NSCP load combination. Without
--combo the model's analysis.combination is used, and if that is empty
every load case is applied unfactored.

Reports nodal displacements, support reactions, member-end forces and
the largest bending moment in each member.

Examples:
  goframe frame analyze -f portal.yaml
  goframe frame analyze -f portal.yaml --combo 2 --diagram
  goframe frame analyze -f portal.yaml -c 4 -o out/portal.png`,
	Run: runFrameAnalyze,
}

func init() {
	frameCmd.AddCommand(frameAnalyzeCmd)

	frameAnalyzeCmd.Flags().StringVarP(&analyzeCombo, "combo", "c", "", "Load combination ID (S for unfactored)")
	frameAnalyzeCmd.Flags().BoolVarP(&analyzeSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
	frameAnalyzeCmd.Flags().IntVarP(&analyzeWorkers, "workers", "w", 0, "Goroutines computing element matrices (default from model)")
	frameAnalyzeCmd.Flags().IntVar(&analyzeStations, "stations", 0, "Stations per member for internal forces (default from model)")

	// Diagram options
	frameAnalyzeCmd.Flags().BoolVar(&analyzeShowDiagram, "diagram", false, "Show ASCII frame and bending moment diagrams")
	frameAnalyzeCmd.Flags().StringVarP(&analyzeExportFile, "output", "o", "", "Export deflected shape and moment diagram to file (png, svg, pdf)")
	frameAnalyzeCmd.Flags().Float64Var(&analyzeScale, "scale", 0, "Deflected shape magnification (0 for automatic)")
}

func runFrameAnalyze(cmd *cobra.Command, args []string) {
	cfg, ok := loadModelFile()
	if !ok {
		return
	}

	combo, err := cfg.Combination(analyzeCombo, analyzeSimplified)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	m, err := cfg.Build(&combo)
	if err != nil {
		fmt.Printf("Error building model: %v\n", err)
		return
	}

	stations := cfg.Analysis.Stations
	if analyzeStations > 0 {
		stations = analyzeStations
	}

	res, err := solver.Analyze(m, analysisOptions(cfg)...)
	if err != nil {
		printAnalysisError(err)
		return
	}

	// Print header
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     PLANE FRAME ANALYSIS - DIRECT STIFFNESS METHOD")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	if cfg.Name != "" {
		fmt.Printf("  Model: %s\n", cfg.Name)
	}
	if cfg.Description != "" {
		fmt.Printf("  Description: %s\n", cfg.Description)
	}
	if cfg.Units != "" {
		fmt.Printf("  Units: %s\n", cfg.Units)
	}
	fmt.Printf("  Load Combination: %s (%s)\n", combo.ID, combo.Description)
	fmt.Println()

	// Model summary
	fmt.Println("MODEL SUMMARY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Nodes:\t%d\n", len(m.Nodes()))
	fmt.Fprintf(w, "  Elements:\t%d\n", len(m.Elements()))
	fmt.Fprintf(w, "  Degrees of freedom:\t%d\n", m.DOFCount())
	fmt.Fprintf(w, "  Free / restrained:\t%d / %d\n", len(res.System.FreeDOFs()), len(res.System.FixedDOFs()))
	if len(res.Inactive) > 0 {
		fmt.Fprintf(w, "  Held without stiffness:\t%d\n", len(res.Inactive))
	}
	if res.Condition > 0 {
		fmt.Fprintf(w, "  Condition number:\t%.3e\n", res.Condition)
	}
	w.Flush()
	fmt.Println()

	printDisplacements(m)
	printReactions(m)
	printMemberForces(res, stations)

	// Summary
	node, uy := res.MaxDisplacement(frame.UY)
	lines := []string{fmt.Sprintf("Max vertical displacement = %.6g at node %d", uy, node.ID)}
	if mf, x, mmax := governingMember(res, stations); mf != nil {
		lines = append(lines, fmt.Sprintf("Max bending moment = %.3f in element %d at x = %.3f", mmax, mf.Element.ID, x))
	}
	lines = append(lines, fmt.Sprintf("Displacement norm = %.6g", res.DisplacementNorm()))
	fmt.Print(diagram.DrawSummaryBox("RESULT", lines))
	fmt.Println()

	if analyzeShowDiagram {
		fmt.Println("FRAME GEOMETRY:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Print(diagram.DrawFrame(m.Nodes(), m.Elements(), 60, 15))
		fmt.Println()
		fmt.Println("BENDING MOMENT DIAGRAMS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		for _, mf := range res.Members {
			if mf.Element.Kind == frame.Truss {
				continue
			}
			fmt.Println(diagram.DrawForceDiagram(mf, diagram.Moment, stations))
			fmt.Println()
		}
	}

	if analyzeExportFile != "" {
		scale := cfg.Analysis.Scale
		if analyzeScale > 0 {
			scale = analyzeScale
		}
		if err := diagram.ExportFrameDiagram(res, analyzeExportFile, scale); err != nil {
			fmt.Printf("Error exporting diagram: %v\n", err)
			return
		}
		momentFile := withSuffix(analyzeExportFile, "-moment")
		if err := diagram.ExportMomentDiagram(res, momentFile, stations); err != nil {
			fmt.Printf("Error exporting diagram: %v\n", err)
			return
		}
		fmt.Printf("  Diagrams exported to: %s, %s\n", analyzeExportFile, momentFile)
		fmt.Println()
	}
}

func analysisOptions(cfg *config.Config) []solver.Option {
	workers := cfg.Analysis.Workers
	if analyzeWorkers > 0 {
		workers = analyzeWorkers
	}
	opts := []solver.Option{
		solver.WithWorkers(workers),
		solver.WithLogger(newLogger()),
	}
	if cfg.Analysis.ConditionLimit > 0 {
		opts = append(opts, solver.WithConditionLimit(cfg.Analysis.ConditionLimit))
	}
	return opts
}

func printAnalysisError(err error) {
	fmt.Printf("Error: %v\n", err)
	switch {
	case errors.Is(err, frame.ErrSingularSystem):
		fmt.Println("  The structure is a mechanism or insufficiently supported.")
		fmt.Println("  Check the support conditions and element connectivity.")
	case errors.Is(err, frame.ErrInconsistentBoundary):
		fmt.Println("  Each DOF needs exactly one of a load or a support condition.")
	case errors.Is(err, frame.ErrDegenerateGeometry):
		fmt.Println("  Two nodes of an element share the same coordinates.")
	}
}

func printDisplacements(m *frame.Model) {
	fmt.Println("NODAL DISPLACEMENTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  Node\tux\tuy\trz\t\n")
	fmt.Fprintf(w, "  ────\t──\t──\t──\t\n")
	for _, n := range m.Nodes() {
		d := n.Displacement
		fmt.Fprintf(w, "  %d\t%.6e\t%.6e\t%.6e\t\n", n.ID, d[frame.UX], d[frame.UY], d[frame.RZ])
	}
	w.Flush()
	fmt.Println()
}

func printReactions(m *frame.Model) {
	fmt.Println("SUPPORT REACTIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  Node\tRx\tRy\tMz\t\n")
	fmt.Fprintf(w, "  ────\t──\t──\t──\t\n")
	var sum [frame.DOFsPerNode]float64
	for _, n := range m.Nodes() {
		if !n.IsSupport() {
			continue
		}
		r := n.Reaction
		cells := make([]string, frame.DOFsPerNode)
		for i := range cells {
			cells[i] = "-"
			if n.Disp[i].Known {
				cells[i] = fmt.Sprintf("%.3f", r[i])
				sum[i] += r[i]
			}
		}
		fmt.Fprintf(w, "  %d\t%s\t\n", n.ID, strings.Join(cells, "\t"))
	}
	fmt.Fprintf(w, "  Σ\t%.3f\t%.3f\t\t\n", sum[frame.UX], sum[frame.UY])
	w.Flush()
	fmt.Println()
}

func printMemberForces(res *solver.Result, stations int) {
	fmt.Println("MEMBER END FORCES (local axes):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  Elem\tKind\tN1\tV1\tM1\tN2\tV2\tM2\t\n")
	fmt.Fprintf(w, "  ────\t────\t──\t──\t──\t──\t──\t──\t\n")
	for _, mf := range res.Members {
		f := mf.Local
		fmt.Fprintf(w, "  %d\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n",
			mf.Element.ID, mf.Element.Kind, f[0], f[1], f[2], f[3], f[4], f[5])
	}
	w.Flush()
	fmt.Println()

	fmt.Println("MAXIMUM INTERNAL FORCES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  Elem\tL\tx\tM max\tV max\tN max\t\n")
	fmt.Fprintf(w, "  ────\t─\t─\t─────\t─────\t─────\t\n")
	for _, mf := range res.Members {
		var vmax, nmax float64
		for _, s := range mf.Stations(stations) {
			vmax = absMax(vmax, s.Shear)
			nmax = absMax(nmax, s.Axial)
		}
		x, mmax := mf.MaxMoment(stations)
		fmt.Fprintf(w, "  %d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n", mf.Element.ID, mf.Element.Length(), x, mmax, vmax, nmax)
	}
	w.Flush()
	fmt.Println()
}

func governingMember(res *solver.Result, stations int) (*solver.MemberForces, float64, float64) {
	var (
		best   *solver.MemberForces
		bx, bm float64
	)
	for i := range res.Members {
		x, m := res.Members[i].MaxMoment(stations)
		if best == nil || absMax(bm, m) != bm {
			best, bx, bm = &res.Members[i], x, m
		}
	}
	return best, bx, bm
}

// absMax returns whichever of a and b has the larger magnitude, a on ties
func absMax(a, b float64) float64 {
	if b*b > a*a {
		return b
	}
	return a
}

func withSuffix(filename, suffix string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + suffix + ext
}
