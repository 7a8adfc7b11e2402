package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/nscp"
	"github.com/alexiusacademia/goframe/internal/solver"
	"github.com/spf13/cobra"
)

var (
	combosShowAll       bool
	combosUseSimplified bool
	combosStations      int
)

var frameCombosCmd = &cobra.Command{
	Use:   "combos",
	Short: "Find the governing NSCP load combination for a frame",
	Long: `Solve the frame once for every NSCP 2015 load combination and report
the combination producing the largest bending moment in any member.

Each load in the model belongs to a load case:
  dead       - D  Dead load
  live       - L  Live load
  roof       - Lr Roof live load
  wind       - W  Wind load
  earthquake - E  Earthquake load
  rain       - R  Rain load

Examples:
  # Governing combination
  goframe frame combos -f portal.yaml

  # Gravity combinations only
  goframe frame combos -f portal.yaml --simplified

  # Show all combinations
  goframe frame combos -f portal.yaml --all`,
	Run: runFrameCombos,
}

func init() {
	frameCmd.AddCommand(frameCombosCmd)

	frameCombosCmd.Flags().BoolVarP(&combosShowAll, "all", "a", false, "Show all load combination results")
	frameCombosCmd.Flags().BoolVarP(&combosUseSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
	frameCombosCmd.Flags().IntVar(&combosStations, "stations", 0, "Stations per member for internal forces (default from model)")
}

type comboResult struct {
	moment  float64
	element int
	uy      float64
	node    int
}

func runFrameCombos(cmd *cobra.Command, args []string) {
	cfg, ok := loadModelFile()
	if !ok {
		return
	}

	// Select which combinations to use
	combinations := nscp.LoadCombinations
	if combosUseSimplified {
		combinations = nscp.SimplifiedCombinations
	}

	stations := cfg.Analysis.Stations
	if combosStations > 0 {
		stations = combosStations
	}

	results := make(map[string]comboResult, len(combinations))
	maxMu, governingCombo, err := nscp.Governing(combinations, func(combo nscp.LoadCombination) (float64, error) {
		m, err := cfg.Build(&combo)
		if err != nil {
			return 0, err
		}
		res, err := solver.Analyze(m, analysisOptions(cfg)...)
		if err != nil {
			return 0, err
		}

		var r comboResult
		if mf, _, mu := governingMember(res, stations); mf != nil {
			r.moment, r.element = mu, mf.Element.ID
		}
		if n, uy := res.MaxDisplacement(frame.UY); n != nil {
			r.uy, r.node = uy, n.ID
		}
		results[combo.ID] = r
		return r.moment, nil
	})
	if err != nil {
		printAnalysisError(err)
		return
	}

	// Print header
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          NSCP 2015 GOVERNING LOAD COMBINATION")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	if cfg.Name != "" {
		fmt.Printf("  Model: %s\n", cfg.Name)
		fmt.Println()
	}

	if combosShowAll {
		// Show all combinations
		fmt.Println("LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tCombination\tMu\tElem\tuy max\tNode\n")
		fmt.Fprintf(w, "  ─\t───────────\t──\t────\t──────\t────\n")

		for _, combo := range combinations {
			r := results[combo.ID]
			marker := ""
			if combo.ID == governingCombo.ID {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.3f\t%d\t%.6g\t%d%s\n",
				combo.ID, combo.Description, r.moment, r.element, r.uy, r.node, marker)
		}
		w.Flush()
		fmt.Println()

		fmt.Println("LOAD FACTORS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(w, "  #\t%s\t\n", strings.Join(nscp.CaseSymbols, "\t"))
		for _, combo := range combinations {
			fmt.Fprintf(w, "  %s\t%s\t\n", combo.ID, strings.Join(factorRow(combo), "\t"))
		}
		w.Flush()
		fmt.Println()
	}

	// Print result
	r := results[governingCombo.ID]
	fmt.Println("RESULT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Printf("  Governing Combination: %s (%s)\n", governingCombo.ID, governingCombo.Description)
	fmt.Printf("  Critical Element: %d\n", r.element)
	fmt.Println()
	fmt.Printf("  ╔═══════════════════════════════════╗\n")
	fmt.Printf("  ║  FACTORED MOMENT (Mu) = %.3f  \n", maxMu)
	fmt.Printf("  ╚═══════════════════════════════════╝\n")
	fmt.Println()
}

// factorRow formats the combination's factor for each load case, "-" when unused
func factorRow(combo nscp.LoadCombination) []string {
	row := make([]string, len(nscp.Cases))
	for i, c := range nscp.Cases {
		row[i] = "-"
		if f, err := combo.Factor(c); err == nil && f != 0 {
			row[i] = fmt.Sprintf("%.1f", f)
		}
	}
	return row
}
