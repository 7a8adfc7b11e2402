package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/goframe/internal/nscp"
	"github.com/spf13/cobra"
)

var frameElementsCmd = &cobra.Command{
	Use:   "elements",
	Short: "List element geometry and section properties",
	Long: `Print one row per element with its end coordinates, length and
section properties (ρ, A, E, Iz) as built from the model file.

Example:
  goframe frame elements -f portal.yaml`,
	Run: runFrameElements,
}

func init() {
	frameCmd.AddCommand(frameElementsCmd)
}

func runFrameElements(cmd *cobra.Command, args []string) {
	cfg, ok := loadModelFile()
	if !ok {
		return
	}
	m, err := cfg.Build(&nscp.Service)
	if err != nil {
		fmt.Printf("Error building model: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("ELEMENTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  Elem\tKind\tNodes\tx1\ty1\tx2\ty2\tL\tρ\tA\tE\tIz\t\n")
	for _, e := range m.Elements() {
		s := e.Section
		fmt.Fprintf(w, "  %d\t%s\t%d-%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%g\t%.4g\t%.4g\t%.4g\t\n",
			e.ID, e.Kind, e.N1.ID, e.N2.ID,
			e.N1.X(), e.N1.Y(), e.N2.X(), e.N2.Y(), e.Length(),
			s.Rho, s.A, s.E, s.Iz)
	}
	w.Flush()
	fmt.Println()

	var total float64
	for _, e := range m.Elements() {
		total += e.Section.Rho * e.Section.A * e.Length()
	}
	fmt.Printf("  Total mass: %.4g\n", total)
	fmt.Println()
}
