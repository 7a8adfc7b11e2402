package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/goframe/internal/section"
	"github.com/spf13/cobra"
)

var sectionPropsFile string

var sectionPropsCmd = &cobra.Command{
	Use:   "props",
	Short: "Calculate properties of a polygon section",
	Long: `Calculate the area, centroid and second moment of area (Iz) of a
section defined in a JSON file, and the frame properties derived from it.

When "e" is omitted the modulus is taken from f'c as Ec = 4700√f'c.

Examples:
  goframe section props --file t-beam.json
  goframe section props -f my-section.json`,
	Run: runSectionProps,
}

func init() {
	sectionCmd.AddCommand(sectionPropsCmd)

	sectionPropsCmd.Flags().StringVarP(&sectionPropsFile, "file", "f", "", "Path to section JSON file [required]")
	sectionPropsCmd.MarkFlagRequired("file")
}

func runSectionProps(cmd *cobra.Command, args []string) {
	sec, err := section.LoadFromFile(sectionPropsFile)
	if err != nil {
		fmt.Printf("Error loading section: %v\n", err)
		return
	}
	props := sec.CalculateProperties()
	fs, err := sec.FrameSection()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          POLYGON SECTION PROPERTIES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	if sec.Name != "" {
		fmt.Printf("  Section: %s\n", sec.Name)
	}
	if sec.Description != "" {
		fmt.Printf("  Description: %s\n", sec.Description)
	}
	fmt.Printf("  Vertices: %d\n", len(sec.Vertices))
	fmt.Println()

	fmt.Println("GEOMETRY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Width:\t%.4g\n", props.Width)
	fmt.Fprintf(w, "  Height:\t%.4g\n", props.Height)
	fmt.Fprintf(w, "  Area (A):\t%.6g\n", props.Area)
	fmt.Fprintf(w, "  Centroid (x, y):\t(%.4g, %.4g)\n", props.CentroidX, props.CentroidY)
	fmt.Fprintf(w, "  Iz (centroidal):\t%.6g\n", props.Iz)
	w.Flush()
	fmt.Println()

	fmt.Println("FRAME PROPERTIES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  E:\t%.6g\n", fs.E)
	if sec.E == 0 {
		fmt.Fprintf(w, "  \t(4700√f'c, f'c = %g)\n", sec.Fc)
	}
	fmt.Fprintf(w, "  EA:\t%.6g\n", fs.E*fs.A)
	fmt.Fprintf(w, "  EIz:\t%.6g\n", fs.E*fs.Iz)
	if fs.Rho > 0 {
		fmt.Fprintf(w, "  Mass per length:\t%.6g\n", fs.Rho*fs.A)
	}
	w.Flush()
	fmt.Println()
}
