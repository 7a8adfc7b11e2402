package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/goframe/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "goframe",
	Short: "Plane Frame Analysis Tool",
	Long: `goframe - Go Plane Frame Analyzer

A CLI tool for the linear static analysis of plane frames, beams
and trusses using the Direct Stiffness Method.

This tool helps structural engineers perform:
  - Nodal displacement and support reaction analysis
  - Member-end forces and internal force diagrams
  - NSCP load combination runs and governing combination search
  - Polygon section properties (A, Iz) for member definitions

Models are described in YAML files; see 'goframe frame --help'.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   goframe v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Plane Frame Analyzer                                 ║")
		fmt.Println("  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the linear static analysis of plane frames")
		fmt.Println("  using the Direct Stiffness Method.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Frame, beam and truss elements in one model")
		fmt.Println("    • Prescribed support displacements and member loads")
		fmt.Println("    • NSCP 2015 load combinations on named load cases")
		fmt.Println("    • Deflected shape and bending moment diagrams")
		fmt.Println()
		fmt.Println("  Use 'goframe --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
