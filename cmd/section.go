package cmd

import (
	"github.com/spf13/cobra"
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Polygon section properties",
	Long: `Compute the properties of member sections defined in JSON files.

This allows frame members with T-beams, L-beams, or any arbitrary
polygonal shape. The same shape can be embedded in a model file
under sections.<name>.shape.

Subcommands:
  props  - Calculate area, centroid and Iz for a defined section

Example JSON file structure:
{
  "name": "T-Beam Section",
  "fc": 28,
  "vertices": [
    {"x": 0, "y": 0},
    {"x": 0.3, "y": 0},
    {"x": 0.3, "y": 0.4},
    {"x": 0.6, "y": 0.4},
    {"x": 0.6, "y": 0.5},
    {"x": 0, "y": 0.5}
  ]
}`,
}

func init() {
	rootCmd.AddCommand(sectionCmd)
}
