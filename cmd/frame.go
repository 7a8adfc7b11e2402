package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/goframe/internal/config"
	"github.com/spf13/cobra"
)

var (
	frameFile    string
	frameVerbose bool
)

var frameCmd = &cobra.Command{
	Use:   "frame",
	Short: "Plane frame analysis from a YAML model",
	Long: `Analyze plane frames, beams and trusses defined in YAML files.

Subcommands:
  analyze   - Solve one load combination and report results
  elements  - List element geometry and section properties
  combos    - Solve every NSCP combination and find the governing one

Example YAML file structure:
name: cantilever
materials:
  steel: {e: 200000000, density: 7850}
sections:
  w200: {material: steel, a: 0.0038, iz: 0.0000281}
nodes:
  - {x: 0, y: 0, fix: [all]}
  - x: 3
    y: 0
    loads:
      - {case: live, fy: -12}
elements:
  - {kind: frame, nodes: [1, 2], section: w200}
analysis:
  combination: "2"`,
}

func init() {
	rootCmd.AddCommand(frameCmd)

	frameCmd.PersistentFlags().StringVarP(&frameFile, "file", "f", "", "Path to model YAML file [required]")
	frameCmd.MarkPersistentFlagRequired("file")
	frameCmd.PersistentFlags().BoolVarP(&frameVerbose, "verbose", "v", false, "Log assembly and solver details to stderr")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if frameVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadModelFile() (*config.Config, bool) {
	cfg, err := config.Load(frameFile)
	if err != nil {
		fmt.Printf("Error loading model: %v\n", err)
		return nil, false
	}
	return cfg, true
}
