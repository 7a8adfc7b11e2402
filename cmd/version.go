package cmd

import (
	"fmt"

	"github.com/alexiusacademia/goframe/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of goframe",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		fmt.Println("Plane Frame Analysis Tool")
		fmt.Println("Load combinations per NSCP 2015 (National Structural Code of the Philippines)")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
