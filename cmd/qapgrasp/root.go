package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:     "qapgrasp",
	Short:   "GRASP with path-relinking solver for the Quadratic Assignment Problem",
	Long:    `qapgrasp constructs, intensifies, and path-relinks candidate assignments for randomly generated QAP instances.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (if unset, built-in defaults are used)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")

	rootCmd.AddCommand(runCmd)
}

// Commands are defined in separate files:
// - runCmd in run.go
