package main

import "os"

var (
	cfgFile string
	verbose bool
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
