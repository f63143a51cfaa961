package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "desim",
	Short: "Desim runs example discrete-event simulations.",
	Long: `Desim runs example discrete-event simulations built on the desim ` +
		`kernel: processes, resources, stores, and event combinators.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
