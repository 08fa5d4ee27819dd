/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "labo-api",
	Short: "Laboratory sample workflow API server",
	Long: `Labo API is a REST API server for a geotechnical laboratory.
It tracks soil samples from reception through testing, decodification,
processing and the hierarchical validation of the final report.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command, used by the tests.
func GetRootCmd() *cobra.Command {
	return rootCmd
}
