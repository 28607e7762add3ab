// Package main provides the entry point for the DOE-PB gazette harvester.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "doepb",
	Short: "DOE-PB gazette harvester",
	Long:  "Harvests official-gazette editions from the DOE-PB portal, resolves each edition's PDF, and mines retirement, pension and tax-exemption acts into a CSV.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
