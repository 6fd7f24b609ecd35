// Package main provides the payroll radar CLI: a scanner for payroll, tax,
// and labor regulatory notices published by government agencies.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "payroll_radar",
	Short: "Regulatory notice scanner for payroll, tax, and labor updates",
	Long:  "Payroll Radar scans government agency pages for new payroll, tax, and labor regulatory notices, classifies them with an LLM, and delivers findings to Telegram.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
