package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/payroll-radar/internal/sources"
)

var sourcesCommand = &cobra.Command{
	Use:   "sources",
	Short: "List the configured scan sources",
	RunE:  runSourcesCmd,
}

var sourcesPath string

func init() {
	sourcesCommand.Flags().StringVar(&sourcesPath, "sources", "", "Path to JSON source catalog (defaults to the built-in catalog)")

	rootCmd.AddCommand(sourcesCommand)
}

func runSourcesCmd(cmd *cobra.Command, _ []string) error {
	srcs, err := sources.Load(sourcesPath)
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}

	for _, src := range srcs {
		mode := "http"
		if src.UseBrowser {
			mode = "browser"
		}
		fmt.Printf("%-14s  %-28s  %-7s  %s\n", src.Jurisdiction, src.Agency, mode, src.URL)
	}
	fmt.Printf("\n%d sources configured\n", len(srcs))
	return nil
}
