package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/payroll-radar/internal/config"
	"github.com/jonathan/payroll-radar/internal/store"
)

var historyCommand = &cobra.Command{
	Use:   "history",
	Short: "Show recently discovered documents",
	RunE:  runHistoryCmd,
}

var (
	historyDBPath string
	historyLimit  int
	historyAll    bool
)

func init() {
	historyCommand.Flags().StringVar(&historyDBPath, "db", "", "Path to the SQLite database file")
	historyCommand.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of documents to show")
	historyCommand.Flags().BoolVar(&historyAll, "all", false, "Include documents classified as not relevant")

	rootCmd.AddCommand(historyCommand)
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	// History is a read-only query; it needs the database path, not the
	// full environment the scanner requires.
	dbPath := historyDBPath
	if dbPath == "" {
		dbPath = os.Getenv("RADAR_DB_PATH")
	}
	if dbPath == "" {
		dbPath = config.DefaultDBPath
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	docs, err := db.RecentDocuments(historyLimit, !historyAll)
	if err != nil {
		return fmt.Errorf("failed to query documents: %w", err)
	}
	if len(docs) == 0 {
		fmt.Println("No documents recorded yet.")
		return nil
	}

	for _, doc := range docs {
		marker := " "
		if doc.Relevant {
			marker = "*"
		}
		fmt.Printf("%s %-14s  %-16s  %.2f  %s\n", marker, doc.Jurisdiction, doc.Category, doc.Score, doc.Title)
		fmt.Printf("    %s\n", doc.URL)
		if doc.Summary != "" {
			fmt.Printf("    %s\n", doc.Summary)
		}
	}
	return nil
}
