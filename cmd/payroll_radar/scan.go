package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/payroll-radar/internal/classify"
	"github.com/jonathan/payroll-radar/internal/config"
	"github.com/jonathan/payroll-radar/internal/extract"
	"github.com/jonathan/payroll-radar/internal/fetch"
	"github.com/jonathan/payroll-radar/internal/harvest"
	"github.com/jonathan/payroll-radar/internal/notify"
	"github.com/jonathan/payroll-radar/internal/scanner"
	"github.com/jonathan/payroll-radar/internal/sources"
	"github.com/jonathan/payroll-radar/internal/store"
)

var scanCommand = &cobra.Command{
	Use:   "scan",
	Short: "Run one scan pass over all configured sources",
	Long: `Harvests links from every configured agency page, filters them for
regulatory relevance, skips anything seen on a previous run, classifies new
documents with Gemini, persists results, and reports findings to Telegram.`,
	RunE: runScanCmd,
}

var (
	scanSourcesPath string
	scanDBPath      string
	scanMinScore    float64
	scanMode        string
	scanVerbose     bool
)

func init() {
	scanCommand.Flags().StringVar(&scanSourcesPath, "sources", "", "Path to JSON source catalog (defaults to the built-in catalog)")
	scanCommand.Flags().StringVar(&scanDBPath, "db", "", "Path to the SQLite database file")
	scanCommand.Flags().Float64Var(&scanMinScore, "min-score", 0, "Minimum heuristic relevance score in [0,1]")
	scanCommand.Flags().StringVar(&scanMode, "mode", "", "Run mode: scheduled (quiet when nothing found) or manual")
	scanCommand.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(scanCommand)
}

func runScanCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("sources") {
		cfg.SourcesFile = scanSourcesPath
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = scanDBPath
	}
	if cmd.Flags().Changed("min-score") {
		cfg.MinScore = scanMinScore
	}
	if cmd.Flags().Changed("mode") {
		switch config.RunMode(scanMode) {
		case config.RunModeScheduled, config.RunModeManual:
			cfg.RunMode = config.RunMode(scanMode)
		default:
			return fmt.Errorf("invalid --mode %q: must be scheduled or manual", scanMode)
		}
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if scanVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	srcs, err := sources.Load(cfg.SourcesFile)
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	classifier, err := classify.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return fmt.Errorf("failed to create classifier: %w", err)
	}
	defer classifier.Close()

	notifier := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, notify.WithLogger(logger))

	client := fetch.NewClient(&fetch.Options{Timeout: cfg.RequestTimeout})
	sc := scanner.New(cfg, scanner.Deps{
		Sources:    srcs,
		Harvester:  harvest.New(client, fetch.RenderedHTML),
		Extractor:  extract.New(client),
		Classifier: classifier,
		Notifier:   notifier,
		Store:      db,
		Logger:     logger,
	})

	if _, err := sc.Run(ctx); err != nil {
		return reportFatal(ctx, notifier, err)
	}
	return nil
}

// reportFatal pushes the failure to Telegram before surfacing it. Delivery
// is best effort: the operator watches Telegram, not stderr.
func reportFatal(ctx context.Context, notifier scanner.Notifier, err error) error {
	notifier.Send(ctx, notify.FormatFatalError(err))
	return fmt.Errorf("scan failed: %w", err)
}
