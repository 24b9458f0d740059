package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sirescan/internal/config"
	"sirescan/internal/database"
	"sirescan/internal/extractor"
	"sirescan/internal/fetcher"
	"sirescan/internal/harvester"
	"sirescan/internal/input"
	"sirescan/internal/log"
	"sirescan/internal/model"
	"sirescan/internal/pipeline"
	"sirescan/internal/report"
	"sirescan/internal/resolver"
)

// NewHarvestCmd creates the harvest command.
func NewHarvestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Harvest stud fees for a list of sires",
		Long: `Harvest reads a CSV of sires, resolves each name to its canonical
stallion identity, crawls the auctions pages for the configured page-year
range, and writes one row per unique fee-year per sire.

The input file must contain exactly the columns Sire and sale_year.
Sires that cannot be resolved are skipped; pages that fail to fetch
contribute no rows. Only a malformed input file aborts the run.

Examples:
  # Harvest to CSV on stdout
  sirescan harvest --input sires.csv

  # Write the tidy CSV to a file
  sirescan harvest --input sires.csv --output fees.csv

  # JSON or Markdown output instead of CSV
  sirescan harvest --input sires.csv --json
  sirescan harvest --input sires.csv --markdown --output report.md

  # Narrow the crawled page-year range
  sirescan harvest --input sires.csv --first-year 2015 --last-year 2020

  # Record fees against the year before each page-year
  sirescan harvest --input sires.csv --fee-year-source prior-page-year

Configuration file (.sirescan) example:
  baseURL: https://www.bloodhorse.com/stallion-register
  headers:
    Cookie: "session=abc123"
  firstPageYear: 2006
  lastPageYear: 2025
  pageDelaySeconds: [1, 3]`,
		Args: cobra.NoArgs,
		RunE: runHarvestCmd,
	}

	// Input and output flags
	cmd.Flags().StringP("input", "i", "",
		"CSV file with Sire and sale_year columns (required)")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to this file instead of stdout")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")

	// Crawl behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout")
	cmd.Flags().Int("attempts", config.DefaultMaxAttempts,
		"Tries per request, including the first")
	cmd.Flags().Int("first-year", config.DefaultFirstPageYear,
		"First auctions page-year to crawl (inclusive)")
	cmd.Flags().Int("last-year", config.DefaultLastPageYear,
		"Last auctions page-year to crawl (inclusive)")
	cmd.Flags().String("marker", config.DefaultSectionMarker,
		"Section marker a page must contain before fees are extracted")
	cmd.Flags().String("fee-year-source", string(config.FeeYearLiteral),
		`Fee-year convention: "literal" or "prior-page-year"`)
	cmd.Flags().String("base-url", config.DefaultBaseURL,
		"Register base URL")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .sirescan in current or home directory)")

	// Persistence
	cmd.Flags().Bool("no-db", false,
		"Do not save harvest results to the history database")

	return cmd
}

// runHarvestCmd executes the harvest command.
func runHarvestCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildHarvestConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewCrawlLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runHarvest(ctx, cfg, logger)
}

// buildHarvestConfig creates a Config from the command flags and the
// optional configuration file. Precedence, lowest to highest: built-in
// defaults, config file, explicitly set CLI flags.
func buildHarvestConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.New()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load the config file before flags so explicit flags win.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.InputFile, err = cmd.Flags().GetString("input")
	if err != nil {
		return nil, err
	}
	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("attempts") {
		if cfg.MaxAttempts, err = cmd.Flags().GetInt("attempts"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("first-year") {
		if cfg.FirstPageYear, err = cmd.Flags().GetInt("first-year"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("last-year") {
		if cfg.LastPageYear, err = cmd.Flags().GetInt("last-year"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("marker") {
		if cfg.SectionMarker, err = cmd.Flags().GetString("marker"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("fee-year-source") {
		src, err := cmd.Flags().GetString("fee-year-source")
		if err != nil {
			return nil, err
		}
		cfg.FeeYearSource = config.FeeYearSource(src)
	}
	if cmd.Flags().Changed("base-url") {
		if cfg.BaseURL, err = cmd.Flags().GetString("base-url"); err != nil {
			return nil, err
		}
	}

	noDB, err := cmd.Flags().GetBool("no-db")
	if err != nil {
		return nil, err
	}
	if !noDB {
		cfg.SaveToDB = true
		cfg.DBDir = config.XDGDataDir()
	}

	return cfg, nil
}

// runHarvest executes the harvest run.
func runHarvest(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Input schema problems are the only fatal error class; surface them
	// before any database or network activity.
	entries, err := input.LoadFile(cfg.InputFile)
	if err != nil {
		return err
	}
	logger.Info("input loaded",
		"file", cfg.InputFile,
		"sires", len(entries),
	)

	var db *database.HarvestDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	client := fetcher.New(cfg, logger)
	pipe := pipeline.New(pipeline.WithLogger(logger))
	pipe.AddSteps(
		pipeline.NewResolveStep(resolver.New(client, cfg, logger), logger),
		pipeline.NewHarvestStep(
			harvester.New(client, extractor.New(cfg), cfg, logger), logger),
	)

	run := &model.RunReport{
		StartedAt:     time.Now(),
		FirstPageYear: cfg.FirstPageYear,
		LastPageYear:  cfg.LastPageYear,
		Sires:         make([]*model.SireReport, 0, len(entries)),
	}

	// Sires are processed strictly one at a time; the politeness policy
	// assumes a single in-flight request.
	for _, entry := range entries {
		sire := &model.SireReport{
			Sire:     entry.Name,
			SaleYear: entry.SaleYear,
			Fees:     []model.FactRow{},
		}
		run.Sires = append(run.Sires, sire)

		logger.Info("processing sire", "sire", entry.Name, "saleYear", entry.SaleYear)

		if err := pipe.Execute(ctx, sire); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, resolver.ErrNotFound) {
				logger.Warn("no stallion record found; skipping", "sire", entry.Name)
				continue
			}
			logger.Warn("sire processing failed; skipping",
				"sire", entry.Name,
				"error", err,
			)
		}
	}
	run.FinishedAt = time.Now()

	if db != nil {
		if err := db.SaveRun(ctx, run); err != nil {
			logger.Error("failed to save run to database", "error", err)
		}
	}

	if err := writeRunReport(cfg, run); err != nil {
		return err
	}

	logger.Info("harvest finished",
		"sires", len(run.Sires),
		"resolved", run.ResolvedCount(),
		"feeRows", run.TotalRows(),
		"elapsed", run.FinishedAt.Sub(run.StartedAt).Round(time.Second),
	)
	return nil
}

// writeRunReport renders the run in the configured format and destination.
func writeRunReport(cfg *config.Config, run *model.RunReport) error {
	output, cleanup, err := openOutput(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer cleanup()

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewCSVWriter(output)
	}

	if _, err := w.Write(run); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// openOutput returns the report destination: stdout when path is empty,
// otherwise the named file with parent directories created as needed.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // user-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
