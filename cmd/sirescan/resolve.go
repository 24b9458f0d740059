package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sirescan/internal/config"
	"sirescan/internal/fetcher"
	"sirescan/internal/log"
	"sirescan/internal/model"
	"sirescan/internal/resolver"
)

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [name]...",
		Short: "Resolve sire names to canonical stallion identities",
		Long: `Resolve looks up each given name against the register and prints the
six-digit stallion id and canonical slug it maps to, without crawling
any auctions pages. Useful for checking how a name in an input file will
be interpreted before running a full harvest.

Examples:
  sirescan resolve "Into Mischief"
  sirescan resolve "Yoshida (JPN)" "Gun Runner"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runResolveCmd,
	}

	cmd.Flags().String("base-url", config.DefaultBaseURL, "Register base URL")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "Per-request timeout")

	return cmd
}

// runResolveCmd executes the resolve command.
func runResolveCmd(cmd *cobra.Command, args []string) error {
	cfg := config.New()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	if cmd.Flags().Changed("base-url") {
		if cfg.BaseURL, err = cmd.Flags().GetString("base-url"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return err
		}
	}

	logger := log.NewCrawlLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	r := resolver.New(fetcher.New(cfg, logger), cfg, logger)

	var failed int
	for _, name := range args {
		entity, strategy, err := r.Resolve(ctx, model.SireEntry{Name: name})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, resolver.ErrNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not found\n", name)
				failed++
				continue
			}
			return fmt.Errorf("failed to resolve %q: %w", name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: id=%s slug=%s (%s)\n",
			name, entity.ID, entity.Slug, strategy)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d names could not be resolved", failed, len(args))
	}
	return nil
}
